package scheduleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// userIDHeader заголовок, которым сервис идентифицирует пользователя
const userIDHeader = "X-User-ID"

// Client клиент для работы с API расписания
type Client struct {
	baseURL    string
	userID     int64
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента; userID нужен только для изменяющих запросов
func NewClient(baseURL string, userID int64, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSchedule получает сетку занятости ресурсов
func (c *Client) GetSchedule(ctx context.Context, q ScheduleQuery) (*Schedule, error) {
	params := url.Values{}
	params.Set("startDate", q.StartDate)
	if q.EndDate != "" {
		params.Set("endDate", q.EndDate)
	}
	if len(q.ResourceIDs) > 0 {
		params.Set("resourceIds", joinIDs(q.ResourceIDs))
	}
	if q.Kind != "" {
		params.Set("kind", q.Kind)
	}
	if q.View != "" {
		params.Set("view", q.View)
	}

	var schedule Schedule
	if err := c.do(ctx, http.MethodGet, "/api/v1/schedule?"+params.Encode(), nil, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// CheckAvailability проверяет, свободен ли ресурс в интервале [Start, End)
func (c *Client) CheckAvailability(ctx context.Context, q AvailabilityQuery) (*Availability, error) {
	params := url.Values{}
	params.Set("start", q.Start.Format(time.RFC3339))
	params.Set("end", q.End.Format(time.RFC3339))
	if q.ExcludeBookingID != nil {
		params.Set("excludeBookingId", strconv.FormatInt(*q.ExcludeBookingID, 10))
	}

	path := fmt.Sprintf("/api/v1/resources/%d/availability?%s", q.ResourceID, params.Encode())

	var availability Availability
	if err := c.do(ctx, http.MethodGet, path, nil, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}

// CreateBooking создает бронирования; при конфликте возвращает ErrSlotNotAvailable с *ConflictError
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error) {
	c.log.Info("Creating booking for resources=%v, start=%s, end=%s", req.ResourceIDs, req.Start, req.End)

	var created CreateBookingResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/bookings", req, &created); err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			c.log.Warn("Booking rejected for resources=%v: %v", req.ResourceIDs, err)
		}
		return nil, err
	}

	c.log.Info("Successfully created bookings ids=%v", created.BookingIDs)
	return &created, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.userID != 0 {
		req.Header.Set(userIDHeader, strconv.FormatInt(c.userID, 10))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Отмена контекста вызывающим не считается недоступностью сервиса
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusNoContent:
		return nil
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, readError(resp.Body).Error)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, readError(resp.Body).Error)
	case http.StatusConflict:
		e := readError(resp.Body)
		return fmt.Errorf("%w: %w", ErrSlotNotAvailable, &ConflictError{Message: e.Error, Conflicts: e.Conflicts})
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status code %d", ErrUnavailable, resp.StatusCode)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

func readError(r io.Reader) ErrorResponse {
	var e ErrorResponse
	if err := json.NewDecoder(r).Decode(&e); err != nil {
		e.Error = "unreadable error body"
	}
	return e
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
