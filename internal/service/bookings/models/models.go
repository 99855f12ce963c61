package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	ResourceIDs      []int64    `json:"resourceIds,omitempty"`      // Фильтр по ресурсам (опционально)
	StartDate        *time.Time `json:"startDate,omitempty"`        // Начало периода (опционально)
	EndDate          *time.Time `json:"endDate,omitempty"`          // Конец периода включительно (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	UserID           *int64     `json:"userId,omitempty"`           // Только бронирования пользователя
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
// EndDate включительный, поэтому верхняя граница сдвигается на начало следующего дня
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		ResourceIDs:      r.ResourceIDs,
		From:             r.StartDate,
		UserID:           r.UserID,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.EndDate != nil {
		to := r.EndDate.AddDate(0, 0, 1)
		filter.To = &to
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64     `json:"id"`
	ResourceID  int64     `json:"resourceId"`
	UserID      int64     `json:"userId"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	UserName    string    `json:"userName"`
	Project     string    `json:"project"`
	PeopleCount int       `json:"peopleCount"`
	Notes       *string   `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		ResourceID:  b.ResourceID,
		UserID:      b.UserID,
		Start:       b.Start,
		End:         b.End,
		Status:      string(b.Occupant.Status),
		UserName:    b.Occupant.UserName,
		Project:     b.Occupant.Project,
		PeopleCount: b.Occupant.PeopleCount,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
