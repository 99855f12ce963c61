package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalSchedule/internal/api/middleware"
	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	createBooking "github.com/m04kA/SMC-RentalSchedule/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RentalSchedule/pkg/logger"
)

type stubUseCase struct {
	req *createBooking.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	bookings := make([]*domain.Booking, len(req.ResourceIDs))
	ids := make([]int64, len(req.ResourceIDs))
	for i, resourceID := range req.ResourceIDs {
		ids[i] = int64(100 + i)
		bookings[i] = &domain.Booking{ID: ids[i], ResourceID: resourceID, Start: req.Start, End: req.End}
	}
	return &createBooking.Response{BookingIDs: ids, Bookings: bookings}, nil
}

const validBody = `{
	"resourceIds": [1, 2],
	"start": "2024-06-03T11:00:00+03:00",
	"end": "2024-06-03T12:00:00+03:00",
	"userName": "carol",
	"project": "demo",
	"peopleCount": 3
}`

func post(h *Handler, body string, userID *int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), *userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{}
	userID := int64(7)

	rec := post(NewHandler(uc, logger.Nop()), validBody, &userID)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, int64(7), uc.req.UserID)
	assert.Equal(t, []int64{1, 2}, uc.req.ResourceIDs)
	assert.Equal(t, time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC), uc.req.Start.UTC())

	var body CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, []int64{100, 101}, body.BookingIDs)
	assert.Len(t, body.Bookings, 2)
}

func TestHandle_ConflictListsBlockingBookings(t *testing.T) {
	conflict := fmt.Errorf("%w: %w", createBooking.ErrSlotNotAvailable,
		&domain.ConflictError{Conflicts: []string{"Room A: alice (demo): 2024-06-03 10:30-11:30"}})
	userID := int64(7)

	rec := post(NewHandler(&stubUseCase{err: conflict}, logger.Nop()), validBody, &userID)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{
		"success": false,
		"error": "выбранное время уже занято",
		"conflicts": ["Room A: alice (demo): 2024-06-03 10:30-11:30"]
	}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	userID := int64(7)

	tests := []struct {
		name   string
		body   string
		userID *int64
		err    error
		status int
	}{
		{"no user", validBody, nil, nil, http.StatusUnauthorized},
		{"broken json", `{"resourceIds":`, &userID, nil, http.StatusBadRequest},
		{"unknown field", `{"room": 1}`, &userID, nil, http.StatusBadRequest},
		{"bad time", `{"resourceIds":[1],"start":"11:00","end":"12:00","userName":"x"}`, &userID, nil, http.StatusBadRequest},
		{"unknown resource", validBody, &userID, createBooking.ErrResourceNotFound, http.StatusNotFound},
		{"in the past", validBody, &userID, createBooking.ErrStartInPast, http.StatusBadRequest},
		{"internal", validBody, &userID, createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(NewHandler(&stubUseCase{err: tt.err}, logger.Nop()), tt.body, tt.userID)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
