package scheduleapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalSchedule/pkg/logger"
)

func TestClient_GetSchedule(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/schedule", r.URL.Path)
		assert.Equal(t, "2024-06-03", r.URL.Query().Get("startDate"))
		assert.Equal(t, "1,2", r.URL.Query().Get("resourceIds"))
		assert.Equal(t, "timeline", r.URL.Query().Get("view"))
		assert.Empty(t, r.Header.Get("X-User-ID"))

		_ = json.NewEncoder(w).Encode(Schedule{
			Resources:  []Resource{{ID: 1, Name: "Room A"}, {ID: 2, Name: "Room B"}},
			Aggregated: true,
			Days:       []Day{{Date: "2024-06-03", Slots: []Slot{{Index: 0, StartTime: "10:00", EndTime: "10:30", Status: "available"}}}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, time.Second, logger.Nop())

	schedule, err := client.GetSchedule(context.Background(), ScheduleQuery{
		ResourceIDs: []int64{1, 2},
		StartDate:   "2024-06-03",
		View:        "timeline",
	})
	require.NoError(t, err)
	assert.True(t, schedule.Aggregated)
	require.Len(t, schedule.Days, 1)
	assert.Equal(t, "10:00", schedule.Days[0].Slots[0].StartTime)
}

func TestClient_CheckAvailability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/resources/4/availability", r.URL.Path)
		assert.Equal(t, "9", r.URL.Query().Get("excludeBookingId"))

		_ = json.NewEncoder(w).Encode(Availability{
			ResourceID:  4,
			IsAvailable: false,
			Conflicts:   []string{"alice: 2024-06-03 10:30-11:30"},
		})
	}))
	defer server.Close()

	exclude := int64(9)
	start := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	availability, err := NewClient(server.URL, 0, time.Second, logger.Nop()).CheckAvailability(context.Background(), AvailabilityQuery{
		ResourceID:       4,
		Start:            start,
		End:              start.Add(time.Hour),
		ExcludeBookingID: &exclude,
	})
	require.NoError(t, err)
	assert.False(t, availability.IsAvailable)
	assert.Equal(t, []string{"alice: 2024-06-03 10:30-11:30"}, availability.Conflicts)
}

func TestClient_CreateBookingConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "7", r.Header.Get("X-User-ID"))

		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Error:     "выбранное время уже занято",
			Conflicts: []string{"Room A: alice: 2024-06-03 10:30-11:30"},
		})
	}))
	defer server.Close()

	_, err := NewClient(server.URL, 7, time.Second, logger.Nop()).CreateBooking(context.Background(), CreateBookingRequest{
		ResourceIDs: []int64{1},
		Start:       "2024-06-03T10:00:00Z",
		End:         "2024-06-03T11:00:00Z",
		UserName:    "carol",
	})

	require.ErrorIs(t, err, ErrSlotNotAvailable)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, []string{"Room A: alice: 2024-06-03 10:30-11:30"}, conflictErr.Conflicts)
}

func TestClient_CreateBookingCreated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CreateBookingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []int64{1, 2}, req.ResourceIDs)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(CreateBookingResponse{Success: true, BookingIDs: []int64{10, 11}})
	}))
	defer server.Close()

	created, err := NewClient(server.URL, 7, time.Second, logger.Nop()).CreateBooking(context.Background(), CreateBookingRequest{
		ResourceIDs: []int64{1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, created.BookingIDs)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusServiceUnavailable, ErrUnavailable},
		{http.StatusInternalServerError, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"success":false,"error":"boom"}`))
			}))
			defer server.Close()

			_, err := NewClient(server.URL, 0, time.Second, logger.Nop()).GetSchedule(context.Background(), ScheduleQuery{StartDate: "2024-06-03"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	_, err := NewClient(baseURL, 0, time.Second, logger.Nop()).GetSchedule(context.Background(), ScheduleQuery{StartDate: "2024-06-03"})
	assert.ErrorIs(t, err, ErrUnavailable)
}
