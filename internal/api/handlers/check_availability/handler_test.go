package check_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checkAvailability "github.com/m04kA/SMC-RentalSchedule/internal/usecase/check_availability"
	"github.com/m04kA/SMC-RentalSchedule/pkg/logger"
)

type stubUseCase struct {
	req *checkAvailability.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &checkAvailability.Response{
		ResourceID:  req.ResourceID,
		Start:       req.Start,
		End:         req.End,
		IsAvailable: false,
		Conflicts:   []string{"alice (demo): 2024-06-03 10:30-11:30"},
	}, nil
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/resources/{resourceId}/availability", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.Nop())

	rec := serve(h, "/api/v1/resources/1/availability?start=2024-06-03T11:00:00Z&end=2024-06-03T12:00:00Z&excludeBookingId=5")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.req.ExcludeBookingID)
	assert.Equal(t, int64(5), *uc.req.ExcludeBookingID)
	assert.Equal(t, time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC), uc.req.Start.UTC())

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.IsAvailable)
	assert.Equal(t, []string{"alice (demo): 2024-06-03 10:30-11:30"}, body.Conflicts)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"bad resource id", "/api/v1/resources/x/availability?start=2024-06-03T11:00:00Z&end=2024-06-03T12:00:00Z", nil, http.StatusBadRequest},
		{"missing end", "/api/v1/resources/1/availability?start=2024-06-03T11:00:00Z", nil, http.StatusBadRequest},
		{"empty interval", "/api/v1/resources/1/availability?start=2024-06-03T11:00:00Z&end=2024-06-03T11:00:00Z", checkAvailability.ErrInvalidInterval, http.StatusBadRequest},
		{"unknown resource", "/api/v1/resources/9/availability?start=2024-06-03T11:00:00Z&end=2024-06-03T12:00:00Z", checkAvailability.ErrResourceNotFound, http.StatusNotFound},
		{"internal", "/api/v1/resources/1/availability?start=2024-06-03T11:00:00Z&end=2024-06-03T12:00:00Z", checkAvailability.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&stubUseCase{err: tt.err}, logger.Nop()), tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
