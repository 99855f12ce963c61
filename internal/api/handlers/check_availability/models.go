package check_availability

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-RentalSchedule/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ResourceID  int64     `json:"resourceId"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	IsAvailable bool      `json:"isAvailable"`
	Conflicts   []string  `json:"conflicts"`
}

// ToUseCaseRequest формирует запрос к use case из URL и query параметров
func ToUseCaseRequest(resourceID int64, startStr, endStr, excludeStr string) (*checkAvailability.Request, error) {
	start, err := handlers.ParseTimestamp(startStr)
	if err != nil {
		return nil, err
	}

	end, err := handlers.ParseTimestamp(endStr)
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{
		ResourceID: resourceID,
		Start:      start,
		End:        end,
	}

	if excludeStr != "" {
		excludeID, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ExcludeBookingID = &excludeID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	conflicts := resp.Conflicts
	if conflicts == nil {
		conflicts = []string{}
	}
	return &AvailabilityResponse{
		ResourceID:  resp.ResourceID,
		Start:       resp.Start,
		End:         resp.End,
		IsAvailable: resp.IsAvailable,
		Conflicts:   conflicts,
	}
}
