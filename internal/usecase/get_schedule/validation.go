package get_schedule

import (
	"fmt"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	"github.com/m04kA/SMC-RentalSchedule/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxRangeDays int) error {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}

	if days := scheduling.DaysInRange(req.StartDate, req.EndDate); maxRangeDays > 0 && days > maxRangeDays {
		return fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLarge, days, maxRangeDays)
	}

	switch req.View {
	case "", ViewGrid, ViewTimeline:
	default:
		return fmt.Errorf("%w: unknown view %q", ErrInvalidInput, req.View)
	}

	if req.Kind != nil && *req.Kind != domain.KindRoom && *req.Kind != domain.KindEquipment {
		return fmt.Errorf("%w: unknown resource kind %q", ErrInvalidInput, *req.Kind)
	}

	if len(req.ResourceIDs) > domain.MaxResourcesPerReq {
		return fmt.Errorf("%w: at most %d resources per request", ErrInvalidInput, domain.MaxResourcesPerReq)
	}

	seen := make(map[int64]struct{}, len(req.ResourceIDs))
	for _, id := range req.ResourceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: resourceId must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate resourceId %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}
