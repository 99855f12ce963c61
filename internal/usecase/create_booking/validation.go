package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if len(req.ResourceIDs) == 0 {
		return fmt.Errorf("%w: at least one resource is required", ErrInvalidInput)
	}

	if len(req.ResourceIDs) > domain.MaxResourcesPerReq {
		return fmt.Errorf("%w: at most %d resources per booking", ErrInvalidInput, domain.MaxResourcesPerReq)
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

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if !req.End.After(req.Start) {
		return ErrInvalidInterval
	}

	if strings.TrimSpace(req.UserName) == "" {
		return fmt.Errorf("%w: userName is required", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.UserName) > domain.MaxUserNameLength {
		return fmt.Errorf("%w: userName exceeds %d characters", ErrInvalidInput, domain.MaxUserNameLength)
	}

	if utf8.RuneCountInString(req.Project) > domain.MaxProjectLength {
		return fmt.Errorf("%w: project exceeds %d characters", ErrInvalidInput, domain.MaxProjectLength)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.PeopleCount < 0 {
		return fmt.Errorf("%w: peopleCount must not be negative", ErrInvalidInput)
	}

	switch req.Status {
	case "", domain.StatusDraft, domain.StatusReserved:
	default:
		return fmt.Errorf("%w: new booking cannot have status %q", ErrInvalidInput, req.Status)
	}

	return nil
}

// validateStart проверяет, что интервал еще не начался
func validateStart(start, now time.Time) error {
	if start.Before(now) {
		return fmt.Errorf("%w: %s", ErrStartInPast, start.Format(time.RFC3339))
	}
	return nil
}

// validateResources проверяет, что все ресурсы найдены и активны
// Возвращает ресурсы в порядке запроса
func validateResources(ids []int64, resources []*domain.Resource) ([]*domain.Resource, error) {
	byID := make(map[int64]*domain.Resource, len(resources))
	for _, res := range resources {
		byID[res.ID] = res
	}

	ordered := make([]*domain.Resource, 0, len(ids))
	for _, id := range ids {
		res, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrResourceNotFound, id)
		}
		if !res.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrResourceInactive, res.Name)
		}
		ordered = append(ordered, res)
	}

	return ordered, nil
}
