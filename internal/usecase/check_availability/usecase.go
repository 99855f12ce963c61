package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	resourceRepo "github.com/m04kA/SMC-RentalSchedule/internal/infra/storage/resource"
	"github.com/m04kA/SMC-RentalSchedule/internal/scheduling"
)

const metricsSource = "precheck"

// UseCase use case предварительной проверки доступности ресурса
// Результат подсказывает пользователю, но создание бронирования проверяет занятость заново
type UseCase struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	location     *time.Location
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		location:     location,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет проверку доступности интервала [Start, End) для ресурса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: resource=%d, start=%s, end=%s",
		req.ResourceID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование ресурса
	if _, err := uc.resourceRepo.GetByID(ctx, req.ResourceID); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("CheckAvailability: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %w", ErrInternal, err)
	}

	// 3. Получаем бронирования ресурса, пересекающиеся с интервалом
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		ResourceIDs: []int64{req.ResourceID},
		From:        &req.Start,
		To:          &req.End,
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	// 4. Проверяем пересечения
	result, err := scheduling.CheckAvailability(scheduling.Candidate{
		ResourceID:       req.ResourceID,
		Start:            req.Start.In(uc.location),
		End:              req.End.In(uc.location),
		ExcludeBookingID: req.ExcludeBookingID,
	}, bookings)
	if err != nil {
		uc.logger.Warn("CheckAvailability: invalid candidate: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	if !result.IsAvailable {
		uc.metrics.RecordConflicts(metricsSource, len(result.Conflicts))
		uc.logger.Info("CheckAvailability: resource=%d busy, %d conflicts", req.ResourceID, len(result.Conflicts))
	} else {
		uc.logger.Info("CheckAvailability: resource=%d available", req.ResourceID)
	}

	return &Response{
		ResourceID:  req.ResourceID,
		Start:       req.Start,
		End:         req.End,
		IsAvailable: result.IsAvailable,
		Conflicts:   result.Conflicts,
	}, nil
}
