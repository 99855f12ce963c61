package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalSchedule/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalSchedule/internal/scheduling"
)

const metricsSource = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	txManager    TransactionManager
	location     *time.Location
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	txManager TransactionManager,
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
		txManager:    txManager,
		location:     location,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции,
// поэтому результат предварительной проверки здесь не используется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, resources=%v, start=%s, end=%s",
		req.UserID, req.ResourceIDs, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Нельзя бронировать прошедшее время
	if err := validateStart(req.Start, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 3. Получаем ресурсы
	found, err := uc.resourceRepo.GetByIDs(ctx, req.ResourceIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get resources %v: %v", req.ResourceIDs, err)
		return nil, fmt.Errorf("%w: failed to get resources: %w", ErrInternal, err)
	}

	resources, err := validateResources(req.ResourceIDs, found)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.StatusDraft
	}

	var created []*domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Повтор транзакции начинается с чистого результата
		created = created[:0]

		// 4.1. Получаем активные бронирования ресурсов в интервале с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			ResourceIDs: req.ResourceIDs,
			From:        &req.Start,
			To:          &req.End,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 4.2. Проверяем пересечения по каждому ресурсу
		conflicts, err := uc.collectConflicts(resources, req, existing)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return uc.conflict(conflicts)
		}

		// 4.3. Создаем бронирования
		for _, res := range resources {
			booking := &domain.Booking{
				ResourceID: res.ID,
				UserID:     req.UserID,
				Start:      req.Start,
				End:        req.End,
				Occupant: domain.Occupant{
					UserName:    req.UserName,
					Project:     req.Project,
					Status:      status,
					PeopleCount: req.PeopleCount,
				},
				Notes: req.Notes,
			}

			saved, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				// Ограничение БД - последний рубеж против гонки
				if errors.Is(err, bookingRepo.ErrOverlap) {
					return uc.conflict([]string{fmt.Sprintf("%s: overlaps a concurrent booking", res.Name)})
				}
				uc.logger.Error("CreateBooking: failed to create booking for resource=%d: %v", res.ID, err)
				return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
			}
			created = append(created, saved)
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrSlotNotAvailable) && !errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}

	resp := &Response{
		BookingIDs: make([]int64, 0, len(created)),
		Bookings:   created,
	}
	for _, b := range created {
		resp.BookingIDs = append(resp.BookingIDs, b.ID)
	}

	uc.logger.Info("CreateBooking: successfully created bookings ids=%v", resp.BookingIDs)
	return resp, nil
}

// collectConflicts проверяет кандидата для каждого ресурса и собирает описания конфликтов
func (uc *UseCase) collectConflicts(
	resources []*domain.Resource,
	req *Request,
	existing []*domain.Booking,
) ([]string, error) {
	var conflicts []string

	for _, res := range resources {
		result, err := scheduling.CheckAvailability(scheduling.Candidate{
			ResourceID: res.ID,
			Start:      req.Start.In(uc.location),
			End:        req.End.In(uc.location),
		}, existing)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
		}

		for _, c := range result.Conflicts {
			conflicts = append(conflicts, fmt.Sprintf("%s: %s", res.Name, c))
		}
	}

	return conflicts, nil
}

func (uc *UseCase) conflict(conflicts []string) error {
	uc.metrics.RecordConflicts(metricsSource, len(conflicts))
	uc.logger.Warn("CreateBooking: slot not available: %v", conflicts)
	return fmt.Errorf("%w: %w", ErrSlotNotAvailable, &domain.ConflictError{Conflicts: conflicts})
}
