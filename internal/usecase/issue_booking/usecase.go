package issue_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalSchedule/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalSchedule/internal/scheduling"
)

const metricsSource = "issue"

// UseCase use case выдачи ресурса по подтверждённому бронированию
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	location     *time.Location
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
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
		txManager:    txManager,
		location:     location,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переводит бронирование в статус issued
// Перед выдачей интервал проверяется повторно: данные могли быть исправлены вручную
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("IssueBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("IssueBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var result *domain.Booking

	// 2. Повторная проверка и смена статуса в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if err := validateIssuable(booking, now); err != nil {
			return err
		}

		existing, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			ResourceIDs: []int64{booking.ResourceID},
			From:        &booking.Start,
			To:          &booking.End,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		availability, err := scheduling.CheckAvailability(scheduling.Candidate{
			ResourceID:       booking.ResourceID,
			Start:            booking.Start.In(uc.location),
			End:              booking.End.In(uc.location),
			ExcludeBookingID: &booking.ID,
		}, existing)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}
		if !availability.IsAvailable {
			uc.metrics.RecordConflicts(metricsSource, len(availability.Conflicts))
			return fmt.Errorf("%w: %w", ErrSlotNotAvailable, &domain.ConflictError{Conflicts: availability.Conflicts})
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusIssued); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		booking.Occupant.Status = domain.StatusIssued
		result = booking
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrInternal):
		uc.logger.Error("IssueBooking: booking=%d: %v", req.BookingID, err)
		return nil, err
	case errors.Is(err, ErrSlotNotAvailable), errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrAlreadyEnded):
		uc.logger.Warn("IssueBooking: booking=%d rejected: %v", req.BookingID, err)
		return nil, err
	default:
		uc.logger.Error("IssueBooking: transaction failed for booking=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.logger.Info("IssueBooking: booking=%d issued by user=%d", result.ID, req.UserID)
	return &Response{Booking: result}, nil
}
