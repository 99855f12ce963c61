package extend_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalSchedule/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalSchedule/internal/scheduling"
)

const metricsSource = "extend"

// UseCase use case продления бронирования
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	location    *time.Location
	metrics     Metrics
	logger      Logger
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
		bookingRepo: bookingRepo,
		txManager:   txManager,
		location:    location,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute переносит окончание бронирования на NewEnd
// Новый интервал проверяется на пересечения без учета самого бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExtendBooking: booking=%d, user=%d, newEnd=%s",
		req.BookingID, req.UserID, req.NewEnd.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExtendBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Проверка и обновление в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if booking.UserID != req.UserID {
			return ErrAccessDenied
		}

		if booking.IsFinished() {
			return fmt.Errorf("%w: status=%s", ErrBookingFinished, booking.Occupant.Status)
		}

		if !req.NewEnd.After(booking.End) {
			return fmt.Errorf("%w: %s <= %s", ErrNotExtension,
				req.NewEnd.Format(time.RFC3339), booking.End.Format(time.RFC3339))
		}

		// Бронирования ресурса, пересекающиеся с новым интервалом (FOR UPDATE)
		existing, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			ResourceIDs: []int64{booking.ResourceID},
			From:        &booking.Start,
			To:          &req.NewEnd,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		availability, err := scheduling.CheckAvailability(scheduling.Candidate{
			ResourceID:       booking.ResourceID,
			Start:            booking.Start.In(uc.location),
			End:              req.NewEnd.In(uc.location),
			ExcludeBookingID: &booking.ID,
		}, existing)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !availability.IsAvailable {
			return uc.conflict(availability.Conflicts)
		}

		if err := uc.bookingRepo.UpdateEnd(txCtx, booking.ID, req.NewEnd); err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				return uc.conflict([]string{"overlaps a concurrent booking"})
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		booking.End = req.NewEnd
		booking.Occupant.EndTime = req.NewEnd
		result = booking
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrSlotNotAvailable):
		return nil, err
	case errors.Is(err, ErrInternal):
		uc.logger.Error("ExtendBooking: booking=%d: %v", req.BookingID, err)
		return nil, err
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrBookingFinished), errors.Is(err, ErrNotExtension), errors.Is(err, ErrInvalidInput):
		uc.logger.Warn("ExtendBooking: booking=%d rejected: %v", req.BookingID, err)
		return nil, err
	default:
		uc.logger.Error("ExtendBooking: transaction failed for booking=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.logger.Info("ExtendBooking: booking=%d extended until %s", result.ID, result.End.Format(time.RFC3339))
	return &Response{Booking: result}, nil
}

func (uc *UseCase) conflict(conflicts []string) error {
	uc.metrics.RecordConflicts(metricsSource, len(conflicts))
	uc.logger.Warn("ExtendBooking: slot not available: %v", conflicts)
	return fmt.Errorf("%w: %w", ErrSlotNotAvailable, &domain.ConflictError{Conflicts: conflicts})
}
