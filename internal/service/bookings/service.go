package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalSchedule/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalSchedule/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и простых переходов статусов
// Переходы, требующие проверки занятости (выдача, продление), живут в usecase-ах
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с гибкой фильтрацией
//
// Примеры использования:
// - Все активные бронирования: List(ctx, &ListBookingsRequest{})
// - Бронирования комнаты за период: ResourceIDs + StartDate + EndDate
// - Только выданные: Status = "issued"
// - Включая отменённые: IncludeCancelled = true
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("List: fetching bookings resources=%v", req.ResourceIDs)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("List: end date before start date")
		return nil, fmt.Errorf("%w: endDate before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование; отменить может только владелец
func (s *Service) Cancel(ctx context.Context, bookingID, userID int64) error {
	return s.changeStatus(ctx, "Cancel", bookingID, userID, domain.StatusCancelled, true)
}

// Reserve подтверждает черновик бронирования; подтвердить может только владелец
func (s *Service) Reserve(ctx context.Context, bookingID, userID int64) error {
	return s.changeStatus(ctx, "Reserve", bookingID, userID, domain.StatusReserved, true)
}

// Return отмечает возврат выданного инвентаря или освобождение комнаты
// Принять возврат может любой сотрудник
func (s *Service) Return(ctx context.Context, bookingID, userID int64) error {
	return s.changeStatus(ctx, "Return", bookingID, userID, domain.StatusReturned, false)
}

// changeStatus читает бронирование под блокировкой и переводит его в новый статус
func (s *Service) changeStatus(
	ctx context.Context,
	op string,
	bookingID, userID int64,
	next domain.BookingStatus,
	ownerOnly bool,
) error {
	s.logger.Info("%s: booking id=%d to status=%s by user=%d", op, bookingID, next, userID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
		}

		if ownerOnly && booking.UserID != userID {
			return ErrAccessDenied
		}

		if !booking.Occupant.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Occupant.Status, next)
		}

		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, next); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
		}
		return nil
	})

	switch {
	case err == nil:
		s.logger.Info("%s: successfully updated booking id=%d to status=%s", op, bookingID, next)
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrInvalidTransition):
		s.logger.Warn("%s: booking id=%d rejected for user=%d: %v", op, bookingID, userID, err)
	default:
		s.logger.Error("%s: failed for booking id=%d: %v", op, bookingID, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
		}
	}

	return err
}
