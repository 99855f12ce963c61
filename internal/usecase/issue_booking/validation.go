package issue_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateIssuable проверяет статус и то, что интервал еще не закончился
func validateIssuable(booking *domain.Booking, now time.Time) error {
	if !booking.Occupant.Status.CanTransitionTo(domain.StatusIssued) {
		return fmt.Errorf("%w: status=%s", ErrInvalidTransition, booking.Occupant.Status)
	}

	if !booking.End.After(now) {
		return fmt.Errorf("%w: ended at %s", ErrAlreadyEnded, booking.End.Format(time.RFC3339))
	}

	return nil
}
