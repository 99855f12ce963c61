package extend_booking

import (
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// Request модель запроса на продление бронирования
type Request struct {
	BookingID int64
	UserID    int64
	NewEnd    time.Time
}

// Response продлённое бронирование
type Response struct {
	Booking *domain.Booking
}
