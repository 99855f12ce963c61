package issue_booking

import "github.com/m04kA/SMC-RentalSchedule/internal/domain"

// Request модель запроса на выдачу ресурса
type Request struct {
	BookingID int64
	UserID    int64 // Сотрудник, выдающий ресурс
}

// Response выданное бронирование
type Response struct {
	Booking *domain.Booking
}
