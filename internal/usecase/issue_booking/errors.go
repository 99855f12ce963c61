package issue_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("issue_booking: booking not found")

	// ErrInvalidTransition возвращается, когда выдать можно только подтверждённое бронирование
	ErrInvalidTransition = errors.New("issue_booking: only reserved bookings can be issued")

	// ErrAlreadyEnded возвращается, когда интервал бронирования уже закончился
	ErrAlreadyEnded = errors.New("issue_booking: booking interval has already ended")

	// ErrSlotNotAvailable возвращается, когда ресурс занят другим бронированием
	// Ошибка оборачивает *domain.ConflictError со списком конфликтов
	ErrSlotNotAvailable = errors.New("issue_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("issue_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("issue_booking: internal error")
)
