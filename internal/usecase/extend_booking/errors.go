package extend_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("extend_booking: booking not found")

	// ErrAccessDenied возвращается, когда продлить пытается не владелец
	ErrAccessDenied = errors.New("extend_booking: access denied")

	// ErrBookingFinished возвращается для отменённых и возвращённых бронирований
	ErrBookingFinished = errors.New("extend_booking: booking is already finished")

	// ErrNotExtension возвращается, когда новое окончание не позже текущего
	ErrNotExtension = errors.New("extend_booking: new end must be after current end")

	// ErrSlotNotAvailable возвращается, когда продление пересекается с другим бронированием
	// Ошибка оборачивает *domain.ConflictError со списком конфликтов
	ErrSlotNotAvailable = errors.New("extend_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("extend_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("extend_booking: internal error")
)
