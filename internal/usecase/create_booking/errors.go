package create_booking

import "errors"

var (
	// ErrResourceNotFound возвращается, когда хотя бы один из ресурсов не найден
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrResourceInactive возвращается, когда ресурс выведен из оборота
	ErrResourceInactive = errors.New("create_booking: resource is not active")

	// ErrInvalidInterval возвращается, когда окончание не позже начала
	ErrInvalidInterval = errors.New("create_booking: end must be after start")

	// ErrStartInPast возвращается при попытке забронировать уже прошедшее время
	ErrStartInPast = errors.New("create_booking: start is in the past")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с активным бронированием
	// Ошибка оборачивает *domain.ConflictError со списком конфликтов
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
