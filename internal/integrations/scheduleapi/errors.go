package scheduleapi

import "errors"

var (
	// ErrUnavailable возвращается, когда сервис расписания недоступен (сеть, таймаут)
	ErrUnavailable = errors.New("scheduleapi client: service unavailable")

	// ErrNotFound возвращается при ответе 404
	ErrNotFound = errors.New("scheduleapi client: not found")

	// ErrBadRequest возвращается при ответе 400
	ErrBadRequest = errors.New("scheduleapi client: bad request")

	// ErrSlotNotAvailable возвращается при ответе 409; оборачивает *ConflictError
	ErrSlotNotAvailable = errors.New("scheduleapi client: slot is not available")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("scheduleapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("scheduleapi client: invalid response")

	// ErrStale возвращается трекером, если за время запроса был отправлен более новый
	ErrStale = errors.New("scheduleapi client: stale response discarded")
)

// ConflictError список бронирований, помешавших операции
type ConflictError struct {
	Message   string
	Conflicts []string
}

func (e *ConflictError) Error() string {
	return e.Message
}
