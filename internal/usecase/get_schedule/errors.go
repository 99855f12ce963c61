package get_schedule

import "errors"

var (
	// ErrInvalidRange возвращается, когда начальная дата позже конечной
	ErrInvalidRange = errors.New("get_schedule: start date is after end date")

	// ErrRangeTooLarge возвращается, когда диапазон превышает max_range_days
	ErrRangeTooLarge = errors.New("get_schedule: date range is too large")

	// ErrResourceNotFound возвращается, когда хотя бы один из ресурсов не найден
	ErrResourceNotFound = errors.New("get_schedule: resource not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_schedule: internal error")
)
