package scheduling

import "errors"

var (
	// ErrInvalidRange возвращается, когда дата окончания раньше даты начала
	ErrInvalidRange = errors.New("scheduling: end date is before start date")

	// ErrGridMismatch возвращается при агрегации сеток разной формы
	ErrGridMismatch = errors.New("scheduling: grids have different shapes")

	// ErrInvalidInterval возвращается, когда конец интервала не позже начала
	ErrInvalidInterval = errors.New("scheduling: interval end must be after start")

	// ErrInvalidConfig возвращается при некорректной конфигурации рабочих часов
	ErrInvalidConfig = errors.New("scheduling: invalid schedule config")
)
