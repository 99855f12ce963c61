package check_availability

import "time"

// Request модель запроса предварительной проверки
type Request struct {
	ResourceID       int64
	Start            time.Time
	End              time.Time
	ExcludeBookingID *int64 // Бронирование, которое не учитывается (при продлении)
}

// Response результат проверки; не является гарантией при создании бронирования
type Response struct {
	ResourceID  int64
	Start       time.Time
	End         time.Time
	IsAvailable bool
	Conflicts   []string
}
