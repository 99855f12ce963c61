package scheduleapi

import "time"

// Schedule ответ GET /api/v1/schedule
type Schedule struct {
	Config     Config     `json:"config"`
	Resources  []Resource `json:"resources"`
	Aggregated bool       `json:"aggregated"`
	Days       []Day      `json:"days"`
	Timeline   []Timeline `json:"timeline,omitempty"`
}

type Config struct {
	WorkStartMinute int    `json:"workStartMinute"`
	WorkEndMinute   int    `json:"workEndMinute"`
	SlotMinutes     int    `json:"slotMinutes"`
	Timezone        string `json:"timezone"`
}

type Resource struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type Day struct {
	Date      string `json:"date"`
	DayShort  string `json:"dayShort"`
	DayNumber int    `json:"dayNumber"`
	IsToday   bool   `json:"isToday"`
	IsWeekend bool   `json:"isWeekend"`
	Slots     []Slot `json:"slots"`
}

type Slot struct {
	Index      int       `json:"index"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Status     string    `json:"status"`
	Info       *Occupant `json:"info,omitempty"`
	BookingID  int64     `json:"bookingId,omitempty"`
	ResourceID int64     `json:"resourceId,omitempty"`
	Rooms      []string  `json:"rooms,omitempty"`
}

type Occupant struct {
	UserName    string    `json:"userName"`
	Project     string    `json:"project"`
	Status      string    `json:"status"`
	PeopleCount int       `json:"peopleCount"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

type Timeline struct {
	Date   string  `json:"date"`
	Groups []Group `json:"groups"`
}

type Group struct {
	Type       string    `json:"type"`
	StartIndex int       `json:"startIndex"`
	SlotCount  int       `json:"slotCount"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Info       *Occupant `json:"info,omitempty"`
	Rooms      []string  `json:"rooms,omitempty"`
}

// ScheduleQuery параметры запроса расписания
type ScheduleQuery struct {
	ResourceIDs []int64
	Kind        string
	StartDate   string // YYYY-MM-DD
	EndDate     string // YYYY-MM-DD, опционально
	View        string // grid | timeline
}

// Availability ответ GET /api/v1/resources/{id}/availability
type Availability struct {
	ResourceID  int64     `json:"resourceId"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	IsAvailable bool      `json:"isAvailable"`
	Conflicts   []string  `json:"conflicts"`
}

// AvailabilityQuery параметры проверки доступности
type AvailabilityQuery struct {
	ResourceID       int64
	Start            time.Time
	End              time.Time
	ExcludeBookingID *int64
}

// CreateBookingRequest тело POST /api/v1/bookings
type CreateBookingRequest struct {
	ResourceIDs []int64 `json:"resourceIds"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	UserName    string  `json:"userName"`
	Project     string  `json:"project"`
	PeopleCount int     `json:"peopleCount"`
	Status      string  `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// CreateBookingResponse ответ на создание бронирований
type CreateBookingResponse struct {
	Success    bool      `json:"success"`
	BookingIDs []int64   `json:"bookingIds"`
	Bookings   []Booking `json:"bookings"`
}

type Booking struct {
	ID          int64     `json:"id"`
	ResourceID  int64     `json:"resourceId"`
	UserID      int64     `json:"userId"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	UserName    string    `json:"userName"`
	Project     string    `json:"project"`
	PeopleCount int       `json:"peopleCount"`
	Notes       *string   `json:"notes,omitempty"`
}

// ErrorResponse модель ошибки от сервиса расписания
type ErrorResponse struct {
	Success   bool     `json:"success"`
	Error     string   `json:"error"`
	Conflicts []string `json:"conflicts,omitempty"`
}
