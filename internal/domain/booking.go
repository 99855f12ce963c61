package domain

import (
	"strings"
	"time"
)

// BookingStatus represents the lifecycle state of a rental booking
type BookingStatus string

const (
	StatusDraft     BookingStatus = "draft"
	StatusReserved  BookingStatus = "reserved"
	StatusIssued    BookingStatus = "issued"
	StatusReturned  BookingStatus = "returned"
	StatusCancelled BookingStatus = "cancelled"
)

// allowedTransitions описывает допустимые переходы статусов аренды
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusDraft:    {StatusReserved, StatusCancelled},
	StatusReserved: {StatusIssued, StatusCancelled},
	StatusIssued:   {StatusReturned},
}

// IsValid returns true if the status is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusReserved, StatusIssued, StatusReturned, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo returns true if a booking in status s may move to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Occupant is the user/project information attached to an occupied slot
type Occupant struct {
	UserName    string
	Project     string
	Status      BookingStatus
	PeopleCount int
	StartTime   time.Time
	EndTime     time.Time
}

// Booking represents a reservation of a resource (room or inventory item) for [Start, End)
type Booking struct {
	ID         int64
	ResourceID int64
	UserID     int64
	Start      time.Time
	End        time.Time
	Occupant   Occupant
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking no longer occupies its resource
func (b *Booking) IsCancelled() bool {
	return b.Occupant.Status == StatusCancelled
}

// IsFinished returns true if the booking can no longer change
func (b *Booking) IsFinished() bool {
	return b.Occupant.Status == StatusCancelled || b.Occupant.Status == StatusReturned
}

// Overlaps reports whether the booking interval intersects [start, end).
// Both intervals are half-open, so back-to-back bookings do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && start.Before(b.End)
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	ResourceIDs      []int64         // Пусто - все ресурсы
	From             *time.Time      // Бронирования, заканчивающиеся после From
	To               *time.Time      // Бронирования, начинающиеся до To
	Statuses         []BookingStatus // Фильтр по статусам (опционально)
	UserID           *int64          // Фильтр по пользователю (опционально)
	IncludeCancelled bool            // Включать ли отменённые бронирования
}

// ConflictError lists human-readable descriptions of bookings that block a candidate interval
type ConflictError struct {
	Conflicts []string
}

func (e *ConflictError) Error() string {
	return "conflicts with existing bookings: " + strings.Join(e.Conflicts, "; ")
}
