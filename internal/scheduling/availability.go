package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// Candidate is a proposed booking that has not been persisted yet
type Candidate struct {
	ResourceID int64
	Start      time.Time
	End        time.Time
	// ExcludeBookingID исключает из проверки само бронирование (при продлении)
	ExcludeBookingID *int64
}

// Availability is the result of checking a candidate against existing bookings
type Availability struct {
	IsAvailable         bool
	Conflicts           []string
	ConflictingBookings []*domain.Booking
}

// CheckAvailability проверяет, пересекается ли кандидат с активными бронированиями того же ресурса
// Интервалы полуоткрытые: бронирования, идущие встык, конфликтом не считаются
func CheckAvailability(candidate Candidate, existing []*domain.Booking) (Availability, error) {
	if !candidate.End.After(candidate.Start) {
		return Availability{}, fmt.Errorf("%w: %s - %s", ErrInvalidInterval,
			candidate.Start.Format(time.RFC3339), candidate.End.Format(time.RFC3339))
	}

	result := Availability{Conflicts: []string{}}

	for _, booking := range existing {
		if booking == nil || booking.ResourceID != candidate.ResourceID || booking.IsCancelled() {
			continue
		}
		if candidate.ExcludeBookingID != nil && booking.ID == *candidate.ExcludeBookingID {
			continue
		}
		if !booking.Overlaps(candidate.Start, candidate.End) {
			continue
		}

		result.Conflicts = append(result.Conflicts, DescribeConflict(booking, candidate.Start.Location()))
		result.ConflictingBookings = append(result.ConflictingBookings, booking)
	}

	result.IsAvailable = len(result.Conflicts) == 0
	return result, nil
}

// DescribeConflict формирует человекочитаемое описание занятого интервала
func DescribeConflict(booking *domain.Booking, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	start := booking.Start.In(loc)
	end := booking.End.In(loc)

	who := booking.Occupant.UserName
	if who == "" {
		who = "unknown"
	}
	if booking.Occupant.Project != "" {
		who = fmt.Sprintf("%s (%s)", who, booking.Occupant.Project)
	}

	const layout = "2006-01-02 15:04"
	if isSameDay(start, end) {
		return fmt.Sprintf("%s: %s-%s", who, start.Format(layout), end.Format(domain.TimeFormat))
	}
	return fmt.Sprintf("%s: %s - %s", who, start.Format(layout), end.Format(layout))
}

func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
