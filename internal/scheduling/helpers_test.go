package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func newBooking(id, resourceID int64, start, end time.Time, user string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		ResourceID: resourceID,
		Start:      start,
		End:        end,
		Occupant: domain.Occupant{
			UserName:  user,
			Project:   "project-" + user,
			Status:    status,
			StartTime: start,
			EndTime:   end,
		},
	}
}

func mustGrid(t *testing.T, start, end time.Time) []domain.Day {
	t.Helper()
	days, err := BuildGrid(domain.DefaultScheduleConfig(), start, end, date(2024, 6, 3))
	require.NoError(t, err)
	return days
}

func occupiedIndexes(day domain.Day) []int {
	idx := make([]int, 0)
	for _, slot := range day.Slots {
		if slot.IsOccupied() {
			idx = append(idx, slot.Index)
		}
	}
	return idx
}
