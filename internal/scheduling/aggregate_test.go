package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	"github.com/m04kA/SMC-RentalSchedule/pkg/ptr"
)

func TestAggregate_AnyOccupied(t *testing.T) {
	day := date(2024, 6, 3)
	grid := mustGrid(t, day, day)

	gridA, _ := Populate(grid, []*domain.Booking{
		newBooking(1, 1, at(day, 10, 0), at(day, 10, 30), "alice", domain.StatusReserved),
	}, ptr.Ptr(int64(1)))
	gridB, _ := Populate(grid, nil, ptr.Ptr(int64(2)))

	result, err := Aggregate([]ResourceGrid{
		{ResourceID: 1, ResourceName: "A", Days: gridA},
		{ResourceID: 2, ResourceName: "B", Days: gridB},
	})
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Equal(t, []int{0}, occupiedIndexes(result[0]))
	assert.Equal(t, []string{"A"}, result[0].Slots[0].Rooms)
	assert.Nil(t, result[0].Slots[0].Info)
	assert.Empty(t, result[0].Slots[1].Rooms)
}

func TestAggregate_ListsEveryBusyResource(t *testing.T) {
	day := date(2024, 6, 3)
	grid := mustGrid(t, day, day)

	bookings := []*domain.Booking{
		newBooking(1, 1, at(day, 10, 0), at(day, 11, 0), "alice", domain.StatusReserved),
		newBooking(2, 2, at(day, 10, 30), at(day, 11, 30), "bob", domain.StatusIssued),
	}
	gridA, _ := Populate(grid, bookings, ptr.Ptr(int64(1)))
	gridB, _ := Populate(grid, bookings, ptr.Ptr(int64(2)))

	result, err := Aggregate([]ResourceGrid{
		{ResourceID: 1, ResourceName: "A", Days: gridA},
		{ResourceID: 2, ResourceName: "B", Days: gridB},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, occupiedIndexes(result[0]))
	assert.Equal(t, []string{"A"}, result[0].Slots[0].Rooms)
	assert.Equal(t, []string{"A", "B"}, result[0].Slots[1].Rooms)
	assert.Equal(t, []string{"B"}, result[0].Slots[2].Rooms)
}

func TestAggregate_Mismatch(t *testing.T) {
	short := mustGrid(t, date(2024, 6, 3), date(2024, 6, 3))
	long := mustGrid(t, date(2024, 6, 3), date(2024, 6, 4))
	shifted := mustGrid(t, date(2024, 6, 4), date(2024, 6, 4))

	_, err := Aggregate([]ResourceGrid{{ResourceID: 1, Days: short}, {ResourceID: 2, Days: long}})
	assert.ErrorIs(t, err, ErrGridMismatch)

	_, err = Aggregate([]ResourceGrid{{ResourceID: 1, Days: short}, {ResourceID: 2, Days: shifted}})
	assert.ErrorIs(t, err, ErrGridMismatch)

	hourly, err := BuildGrid(domain.ScheduleConfig{WorkStartMinute: 600, WorkEndMinute: 1080, SlotMinutes: 60},
		date(2024, 6, 3), date(2024, 6, 3), date(2024, 6, 3))
	require.NoError(t, err)
	_, err = Aggregate([]ResourceGrid{{ResourceID: 1, Days: short}, {ResourceID: 2, Days: hourly}})
	assert.ErrorIs(t, err, ErrGridMismatch)
}

func TestAggregate_Empty(t *testing.T) {
	result, err := Aggregate(nil)
	require.NoError(t, err)
	assert.Empty(t, result)
}
