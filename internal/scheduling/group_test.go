package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

func concatGroups(groups []domain.SlotGroup) []domain.Slot {
	out := make([]domain.Slot, 0)
	for _, g := range groups {
		out = append(out, g.Slots...)
	}
	return out
}

func TestGroup_AllAvailable(t *testing.T) {
	grid := mustGrid(t, date(2024, 6, 3), date(2024, 6, 3))

	groups := Group(grid[0].Slots)
	require.Len(t, groups, 1)
	assert.Equal(t, domain.SlotAvailable, groups[0].Type)
	assert.Len(t, groups[0].Slots, 16)
	assert.Equal(t, "10:00", groups[0].StartTime.Format(domain.TimeFormat))
	assert.Equal(t, "18:00", groups[0].EndTime.Format(domain.TimeFormat))
}

func TestGroup_OneBookingSurrounded(t *testing.T) {
	day := date(2024, 6, 3)
	grid := mustGrid(t, day, day)
	populated, _ := Populate(grid, []*domain.Booking{
		newBooking(1, 1, at(day, 12, 0), at(day, 13, 30), "alice", domain.StatusReserved),
	}, nil)

	groups := Group(populated[0].Slots)
	require.Len(t, groups, 3)

	assert.Equal(t, domain.SlotAvailable, groups[0].Type)
	assert.Equal(t, domain.SlotOccupied, groups[1].Type)
	assert.Equal(t, 4, groups[1].StartIndex)
	assert.Len(t, groups[1].Slots, 3)
	assert.Equal(t, "alice", groups[1].Info.UserName)
	assert.Equal(t, "12:00", groups[1].StartTime.Format(domain.TimeFormat))
	assert.Equal(t, "13:30", groups[1].EndTime.Format(domain.TimeFormat))
	assert.Equal(t, domain.SlotAvailable, groups[2].Type)
	assert.Equal(t, 7, groups[2].StartIndex)

	assert.Equal(t, populated[0].Slots, concatGroups(groups))
}

func TestGroup_SplitsOnDifferentOccupant(t *testing.T) {
	day := date(2024, 6, 3)
	grid := mustGrid(t, day, day)
	populated, _ := Populate(grid, []*domain.Booking{
		newBooking(1, 1, at(day, 10, 0), at(day, 11, 0), "alice", domain.StatusReserved),
		newBooking(2, 1, at(day, 11, 0), at(day, 12, 0), "bob", domain.StatusReserved),
		newBooking(3, 1, at(day, 12, 0), at(day, 13, 0), "bob", domain.StatusIssued),
	}, nil)

	groups := Group(populated[0].Slots)
	require.Len(t, groups, 4)
	assert.Equal(t, "alice", groups[0].Info.UserName)
	assert.Equal(t, "bob", groups[1].Info.UserName)
	assert.Equal(t, domain.StatusReserved, groups[1].Info.Status)
	assert.Equal(t, domain.StatusIssued, groups[2].Info.Status)
	assert.Equal(t, domain.SlotAvailable, groups[3].Type)
}

func TestGroup_MergesSameOccupantByValue(t *testing.T) {
	day := date(2024, 6, 3)
	grid := mustGrid(t, day, day)
	// Два бронирования одного пользователя и проекта встык сливаются в один блок
	populated, _ := Populate(grid, []*domain.Booking{
		newBooking(1, 1, at(day, 10, 0), at(day, 11, 0), "alice", domain.StatusReserved),
		newBooking(2, 1, at(day, 11, 0), at(day, 12, 0), "alice", domain.StatusReserved),
	}, nil)

	groups := Group(populated[0].Slots)
	require.Len(t, groups, 2)
	assert.Len(t, groups[0].Slots, 4)
}

func TestGroup_AggregatedRooms(t *testing.T) {
	slots := []domain.Slot{
		{Index: 0, Status: domain.SlotOccupied, Rooms: []string{"A"}},
		{Index: 1, Status: domain.SlotOccupied, Rooms: []string{"A"}},
		{Index: 2, Status: domain.SlotOccupied, Rooms: []string{"A", "B"}},
		{Index: 3, Status: domain.SlotAvailable},
	}

	groups := Group(slots)
	require.Len(t, groups, 3)
	assert.Len(t, groups[0].Slots, 2)
	assert.Equal(t, []string{"A", "B"}, groups[1].Rooms)
	assert.Equal(t, slots, concatGroups(groups))
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil))
}

func TestGroup_PartitionIsLossless(t *testing.T) {
	alice := &domain.Occupant{UserName: "alice", Project: "p", Status: domain.StatusReserved}
	bob := &domain.Occupant{UserName: "bob", Project: "p", Status: domain.StatusReserved}

	patterns := [][]*domain.Occupant{
		{nil, alice, alice, nil, bob, bob, bob, nil},
		{alice, bob, alice, bob},
		{nil, nil, nil},
		{bob},
	}

	for _, pattern := range patterns {
		slots := make([]domain.Slot, len(pattern))
		for i, occ := range pattern {
			slots[i] = domain.Slot{Index: i, Status: domain.SlotAvailable}
			if occ != nil {
				slots[i].Status = domain.SlotOccupied
				slots[i].Info = occ
			}
		}

		groups := Group(slots)
		assert.Equal(t, slots, concatGroups(groups))

		next := 0
		for _, g := range groups {
			assert.Equal(t, next, g.StartIndex)
			next += len(g.Slots)
		}
	}
}
