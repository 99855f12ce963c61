package scheduling

import (
	"fmt"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// ResourceGrid is a populated grid of one resource
type ResourceGrid struct {
	ResourceID   int64
	ResourceName string
	Days         []domain.Day
}

// Aggregate объединяет сетки нескольких ресурсов в одну
// Слот занят, если он занят хотя бы у одного ресурса; Rooms перечисляет занятые ресурсы
// Все сетки должны быть построены одним вызовом BuildGrid, иначе ErrGridMismatch
func Aggregate(grids []ResourceGrid) ([]domain.Day, error) {
	if len(grids) == 0 {
		return []domain.Day{}, nil
	}

	base := grids[0].Days
	for _, grid := range grids[1:] {
		if err := sameShape(base, grid.Days); err != nil {
			return nil, fmt.Errorf("%w: resource=%d: %v", ErrGridMismatch, grid.ResourceID, err)
		}
	}

	result := cloneEmpty(base)
	for _, grid := range grids {
		for d, day := range grid.Days {
			for s, slot := range day.Slots {
				if !slot.IsOccupied() {
					continue
				}
				out := &result[d].Slots[s]
				out.Status = domain.SlotOccupied
				out.Rooms = append(out.Rooms, grid.ResourceName)
			}
		}
	}

	return result, nil
}

func sameShape(a, b []domain.Day) error {
	if len(a) != len(b) {
		return fmt.Errorf("day count %d != %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Date.Equal(b[i].Date) {
			return fmt.Errorf("day %d: date %s != %s", i,
				a[i].Date.Format(domain.DateFormat), b[i].Date.Format(domain.DateFormat))
		}
		if len(a[i].Slots) != len(b[i].Slots) {
			return fmt.Errorf("day %d: slot count %d != %d", i, len(a[i].Slots), len(b[i].Slots))
		}
	}
	return nil
}
