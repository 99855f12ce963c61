package scheduling

import (
	"slices"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// Group схлопывает подряд идущие слоты с одинаковым состоянием в блоки для таймлайна
// Группы разбивают вход без пропусков и пересечений, порядок сохраняется
func Group(slots []domain.Slot) []domain.SlotGroup {
	groups := make([]domain.SlotGroup, 0)

	for i, slot := range slots {
		if n := len(groups); n > 0 && sameOccupancy(&groups[n-1], &slot) {
			open := &groups[n-1]
			open.Slots = append(open.Slots, slot)
			open.EndTime = slot.End
			continue
		}

		groups = append(groups, domain.SlotGroup{
			Type:       slot.Status,
			StartIndex: i,
			Slots:      []domain.Slot{slot},
			StartTime:  slot.Start,
			EndTime:    slot.End,
			Info:       slot.Info,
			Rooms:      slot.Rooms,
		})
	}

	return groups
}

func sameOccupancy(group *domain.SlotGroup, slot *domain.Slot) bool {
	if group.Type != slot.Status {
		return false
	}
	if slot.Status != domain.SlotOccupied {
		return true
	}
	if !sameOccupant(group.Info, slot.Info) {
		return false
	}
	return slices.Equal(group.Rooms, slot.Rooms)
}

// sameOccupant сравнивает владельцев по значению: имя, проект и статус
func sameOccupant(a, b *domain.Occupant) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.UserName == b.UserName && a.Project == b.Project && a.Status == b.Status
}
