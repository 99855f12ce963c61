package scheduleapi

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// Location возвращает часовой пояс, в котором сервис построил сетку
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidResponse, c.Timezone, err)
	}
	return loc, nil
}

// DomainSlots восстанавливает доменные слоты дня, чтобы их можно было сгруппировать локально
func (d Day) DomainSlots(loc *time.Location) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0, len(d.Slots))

	for _, s := range d.Slots {
		start, err := time.ParseInLocation(domain.DateFormat+" "+domain.TimeFormat, d.Date+" "+s.StartTime, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d start: %v", ErrInvalidResponse, s.Index, err)
		}
		end, err := time.ParseInLocation(domain.DateFormat+" "+domain.TimeFormat, d.Date+" "+s.EndTime, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d end: %v", ErrInvalidResponse, s.Index, err)
		}
		// Слот, заканчивающийся в полночь, приходит как 00:00
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}

		slot := domain.Slot{
			Index:      s.Index,
			Start:      start,
			End:        end,
			Status:     domain.SlotStatus(s.Status),
			BookingID:  s.BookingID,
			ResourceID: s.ResourceID,
			Rooms:      s.Rooms,
		}
		if s.Info != nil {
			slot.Info = &domain.Occupant{
				UserName:    s.Info.UserName,
				Project:     s.Info.Project,
				Status:      domain.BookingStatus(s.Info.Status),
				PeopleCount: s.Info.PeopleCount,
				StartTime:   s.Info.Start,
				EndTime:     s.Info.End,
			}
		}
		slots = append(slots, slot)
	}

	return slots, nil
}
