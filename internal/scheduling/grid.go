// Package scheduling builds occupancy grids for rooms and inventory items.
// All functions are pure: they take plain data and return plain data.
package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// BuildGrid создает пустую сетку слотов для каждого дня диапазона [startDate, endDate]
// Каждый слот i покрывает окно [WorkStart + i*SlotMinutes, WorkStart + (i+1)*SlotMinutes)
// now используется только для вычисления признака IsToday
func BuildGrid(cfg domain.ScheduleConfig, startDate, endDate, now time.Time) ([]domain.Day, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	loc := cfg.Loc()
	start := dateOnly(startDate, loc)
	end := dateOnly(endDate, loc)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			start.Format(domain.DateFormat), end.Format(domain.DateFormat))
	}

	today := dateOnly(now, loc)
	slotsPerDay := cfg.SlotsPerDay()

	days := make([]domain.Day, 0, DaysInRange(start, end))
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		days = append(days, domain.Day{
			Date:      date,
			DayShort:  date.Format("Mon"),
			DayNumber: date.Day(),
			IsToday:   date.Equal(today),
			IsWeekend: date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
			Slots:     emptySlots(cfg, date, slotsPerDay),
		})
	}

	return days, nil
}

// DaysInRange возвращает количество календарных дней в диапазоне включительно
func DaysInRange(start, end time.Time) int {
	// Считаем по календарю, а не по часам: переход на летнее время не должен терять день
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours()/24) + 1
}

func emptySlots(cfg domain.ScheduleConfig, date time.Time, count int) []domain.Slot {
	slots := make([]domain.Slot, count)
	for i := range slots {
		startMinute := cfg.WorkStartMinute + i*cfg.SlotMinutes
		slots[i] = domain.Slot{
			Index:  i,
			Start:  atMinute(date, startMinute),
			End:    atMinute(date, startMinute+cfg.SlotMinutes),
			Status: domain.SlotAvailable,
		}
	}
	return slots
}

func atMinute(date time.Time, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minute/60, minute%60, 0, 0, date.Location())
}

// dateOnly обнуляет время, переводя дату в часовой пояс сетки
func dateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
