package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// IntegrityWarning сообщает, что два активных бронирования одного ресурса заняли один слот
type IntegrityWarning struct {
	Date       time.Time
	SlotIndex  int
	ResourceID int64
	BookingIDs [2]int64 // Прежний владелец слота и бронирование, перезаписавшее его
}

func (w IntegrityWarning) String() string {
	return fmt.Sprintf("resource=%d date=%s slot=%d bookings=%d,%d",
		w.ResourceID, w.Date.Format(domain.DateFormat), w.SlotIndex, w.BookingIDs[0], w.BookingIDs[1])
}

// Populate раскладывает бронирования по слотам сетки и возвращает новую сетку
// Входная сетка не изменяется; все слоты копии сначала сбрасываются в available,
// поэтому повторный вызов с теми же данными дает тот же результат.
// Если resourceID задан, учитываются только бронирования этого ресурса.
// Части бронирований вне рабочих часов в сетке не представлены.
func Populate(days []domain.Day, bookings []*domain.Booking, resourceID *int64) ([]domain.Day, []IntegrityWarning) {
	result := cloneEmpty(days)
	var warnings []IntegrityWarning

	for _, booking := range bookings {
		if booking == nil || booking.IsCancelled() {
			continue
		}
		if resourceID != nil && booking.ResourceID != *resourceID {
			continue
		}

		for d := range result {
			day := &result[d]
			if !intersectsDay(day, booking) {
				continue
			}

			for s := range day.Slots {
				slot := &day.Slots[s]
				if !booking.Overlaps(slot.Start, slot.End) {
					continue
				}

				if slot.IsOccupied() && slot.ResourceID == booking.ResourceID && slot.BookingID != booking.ID {
					warnings = append(warnings, IntegrityWarning{
						Date:       day.Date,
						SlotIndex:  slot.Index,
						ResourceID: booking.ResourceID,
						BookingIDs: [2]int64{slot.BookingID, booking.ID},
					})
				}

				info := booking.Occupant
				slot.Status = domain.SlotOccupied
				slot.Info = &info
				slot.BookingID = booking.ID
				slot.ResourceID = booking.ResourceID
			}
		}
	}

	return result, warnings
}

// intersectsDay быстро отсекает дни, в рабочие часы которых бронирование не попадает
func intersectsDay(day *domain.Day, booking *domain.Booking) bool {
	if len(day.Slots) == 0 {
		return false
	}
	first := day.Slots[0].Start
	last := day.Slots[len(day.Slots)-1].End
	return booking.Overlaps(first, last)
}

func cloneEmpty(days []domain.Day) []domain.Day {
	result := make([]domain.Day, len(days))
	for i, day := range days {
		result[i] = day
		result[i].Slots = make([]domain.Slot, len(day.Slots))
		for j, slot := range day.Slots {
			result[i].Slots[j] = domain.Slot{
				Index:  slot.Index,
				Start:  slot.Start,
				End:    slot.End,
				Status: domain.SlotAvailable,
			}
		}
	}
	return result
}
