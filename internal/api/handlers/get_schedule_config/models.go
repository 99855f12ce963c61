package get_schedule_config

import (
	"fmt"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// ConfigResponse HTTP response model
type ConfigResponse struct {
	WorkStartMinute int    `json:"workStartMinute"`
	WorkEndMinute   int    `json:"workEndMinute"`
	WorkStart       string `json:"workStart"` // "10:00"
	WorkEnd         string `json:"workEnd"`   // "18:00"
	SlotMinutes     int    `json:"slotMinutes"`
	SlotsPerDay     int    `json:"slotsPerDay"`
	Timezone        string `json:"timezone"`
	MaxRangeDays    int    `json:"maxRangeDays"`
}

// FromDomainConfig конвертирует конфигурацию сетки в HTTP response
func FromDomainConfig(cfg domain.ScheduleConfig, maxRangeDays int) *ConfigResponse {
	return &ConfigResponse{
		WorkStartMinute: cfg.WorkStartMinute,
		WorkEndMinute:   cfg.WorkEndMinute,
		WorkStart:       minuteToClock(cfg.WorkStartMinute),
		WorkEnd:         minuteToClock(cfg.WorkEndMinute),
		SlotMinutes:     cfg.SlotMinutes,
		SlotsPerDay:     cfg.SlotsPerDay(),
		Timezone:        cfg.Loc().String(),
		MaxRangeDays:    maxRangeDays,
	}
}

func minuteToClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
