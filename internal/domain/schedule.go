package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidScheduleConfig is returned when working hours cannot be split into slots
var ErrInvalidScheduleConfig = errors.New("domain: invalid schedule config")

// ScheduleConfig describes the working-hours window and slot granularity of a grid
type ScheduleConfig struct {
	WorkStartMinute int
	WorkEndMinute   int
	SlotMinutes     int
	Location        *time.Location
}

// DefaultScheduleConfig returns the 10:00-18:00, 30 minute configuration
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		WorkStartMinute: DefaultWorkStartMinute,
		WorkEndMinute:   DefaultWorkEndMinute,
		SlotMinutes:     DefaultSlotMinutes,
		Location:        time.UTC,
	}
}

// Validate checks that the working window is inside one day and divisible into slots
func (c ScheduleConfig) Validate() error {
	if c.SlotMinutes <= 0 {
		return fmt.Errorf("%w: slot minutes must be positive", ErrInvalidScheduleConfig)
	}
	if c.WorkStartMinute < 0 || c.WorkEndMinute > MinutesInDay {
		return fmt.Errorf("%w: working hours must be within a day", ErrInvalidScheduleConfig)
	}
	if c.WorkStartMinute >= c.WorkEndMinute {
		return fmt.Errorf("%w: work start must be before work end", ErrInvalidScheduleConfig)
	}
	if (c.WorkEndMinute-c.WorkStartMinute)%c.SlotMinutes != 0 {
		return fmt.Errorf("%w: working hours are not a multiple of slot length", ErrInvalidScheduleConfig)
	}
	return nil
}

// SlotsPerDay returns the number of slots in one day of the grid
func (c ScheduleConfig) SlotsPerDay() int {
	if c.SlotMinutes <= 0 {
		return 0
	}
	return (c.WorkEndMinute - c.WorkStartMinute) / c.SlotMinutes
}

// Loc returns the grid location, UTC when unset
func (c ScheduleConfig) Loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// SlotStatus is the occupancy state of a slot or group
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotOccupied  SlotStatus = "occupied"
)

// Slot is one fixed unit of a day's schedule grid
type Slot struct {
	Index     int
	Start     time.Time
	End       time.Time
	Status    SlotStatus
	Info      *Occupant // Владелец слота (для одного ресурса)
	BookingID int64
	// ResourceID ресурс, занявший слот; 0 для свободного слота
	ResourceID int64
	// Rooms названия занятых ресурсов (только в агрегированной сетке)
	Rooms []string
}

// IsOccupied returns true if any booking covers the slot
func (s *Slot) IsOccupied() bool {
	return s.Status == SlotOccupied
}

// StartTime returns the slot start as HH:MM
func (s *Slot) StartTime() string {
	return s.Start.Format(TimeFormat)
}

// EndTime returns the slot end as HH:MM
func (s *Slot) EndTime() string {
	return s.End.Format(TimeFormat)
}

// Day is one calendar date with display metadata and its slots
type Day struct {
	Date      time.Time
	DayShort  string
	DayNumber int
	IsToday   bool
	IsWeekend bool
	Slots     []Slot
}

// SlotGroup is a run of consecutive slots with identical occupancy, used for timeline rendering
type SlotGroup struct {
	Type       SlotStatus
	StartIndex int
	Slots      []Slot
	StartTime  time.Time
	EndTime    time.Time
	Info       *Occupant
	Rooms      []string
}
