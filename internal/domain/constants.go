package domain

// Default schedule values: working hours 10:00-18:00 split into half-hour slots
const (
	DefaultWorkStartMinute = 600
	DefaultWorkEndMinute   = 1080
	DefaultSlotMinutes     = 30
	DefaultMaxRangeDays    = 62
)

// Business validation constants
const (
	MinutesInDay       = 24 * 60
	MaxUserNameLength  = 150
	MaxProjectLength   = 255
	MaxNotesLength     = 500
	MaxResourcesPerReq = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронирование занимает ресурс
var ActiveStatuses = []BookingStatus{
	StatusDraft,
	StatusReserved,
	StatusIssued,
	StatusReturned,
}
