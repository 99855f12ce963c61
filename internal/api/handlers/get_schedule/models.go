package get_schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/api/handlers"
	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	getSchedule "github.com/m04kA/SMC-RentalSchedule/internal/usecase/get_schedule"
)

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	Config     ConfigResponse     `json:"config"`
	Resources  []ResourceResponse `json:"resources"`
	Aggregated bool               `json:"aggregated"`
	Days       []DayResponse      `json:"days"`
	Timeline   []TimelineResponse `json:"timeline,omitempty"`
}

type ConfigResponse struct {
	WorkStartMinute int    `json:"workStartMinute"`
	WorkEndMinute   int    `json:"workEndMinute"`
	SlotMinutes     int    `json:"slotMinutes"`
	Timezone        string `json:"timezone"`
}

type ResourceResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type DayResponse struct {
	Date      string         `json:"date"` // "2024-06-03"
	DayShort  string         `json:"dayShort"`
	DayNumber int            `json:"dayNumber"`
	IsToday   bool           `json:"isToday"`
	IsWeekend bool           `json:"isWeekend"`
	Slots     []SlotResponse `json:"slots"`
}

type SlotResponse struct {
	Index      int               `json:"index"`
	StartTime  string            `json:"startTime"` // "10:00"
	EndTime    string            `json:"endTime"`   // "10:30"
	Status     string            `json:"status"`
	Info       *OccupantResponse `json:"info,omitempty"`
	BookingID  int64             `json:"bookingId,omitempty"`
	ResourceID int64             `json:"resourceId,omitempty"`
	Rooms      []string          `json:"rooms,omitempty"`
}

type OccupantResponse struct {
	UserName    string    `json:"userName"`
	Project     string    `json:"project"`
	Status      string    `json:"status"`
	PeopleCount int       `json:"peopleCount"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

type TimelineResponse struct {
	Date   string          `json:"date"`
	Groups []GroupResponse `json:"groups"`
}

type GroupResponse struct {
	Type       string            `json:"type"`
	StartIndex int               `json:"startIndex"`
	SlotCount  int               `json:"slotCount"`
	StartTime  string            `json:"startTime"`
	EndTime    string            `json:"endTime"`
	Info       *OccupantResponse `json:"info,omitempty"`
	Rooms      []string          `json:"rooms,omitempty"`
}

// ToUseCaseRequest формирует запрос к use case из query параметров
// Даты разбираются в часовом поясе расписания; endDate по умолчанию равна startDate
func ToUseCaseRequest(resourceIDsStr, kindStr, startDateStr, endDateStr, view string, loc *time.Location) (*getSchedule.Request, error) {
	if startDateStr == "" {
		return nil, fmt.Errorf("startDate is required")
	}

	startDate, err := handlers.ParseDate(startDateStr, loc)
	if err != nil {
		return nil, err
	}

	endDate := startDate
	if endDateStr != "" {
		endDate, err = handlers.ParseDate(endDateStr, loc)
		if err != nil {
			return nil, err
		}
	}

	resourceIDs, err := handlers.ParseIDList(resourceIDsStr)
	if err != nil {
		return nil, err
	}

	req := &getSchedule.Request{
		ResourceIDs: resourceIDs,
		StartDate:   startDate,
		EndDate:     endDate,
		View:        view,
	}

	if kindStr != "" {
		kind := domain.ResourceKind(kindStr)
		req.Kind = &kind
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSchedule.Response) *ScheduleResponse {
	out := &ScheduleResponse{
		Config: ConfigResponse{
			WorkStartMinute: resp.Config.WorkStartMinute,
			WorkEndMinute:   resp.Config.WorkEndMinute,
			SlotMinutes:     resp.Config.SlotMinutes,
			Timezone:        resp.Config.Loc().String(),
		},
		Resources:  make([]ResourceResponse, 0, len(resp.Resources)),
		Aggregated: resp.Aggregated,
		Days:       make([]DayResponse, 0, len(resp.Days)),
	}

	for _, res := range resp.Resources {
		out.Resources = append(out.Resources, ResourceResponse{ID: res.ID, Name: res.Name, Kind: string(res.Kind)})
	}

	for _, day := range resp.Days {
		dayResp := DayResponse{
			Date:      day.Date.Format(domain.DateFormat),
			DayShort:  day.DayShort,
			DayNumber: day.DayNumber,
			IsToday:   day.IsToday,
			IsWeekend: day.IsWeekend,
			Slots:     make([]SlotResponse, 0, len(day.Slots)),
		}
		for i := range day.Slots {
			slot := &day.Slots[i]
			dayResp.Slots = append(dayResp.Slots, SlotResponse{
				Index:      slot.Index,
				StartTime:  slot.StartTime(),
				EndTime:    slot.EndTime(),
				Status:     string(slot.Status),
				Info:       fromOccupant(slot.Info),
				BookingID:  slot.BookingID,
				ResourceID: slot.ResourceID,
				Rooms:      slot.Rooms,
			})
		}
		out.Days = append(out.Days, dayResp)
	}

	for _, tl := range resp.Timeline {
		tlResp := TimelineResponse{
			Date:   tl.Date.Format(domain.DateFormat),
			Groups: make([]GroupResponse, 0, len(tl.Groups)),
		}
		for _, g := range tl.Groups {
			tlResp.Groups = append(tlResp.Groups, GroupResponse{
				Type:       string(g.Type),
				StartIndex: g.StartIndex,
				SlotCount:  len(g.Slots),
				StartTime:  g.StartTime.Format(domain.TimeFormat),
				EndTime:    g.EndTime.Format(domain.TimeFormat),
				Info:       fromOccupant(g.Info),
				Rooms:      g.Rooms,
			})
		}
		out.Timeline = append(out.Timeline, tlResp)
	}

	return out
}

func fromOccupant(o *domain.Occupant) *OccupantResponse {
	if o == nil {
		return nil
	}
	return &OccupantResponse{
		UserName:    o.UserName,
		Project:     o.Project,
		Status:      string(o.Status),
		PeopleCount: o.PeopleCount,
		Start:       o.StartTime,
		End:         o.EndTime,
	}
}
