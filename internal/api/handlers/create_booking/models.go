package create_booking

import (
	"github.com/m04kA/SMC-RentalSchedule/internal/api/handlers"
	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	"github.com/m04kA/SMC-RentalSchedule/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-RentalSchedule/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ResourceIDs []int64 `json:"resourceIds"`
	Start       string  `json:"start"` // RFC 3339
	End         string  `json:"end"`   // RFC 3339
	UserName    string  `json:"userName"`
	Project     string  `json:"project"`
	PeopleCount int     `json:"peopleCount"`
	Status      string  `json:"status,omitempty"` // draft (по умолчанию) или reserved
	Notes       *string `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Success    bool                     `json:"success"`
	BookingIDs []int64                  `json:"bookingIds"`
	Bookings   []models.BookingResponse `json:"bookings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	start, err := handlers.ParseTimestamp(r.Start)
	if err != nil {
		return nil, err
	}

	end, err := handlers.ParseTimestamp(r.End)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:      userID,
		ResourceIDs: r.ResourceIDs,
		Start:       start,
		End:         end,
		UserName:    r.UserName,
		Project:     r.Project,
		PeopleCount: r.PeopleCount,
		Status:      domain.BookingStatus(r.Status),
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Success:    true,
		BookingIDs: resp.BookingIDs,
		Bookings:   models.FromDomainBookingList(resp.Bookings).Bookings,
	}
}
