package issue_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalSchedule/internal/api/handlers"
	"github.com/m04kA/SMC-RentalSchedule/internal/api/middleware"
	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	"github.com/m04kA/SMC-RentalSchedule/internal/service/bookings/models"
	issueBooking "github.com/m04kA/SMC-RentalSchedule/internal/usecase/issue_booking"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "бронирование не найдено"
	msgInvalidTransition = "выдать можно только подтверждённое бронирование"
	msgAlreadyEnded      = "время бронирования уже истекло"
	msgSlotNotAvailable  = "ресурс занят другим бронированием"
)

type Handler struct {
	useCase IssueBookingUseCase
	logger  Logger
}

func NewHandler(useCase IssueBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/issue
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/issue - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/issue - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &issueBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, issueBooking.ErrSlotNotAvailable):
			var conflictErr *domain.ConflictError
			var conflicts []string
			if errors.As(err, &conflictErr) {
				conflicts = conflictErr.Conflicts
			}
			h.logger.Warn("PATCH /bookings/{id}/issue - Slot not available: booking_id=%d, conflicts=%d",
				bookingID, len(conflicts))
			handlers.RespondConflict(w, msgSlotNotAvailable, conflicts)

		case errors.Is(err, issueBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/issue - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, issueBooking.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/issue - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, issueBooking.ErrAlreadyEnded):
			h.logger.Warn("PATCH /bookings/{id}/issue - Already ended: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgAlreadyEnded)

		case errors.Is(err, issueBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/issue - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("PATCH /bookings/{id}/issue - Failed to issue booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/issue - Booking issued: booking_id=%d, issued_by=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result.Booking))
}
