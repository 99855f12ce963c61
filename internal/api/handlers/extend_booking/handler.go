package extend_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalSchedule/internal/api/handlers"
	"github.com/m04kA/SMC-RentalSchedule/internal/api/middleware"
	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	"github.com/m04kA/SMC-RentalSchedule/internal/service/bookings/models"
	extendBooking "github.com/m04kA/SMC-RentalSchedule/internal/usecase/extend_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgAccessDenied       = "продлить можно только своё бронирование"
	msgBookingFinished    = "бронирование уже завершено"
	msgNotExtension       = "новое окончание должно быть позже текущего"
	msgSlotNotAvailable   = "продление пересекается с другим бронированием"
)

type Handler struct {
	useCase ExtendBookingUseCase
	logger  Logger
}

func NewHandler(useCase ExtendBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/extend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/extend - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/extend - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ExtendBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/extend - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	newEnd, err := handlers.ParseTimestamp(req.End)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/extend - Invalid end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &extendBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		NewEnd:    newEnd,
	})
	if err != nil {
		switch {
		case errors.Is(err, extendBooking.ErrSlotNotAvailable):
			var conflictErr *domain.ConflictError
			var conflicts []string
			if errors.As(err, &conflictErr) {
				conflicts = conflictErr.Conflicts
			}
			h.logger.Warn("PATCH /bookings/{id}/extend - Slot not available: booking_id=%d, conflicts=%d",
				bookingID, len(conflicts))
			handlers.RespondConflict(w, msgSlotNotAvailable, conflicts)

		case errors.Is(err, extendBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/extend - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, extendBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/extend - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, extendBooking.ErrBookingFinished):
			h.logger.Warn("PATCH /bookings/{id}/extend - Booking finished: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgBookingFinished)

		case errors.Is(err, extendBooking.ErrNotExtension), errors.Is(err, extendBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/extend - Not an extension: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgNotExtension)

		default:
			h.logger.Error("PATCH /bookings/{id}/extend - Failed to extend booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/extend - Booking extended: booking_id=%d, user_id=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result.Booking))
}
