package change_booking_status

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalSchedule/internal/api/handlers"
	"github.com/m04kA/SMC-RentalSchedule/internal/api/middleware"
	"github.com/m04kA/SMC-RentalSchedule/internal/service/bookings"
)

// Action переход статуса, который выполняет обработчик
type Action string

const (
	ActionReserve Action = "reserve"
	ActionReturn  Action = "return"
	ActionCancel  Action = "cancel"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "бронирование не найдено"
	msgAccessDenied      = "изменить можно только своё бронирование"
	msgInvalidTransition = "переход в этот статус недоступен"
)

type Handler struct {
	service BookingService
	action  Action
	logger  Logger
}

// NewHandler создаёт обработчик для одного перехода: reserve, return или cancel
func NewHandler(service BookingService, action Action, logger Logger) *Handler {
	return &Handler{
		service: service,
		action:  action,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := fmt.Sprintf("PATCH /bookings/{id}/%s", h.action)

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.apply(r.Context(), bookingID, userID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%d", route, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: booking_id=%d, user_id=%d", route, bookingID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("%s - Invalid transition: booking_id=%d, error=%v", route, bookingID, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("%s - Failed to change status: booking_id=%d, error=%v", route, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Status changed: booking_id=%d, user_id=%d", route, bookingID, userID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) apply(ctx context.Context, bookingID, userID int64) error {
	switch h.action {
	case ActionReserve:
		return h.service.Reserve(ctx, bookingID, userID)
	case ActionReturn:
		return h.service.Return(ctx, bookingID, userID)
	case ActionCancel:
		return h.service.Cancel(ctx, bookingID, userID)
	default:
		return fmt.Errorf("unknown action %q", h.action)
	}
}
