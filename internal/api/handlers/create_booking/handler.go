package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalSchedule/internal/api/handlers"
	"github.com/m04kA/SMC-RentalSchedule/internal/api/middleware"
	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	createBooking "github.com/m04kA/SMC-RentalSchedule/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgResourceNotFound   = "ресурс не найден"
	msgResourceInactive   = "ресурс недоступен для бронирования"
	msgInvalidInterval    = "окончание должно быть позже начала"
	msgStartInPast        = "нельзя забронировать прошедшее время"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			var conflictErr *domain.ConflictError
			var conflicts []string
			if errors.As(err, &conflictErr) {
				conflicts = conflictErr.Conflicts
			}
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, resource_ids=%v, conflicts=%d",
				userID, req.ResourceIDs, len(conflicts))
			handlers.RespondConflict(w, msgSlotNotAvailable, conflicts)

		case errors.Is(err, createBooking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: resource_ids=%v", req.ResourceIDs)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createBooking.ErrResourceInactive):
			h.logger.Warn("POST /bookings - Resource inactive: resource_ids=%v", req.ResourceIDs)
			handlers.RespondBadRequest(w, msgResourceInactive)

		case errors.Is(err, createBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid interval: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrStartInPast):
			h.logger.Warn("POST /bookings - Start in the past: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, resource_ids=%v, error=%v",
				userID, req.ResourceIDs, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Bookings created successfully: booking_ids=%v, user_id=%d",
		result.BookingIDs, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
