package get_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/api/handlers"
	getSchedule "github.com/m04kA/SMC-RentalSchedule/internal/usecase/get_schedule"
)

const (
	msgInvalidParams       = "некорректные параметры запроса"
	msgInvalidRange        = "дата начала позже даты окончания"
	msgRangeTooLarge       = "слишком большой диапазон дат"
	msgResourceNotFound    = "ресурс не найден"
	msgScheduleUnavailable = "не удалось загрузить расписание"
)

type Handler struct {
	useCase  GetScheduleUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetScheduleUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/schedule
// Query params: startDate (обязательно), endDate, resourceIds, kind, view (grid|timeline)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	useCaseReq, err := ToUseCaseRequest(
		query.Get("resourceIds"),
		query.Get("kind"),
		query.Get("startDate"),
		query.Get("endDate"),
		query.Get("view"),
		h.location,
	)
	if err != nil {
		h.logger.Warn("GET /schedule - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSchedule.ErrInvalidRange):
			h.logger.Warn("GET /schedule - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getSchedule.ErrRangeTooLarge):
			h.logger.Warn("GET /schedule - Range too large: %v", err)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, getSchedule.ErrInvalidInput):
			h.logger.Warn("GET /schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getSchedule.ErrResourceNotFound):
			h.logger.Warn("GET /schedule - Resource not found: resource_ids=%v", useCaseReq.ResourceIDs)
			handlers.RespondNotFound(w, msgResourceNotFound)

		default:
			h.logger.Error("GET /schedule - Failed to build schedule: resource_ids=%v, error=%v",
				useCaseReq.ResourceIDs, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgScheduleUnavailable)
		}
		return
	}

	h.logger.Info("GET /schedule - Schedule built successfully: resources=%d, days=%d",
		len(result.Resources), len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
