package get_schedule_config

import (
	"net/http"

	"github.com/m04kA/SMC-RentalSchedule/internal/api/handlers"
	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

type Handler struct {
	response *ConfigResponse
	logger   Logger
}

func NewHandler(cfg domain.ScheduleConfig, maxRangeDays int, logger Logger) *Handler {
	return &Handler{
		response: FromDomainConfig(cfg, maxRangeDays),
		logger:   logger,
	}
}

// Handle GET /api/v1/schedule/config
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("GET /schedule/config - Config retrieved: slot_minutes=%d, timezone=%s",
		h.response.SlotMinutes, h.response.Timezone)
	handlers.RespondJSON(w, http.StatusOK, h.response)
}
