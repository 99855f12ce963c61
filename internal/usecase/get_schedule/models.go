package get_schedule

import (
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// Представления расписания
const (
	ViewGrid     = "grid"     // Сетка слотов по дням
	ViewTimeline = "timeline" // Сетка + сгруппированные интервалы для таймлайна
)

// Request модель запроса расписания
type Request struct {
	ResourceIDs []int64              // Пусто - все активные ресурсы (с учетом Kind)
	Kind        *domain.ResourceKind // Фильтр по виду ресурса (опционально)
	StartDate   time.Time            // Первая дата диапазона
	EndDate     time.Time            // Последняя дата диапазона (включительно)
	View        string               // grid или timeline, по умолчанию grid
}

// Response модель ответа с расписанием
type Response struct {
	Config     domain.ScheduleConfig
	Resources  []*domain.Resource
	Aggregated bool         // true, если сетка объединяет несколько ресурсов
	Days       []domain.Day // Сетка одного ресурса или объединённая сетка
	Timeline   []DayTimeline
}

// DayTimeline сгруппированные интервалы одного дня
type DayTimeline struct {
	Date   time.Time
	Groups []domain.SlotGroup
}
