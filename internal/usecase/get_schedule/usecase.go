package get_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	"github.com/m04kA/SMC-RentalSchedule/internal/scheduling"
)

// UseCase use case для получения сетки занятости ресурсов
type UseCase struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	config       domain.ScheduleConfig
	maxRangeDays int
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	config domain.ScheduleConfig,
	maxRangeDays int,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		config:       config,
		maxRangeDays: maxRangeDays,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения расписания
// Один ресурс - сетка с владельцами слотов, несколько ресурсов - объединённая сетка с названиями занятых ресурсов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSchedule: resources=%v, period=%s to %s, view=%s",
		req.ResourceIDs, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.View)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxRangeDays); err != nil {
		uc.logger.Warn("GetSchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Строим пустую сетку
	days, err := scheduling.BuildGrid(uc.config, req.StartDate, req.EndDate, uc.timeProvider.Now())
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidRange) {
			uc.logger.Warn("GetSchedule: invalid range: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		uc.logger.Error("GetSchedule: failed to build grid: %v", err)
		return nil, fmt.Errorf("%w: failed to build grid: %w", ErrInternal, err)
	}

	// 3. Получаем ресурсы
	resources, err := uc.loadResources(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Config:     uc.config,
		Resources:  resources,
		Aggregated: len(resources) > 1,
		Days:       days,
	}

	if len(resources) == 0 {
		uc.logger.Info("GetSchedule: no resources matched, returning empty grid")
		return uc.withTimeline(resp, req), nil
	}

	// 4. Получаем бронирования, пересекающиеся с диапазоном сетки
	bookings, err := uc.bookingRepo.List(ctx, gridFilter(days, resources))
	if err != nil {
		uc.logger.Error("GetSchedule: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	// 5. Раскладываем бронирования по сеткам ресурсов
	grids := make([]scheduling.ResourceGrid, 0, len(resources))
	for _, res := range resources {
		resourceID := res.ID
		populated, warnings := scheduling.Populate(days, bookings, &resourceID)
		uc.reportWarnings(warnings)

		grids = append(grids, scheduling.ResourceGrid{
			ResourceID:   res.ID,
			ResourceName: res.Name,
			Days:         populated,
		})
	}

	// 6. Один ресурс отдаём как есть, несколько объединяем
	if len(grids) == 1 {
		resp.Days = grids[0].Days
	} else {
		aggregated, err := scheduling.Aggregate(grids)
		if err != nil {
			uc.logger.Error("GetSchedule: failed to aggregate %d grids: %v", len(grids), err)
			return nil, fmt.Errorf("%w: failed to aggregate grids: %w", ErrInternal, err)
		}
		resp.Days = aggregated
	}

	uc.logger.Info("GetSchedule: built %d days for %d resources from %d bookings",
		len(resp.Days), len(resources), len(bookings))

	return uc.withTimeline(resp, req), nil
}

// loadResources получает ресурсы по ID или все активные ресурсы указанного вида
func (uc *UseCase) loadResources(ctx context.Context, req *Request) ([]*domain.Resource, error) {
	if len(req.ResourceIDs) == 0 {
		resources, err := uc.resourceRepo.List(ctx, req.Kind)
		if err != nil {
			uc.logger.Error("GetSchedule: failed to list resources: %v", err)
			return nil, fmt.Errorf("%w: failed to list resources: %w", ErrInternal, err)
		}
		return resources, nil
	}

	resources, err := uc.resourceRepo.GetByIDs(ctx, req.ResourceIDs)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to get resources %v: %v", req.ResourceIDs, err)
		return nil, fmt.Errorf("%w: failed to get resources: %w", ErrInternal, err)
	}

	if len(resources) != len(req.ResourceIDs) {
		uc.logger.Warn("GetSchedule: requested %d resources, found %d", len(req.ResourceIDs), len(resources))
		return nil, fmt.Errorf("%w: requested %v", ErrResourceNotFound, req.ResourceIDs)
	}

	// Сохраняем порядок из запроса: он определяет порядок названий в объединённых слотах
	byID := make(map[int64]*domain.Resource, len(resources))
	for _, res := range resources {
		byID[res.ID] = res
	}
	ordered := make([]*domain.Resource, 0, len(req.ResourceIDs))
	for _, id := range req.ResourceIDs {
		res, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrResourceNotFound, id)
		}
		ordered = append(ordered, res)
	}

	return ordered, nil
}

func (uc *UseCase) reportWarnings(warnings []scheduling.IntegrityWarning) {
	if len(warnings) == 0 {
		return
	}
	for _, w := range warnings {
		uc.logger.Warn("GetSchedule: data integrity: %s", w.String())
	}
	uc.metrics.RecordIntegrityWarnings(len(warnings))
}

func (uc *UseCase) withTimeline(resp *Response, req *Request) *Response {
	if req.View != ViewTimeline {
		return resp
	}

	resp.Timeline = make([]DayTimeline, 0, len(resp.Days))
	for _, day := range resp.Days {
		resp.Timeline = append(resp.Timeline, DayTimeline{
			Date:   day.Date,
			Groups: scheduling.Group(day.Slots),
		})
	}
	return resp
}

// gridFilter выбирает активные бронирования ресурсов, пересекающиеся с днями сетки
func gridFilter(days []domain.Day, resources []*domain.Resource) domain.BookingsFilter {
	ids := make([]int64, len(resources))
	for i, res := range resources {
		ids[i] = res.ID
	}

	from := days[0].Date
	to := days[len(days)-1].Date.AddDate(0, 0, 1)

	return domain.BookingsFilter{
		ResourceIDs: ids,
		From:        &from,
		To:          &to,
	}
}
