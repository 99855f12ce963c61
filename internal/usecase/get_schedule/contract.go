package get_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Resource, error)
	List(ctx context.Context, kind *domain.ResourceKind) ([]*domain.Resource, error)
}

// Metrics счетчики расписания
type Metrics interface {
	RecordIntegrityWarnings(count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
