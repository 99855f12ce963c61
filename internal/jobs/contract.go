package jobs

import (
	"context"
	"time"
)

// DraftRepository отменяет просроченные черновики бронирований
type DraftRepository interface {
	CancelStaleDrafts(ctx context.Context, createdBefore, startedBefore time.Time) (int64, error)
}

type Metrics interface {
	RecordStaleDrafts(count int64)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
