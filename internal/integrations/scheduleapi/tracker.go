package scheduleapi

import (
	"context"
	"sync"
)

// AvailabilityChecker источник проверок доступности
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, q AvailabilityQuery) (*Availability, error)
}

// LatestTracker пропускает только ответ на последний отправленный запрос.
// Каждый Check получает новый порядковый номер и отменяет предыдущий запрос в полёте;
// ответ с устаревшим номером отбрасывается с ErrStale.
type LatestTracker struct {
	checker AvailabilityChecker

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewLatestTracker(checker AvailabilityChecker) *LatestTracker {
	return &LatestTracker{checker: checker}
}

// Check проверяет доступность, вытесняя предыдущую незавершённую проверку
func (t *LatestTracker) Check(ctx context.Context, q AvailabilityQuery) (*Availability, error) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.seq++
	seq := t.seq
	t.cancel = cancel
	t.mu.Unlock()

	availability, err := t.checker.CheckAvailability(ctx, q)

	t.mu.Lock()
	latest := seq == t.seq
	if latest {
		t.cancel = nil
	}
	t.mu.Unlock()
	cancel()

	if !latest {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	return availability, nil
}

// Sequence возвращает номер последнего отправленного запроса
func (t *LatestTracker) Sequence() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq
}
