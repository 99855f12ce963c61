package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidSchedule возвращается, если cron-выражение не разбирается
var ErrInvalidSchedule = errors.New("jobs: invalid cron schedule")

const runTimeout = 30 * time.Second

// DraftCleanup освобождает слоты, занятые забытыми черновиками.
// Черновик отменяется, если он создан раньше now-ttl или его интервал уже начался.
type DraftCleanup struct {
	repo         DraftRepository
	ttl          time.Duration
	metrics      Metrics
	logger       Logger
	timeProvider TimeProvider
}

func NewDraftCleanup(repo DraftRepository, ttl time.Duration, metrics Metrics, logger Logger) *DraftCleanup {
	return &DraftCleanup{
		repo:         repo,
		ttl:          ttl,
		metrics:      metrics,
		logger:       logger,
		timeProvider: RealTimeProvider{},
	}
}

// Run выполняет одну очистку
func (j *DraftCleanup) Run(ctx context.Context) (int64, error) {
	now := j.timeProvider.Now()

	released, err := j.repo.CancelStaleDrafts(ctx, now.Add(-j.ttl), now)
	if err != nil {
		return 0, fmt.Errorf("draft cleanup: %w", err)
	}

	if released > 0 {
		j.metrics.RecordStaleDrafts(released)
		j.logger.Info("DraftCleanup: released %d stale drafts", released)
	}
	return released, nil
}

// Schedule регистрирует очистку в планировщике по cron-выражению
func (j *DraftCleanup) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.logger.Error("DraftCleanup: %v", err)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, spec, err)
	}
	return id, nil
}
