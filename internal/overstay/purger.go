package overstay

import (
	"context"
	"time"

	"go-vms/internal/shared/metrics"

	"go.uber.org/zap"
)

// Expirer deletes records whose retention has elapsed.
type Expirer interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Purger hard-deletes records once delete_at has passed.
type Purger struct {
	repo    Expirer
	metrics *metrics.Metrics
	now     func() time.Time
	logger  *zap.Logger
}

func NewPurger(repo Expirer, m *metrics.Metrics, logger *zap.Logger) *Purger {
	if logger == nil {
		logger = zap.L()
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &Purger{
		repo:    repo,
		metrics: m,
		now:     time.Now,
		logger:  logger.Named("overstay.purger"),
	}
}

func (p *Purger) Run(ctx context.Context) (int64, error) {
	n, err := p.repo.PurgeExpired(ctx, p.now().UTC())
	if err != nil {
		p.logger.Error("purge expired records failed", zap.Error(err))
		return 0, err
	}
	p.metrics.RecordsPurged.Add(float64(n))
	if n > 0 {
		p.logger.Info("purged expired records", zap.Int64("count", n))
	}
	return n, nil
}

func PurgeTask(p *Purger) func(ctx context.Context) {
	return func(ctx context.Context) {
		_, _ = p.Run(ctx)
	}
}
