package overstay

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs a task once at Start and then on every tick. Runs never
// overlap: a tick that fires during a long run is dropped by the ticker.
type Scheduler struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context)
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(name string, interval time.Duration, task func(ctx context.Context), logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.L()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger.Named("overstay.scheduler").With(zap.String("task", name)),
	}
}

// Start is a no-op if the scheduler is already running.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
}

// Stop cancels the loop and waits for an in-flight run to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.logger.Info("scheduler started", zap.Duration("interval", s.interval))
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled run panicked", zap.Any("panic", r))
		}
	}()
	s.task(ctx)
}

// SweepTask adapts a Job to the scheduler. Errors are already logged by Run.
func SweepTask(j *Job) func(ctx context.Context) {
	return func(ctx context.Context) {
		_, _ = j.Run(ctx)
	}
}
