// Package overstay finds checked-in visitors who are past their scheduled
// check-out and reminds their host once per scheduled out time.
package overstay

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go-vms/internal/notification"
	"go-vms/internal/record"
	"go-vms/internal/shared/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultThreshold is how long past outTime a record must be before its
// host is reminded.
const DefaultThreshold = 90 * time.Minute

// Repository is the slice of record storage the sweep needs.
type Repository interface {
	FindOverstayCandidates(ctx context.Context, kinds []record.Kind) ([]record.Record, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, outTime, sentAt time.Time) (bool, error)
}

type Option func(*Job)

func WithThreshold(d time.Duration) Option {
	return func(j *Job) {
		if d > 0 {
			j.threshold = d
		}
	}
}

// WithGuests adds guests to the swept kinds. They are left out by default.
func WithGuests(include bool) Option {
	return func(j *Job) {
		if include {
			j.kinds = []record.Kind{record.KindVisitor, record.KindAdhoc, record.KindGuest}
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(j *Job) {
		if m != nil {
			j.metrics = m
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(j *Job) {
		if now != nil {
			j.now = now
		}
	}
}

type Job struct {
	repo       Repository
	dispatcher notification.Dispatcher
	threshold  time.Duration
	kinds      []record.Kind
	metrics    *metrics.Metrics
	now        func() time.Time
	logger     *zap.Logger
}

func NewJob(repo Repository, dispatcher notification.Dispatcher, logger *zap.Logger, opts ...Option) *Job {
	if logger == nil {
		logger = zap.L()
	}
	j := &Job{
		repo:       repo,
		dispatcher: dispatcher,
		threshold:  DefaultThreshold,
		kinds:      []record.Kind{record.KindVisitor, record.KindAdhoc},
		metrics:    metrics.NewNop(),
		now:        time.Now,
		logger:     logger.Named("overstay.job"),
	}
	for _, opt := range opts {
		opt(j)
	}
	if !slices.Contains(j.kinds, record.KindGuest) {
		j.logger.Info("guests are not swept for overstay; set OVERSTAY_INCLUDE_GUESTS to include them")
	}
	return j
}

// Summary counts what one sweep did.
type Summary struct {
	Scanned map[record.Kind]int
	Sent    int
	Skipped int
	Failed  int
	Marked  int
}

// outcome is what happened to one candidate. A reminder whose delivery
// failed is still marked.
type outcome struct {
	skipped   bool
	delivered bool
	marked    bool
}

// Run performs one sweep. Only the candidate query can fail the sweep as a
// whole; a failing record is logged and the sweep moves on.
func (j *Job) Run(ctx context.Context) (Summary, error) {
	sum := Summary{Scanned: make(map[record.Kind]int, len(j.kinds))}
	for _, k := range j.kinds {
		sum.Scanned[k] = 0
	}

	candidates, err := j.repo.FindOverstayCandidates(ctx, j.kinds)
	if err != nil {
		j.logger.Error("overstay sweep query failed", zap.Error(err))
		return sum, err
	}

	for _, rec := range candidates {
		if ctx.Err() != nil {
			return sum, ctx.Err()
		}
		sum.Scanned[rec.Kind]++
		j.metrics.SweepScanned.WithLabelValues(string(rec.Kind)).Inc()

		out, err := j.safeProcess(ctx, rec)
		if err != nil {
			sum.Failed++
			j.metrics.SweepRecordErrors.Inc()
			j.logger.Error("overstay reminder failed",
				zap.String("record_id", rec.ID.String()),
				zap.String("kind", string(rec.Kind)),
				zap.Error(err),
			)
			continue
		}
		if out.skipped {
			sum.Skipped++
			continue
		}
		if out.delivered {
			sum.Sent++
		} else {
			sum.Failed++
		}
		if out.marked {
			sum.Marked++
		}
	}

	j.metrics.SweepRuns.Inc()
	j.logger.Info("overstay sweep complete",
		zap.Int("visitors", sum.Scanned[record.KindVisitor]),
		zap.Int("adhoc", sum.Scanned[record.KindAdhoc]),
		zap.Int("guests", sum.Scanned[record.KindGuest]),
		zap.Int("sent", sum.Sent),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
		zap.Int("marked", sum.Marked),
	)
	return sum, nil
}

func (j *Job) safeProcess(ctx context.Context, rec record.Record) (out outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = outcome{}, fmt.Errorf("panic: %v", r)
		}
	}()
	return j.process(ctx, rec)
}

func (j *Job) process(ctx context.Context, rec record.Record) (outcome, error) {
	if rec.OutTime == nil {
		return outcome{skipped: true}, nil
	}
	outTime := *rec.OutTime
	now := j.now()

	if !now.After(outTime.Add(j.threshold)) {
		return outcome{skipped: true}, nil
	}
	if rec.Reminder15Sent && rec.Reminder15SentForOutTime != nil && rec.Reminder15SentForOutTime.Equal(outTime) {
		return outcome{skipped: true}, nil
	}

	n := notification.Notification{
		Kind:    notification.KindOverstay,
		Subject: rec.Subject(),
		To:      rec.HostAddress(),
	}
	var out outcome
	if err := j.dispatcher.Dispatch(ctx, n); err != nil {
		j.metrics.NotificationFailures.WithLabelValues(string(n.Kind)).Inc()
		j.logger.Error("overstay reminder dispatch failed",
			zap.String("record_id", rec.ID.String()),
			zap.String("kind", string(rec.Kind)),
			zap.Error(err),
		)
	} else {
		out.delivered = true
		j.metrics.NotificationsSent.WithLabelValues(string(n.Kind)).Inc()
	}

	marked, err := j.repo.MarkReminderSent(ctx, rec.ID, outTime, now.UTC())
	if err != nil {
		return outcome{}, fmt.Errorf("mark reminder sent: %w", err)
	}
	if !marked {
		j.logger.Info("overstay reminder not marked, out time changed during sweep",
			zap.String("record_id", rec.ID.String()),
			zap.Time("out_time", outTime),
		)
	}
	out.marked = marked
	return out, nil
}
