package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go-vms/internal/shared/metrics"

	"go.uber.org/zap"
)

// Async fires notifications without blocking the caller. Failures are
// logged and counted, never returned.
type Async struct {
	next    Dispatcher
	metrics *metrics.Metrics
	logger  *zap.Logger
	wg      sync.WaitGroup
}

func NewAsync(next Dispatcher, m *metrics.Metrics, logger ...*zap.Logger) *Async {
	l := zap.L().Named("notification.async")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.async")
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &Async{next: next, metrics: m, logger: l}
}

// Notify returns immediately. The dispatch outlives ctx's cancellation but
// keeps its values.
func (a *Async) Notify(ctx context.Context, n Notification) {
	detached := context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				a.fail(n, fmt.Errorf("panic: %v", r))
			}
		}()

		if err := a.next.Dispatch(detached, n); err != nil {
			a.fail(n, err)
			return
		}
		a.metrics.NotificationsSent.WithLabelValues(string(n.Kind)).Inc()
	}()
}

func (a *Async) fail(n Notification, err error) {
	a.metrics.NotificationFailures.WithLabelValues(string(n.Kind)).Inc()
	var de *DispatchError
	if !errors.As(err, &de) {
		de = &DispatchError{Kind: n.Kind, RecordID: n.Subject.RecordID, Err: err}
	}
	a.logger.Error("notification dispatch failed", zap.Error(de))
}

// Wait blocks until every in-flight dispatch has returned.
func (a *Async) Wait() {
	a.wg.Wait()
}
