package notification

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// LogDispatcher composes messages and only logs them. Used when no mail
// transport is configured.
type LogDispatcher struct {
	composer *Composer
	logger   *zap.Logger
}

func NewLogDispatcher(composer *Composer, logger ...*zap.Logger) *LogDispatcher {
	l := zap.L().Named("notification.log")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.log")
	}
	return &LogDispatcher{composer: composer, logger: l}
}

func (d *LogDispatcher) Dispatch(_ context.Context, n Notification) error {
	msg, err := d.composer.Compose(n)
	if errors.Is(err, ErrNoRecipient) {
		d.logger.Warn("overstay reminder has no recipient", zap.String("record_id", n.Subject.RecordID))
		return nil
	}
	if err != nil {
		return &DispatchError{Kind: n.Kind, RecordID: n.Subject.RecordID, Err: err}
	}

	d.logger.Info("notification",
		zap.String("type", string(n.Kind)),
		zap.String("record_id", n.Subject.RecordID),
		zap.Strings("to", msg.To),
		zap.Strings("cc", msg.Cc),
		zap.String("subject", msg.Subject),
	)
	return nil
}
