package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-vms/internal/events"
	"go-vms/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is satisfied by *kafkago.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// NotificationPublisher hands notifications to the consumer process instead
// of sending mail in the API or worker process.
type NotificationPublisher struct {
	writer MessageWriter
	now    func() time.Time
	logger *zap.Logger
}

func NewNotificationPublisher(writer MessageWriter, logger ...*zap.Logger) *NotificationPublisher {
	l := zap.L().Named("kafka.producer.notification")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.notification")
	}
	return &NotificationPublisher{writer: writer, now: time.Now, logger: l}
}

func (p *NotificationPublisher) Dispatch(ctx context.Context, n notification.Notification) error {
	event := notification.ToEvent(n, p.now())
	payload, err := json.Marshal(event)
	if err != nil {
		return &notification.DispatchError{Kind: n.Kind, RecordID: n.Subject.RecordID, Err: fmt.Errorf("encode event: %w", err)}
	}

	msg := kafkago.Message{
		Topic: events.NotificationRequestedTopic,
		Key:   []byte(n.Subject.RecordID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "notification_type", Value: []byte(n.Kind)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return &notification.DispatchError{Kind: n.Kind, RecordID: n.Subject.RecordID, Err: err}
	}

	p.logger.Debug("notification event published",
		zap.String("event_id", event.EventID),
		zap.String("type", string(n.Kind)),
		zap.String("record_id", n.Subject.RecordID),
	)
	return nil
}
