package consumer

import (
	"context"
	"encoding/json"

	"go-vms/internal/events"
	"go-vms/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

func NewNotificationReader(broker, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       events.NotificationRequestedTopic,
		GroupID:     groupID,
		StartOffset: kafkago.FirstOffset,
	})
}

// ConsumeNotifications delivers notification events until ctx is done.
// Every message is committed, including ones that failed to send: delivery
// is best-effort and a stuck message would block the partition.
func ConsumeNotifications(
	ctx context.Context,
	reader MessageReader,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		handleMessage(ctx, msg, dispatcher, log)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
		}
	}
}

func handleMessage(ctx context.Context, msg kafkago.Message, dispatcher notification.Dispatcher, log *zap.Logger) {
	var event events.NotificationRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode notification event failed", zap.Error(err))
		return
	}

	n, err := notification.FromEvent(event)
	if err != nil {
		log.Error("invalid notification event",
			zap.String("event_id", event.EventID),
			zap.String("kind", event.Kind),
			zap.Error(err),
		)
		return
	}

	if err := dispatcher.Dispatch(ctx, n); err != nil {
		log.Error("notification delivery failed",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
		return
	}

	log.Info("notification delivered",
		zap.String("event_id", event.EventID),
		zap.String("type", event.Kind),
		zap.String("record_id", event.Subject.RecordID),
	)
}
