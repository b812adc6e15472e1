package producer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-vms/internal/events"
	"go-vms/internal/messaging/kafka/producer"
	"go-vms/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs []kafkago.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestNotificationPublisher_Dispatch(t *testing.T) {
	t.Run("publishes event keyed by record", func(t *testing.T) {
		w := &fakeWriter{}
		p := producer.NewNotificationPublisher(w, zap.NewNop())

		err := p.Dispatch(context.Background(), notification.Notification{
			Kind:    notification.KindMeetingRoom,
			Subject: notification.Subject{RecordID: "rec-1", FirstName: "Ana", MeetingRoom: "R2"},
		})

		require.NoError(t, err)
		require.Len(t, w.msgs, 1)
		msg := w.msgs[0]
		assert.Equal(t, events.NotificationRequestedTopic, msg.Topic)
		assert.Equal(t, "rec-1", string(msg.Key))

		var event events.NotificationRequestedEvent
		require.NoError(t, json.Unmarshal(msg.Value, &event))
		assert.Equal(t, "meetingRoom", event.Kind)
		assert.Equal(t, "R2", event.Subject.MeetingRoom)
		assert.NotEmpty(t, event.EventID)
	})

	t.Run("write failure", func(t *testing.T) {
		boom := errors.New("broker unavailable")
		p := producer.NewNotificationPublisher(&fakeWriter{err: boom}, zap.NewNop())

		err := p.Dispatch(context.Background(), notification.Notification{Kind: notification.KindRefreshment})

		var de *notification.DispatchError
		assert.ErrorAs(t, err, &de)
		assert.ErrorIs(t, err, boom)
	})
}
