package notification

import (
	"time"

	"go-vms/internal/events"

	"github.com/google/uuid"
)

// ToEvent wraps n for the Kafka transport.
func ToEvent(n Notification, now time.Time) events.NotificationRequestedEvent {
	s := n.Subject
	return events.NotificationRequestedEvent{
		EventID:   uuid.NewString(),
		EventType: events.NotificationRequestedEventType,
		Kind:      string(n.Kind),
		To:        n.To,
		Subject: events.NotificationSubject{
			RecordID:                s.RecordID,
			RecordKind:              s.RecordKind,
			FirstName:               s.FirstName,
			LastName:                s.LastName,
			Email:                   s.Email,
			Company:                 s.Company,
			Category:                s.Category,
			Host:                    s.Host,
			SubmittedBy:             s.SubmittedBy,
			MeetingRoom:             s.MeetingRoom,
			PurposeOfVisit:          s.PurposeOfVisit,
			InTime:                  s.InTime,
			OutTime:                 s.OutTime,
			ProposedRefreshmentTime: s.ProposedRefreshmentTime,
		},
		OccurredAt: now.UTC(),
	}
}

func FromEvent(e events.NotificationRequestedEvent) (Notification, error) {
	kind := Kind(e.Kind)
	if !kind.Valid() {
		return Notification{}, ErrUnknownKind
	}
	s := e.Subject
	return Notification{
		Kind: kind,
		To:   e.To,
		Subject: Subject{
			RecordID:                s.RecordID,
			RecordKind:              s.RecordKind,
			FirstName:               s.FirstName,
			LastName:                s.LastName,
			Email:                   s.Email,
			Company:                 s.Company,
			Category:                s.Category,
			Host:                    s.Host,
			SubmittedBy:             s.SubmittedBy,
			MeetingRoom:             s.MeetingRoom,
			PurposeOfVisit:          s.PurposeOfVisit,
			InTime:                  s.InTime,
			OutTime:                 s.OutTime,
			ProposedRefreshmentTime: s.ProposedRefreshmentTime,
		},
	}, nil
}
