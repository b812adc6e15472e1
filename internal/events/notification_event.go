package events

import "time"

const NotificationRequestedTopic = "vms.notification.requested.v1"

const NotificationRequestedEventType = "notification_requested"

// NotificationRequestedEvent carries everything the consumer needs to compose
// the email; it never looks the record up again.
type NotificationRequestedEvent struct {
	EventID    string              `json:"event_id"`
	EventType  string              `json:"event_type"`
	Kind       string              `json:"kind"`
	To         string              `json:"to,omitempty"`
	Subject    NotificationSubject `json:"subject"`
	OccurredAt time.Time           `json:"occurred_at"`
}

type NotificationSubject struct {
	RecordID                string     `json:"record_id"`
	RecordKind              string     `json:"record_kind"`
	FirstName               string     `json:"first_name"`
	LastName                string     `json:"last_name"`
	Email                   string     `json:"email,omitempty"`
	Company                 string     `json:"company,omitempty"`
	Category                string     `json:"category,omitempty"`
	Host                    string     `json:"host,omitempty"`
	SubmittedBy             string     `json:"submitted_by,omitempty"`
	MeetingRoom             string     `json:"meeting_room,omitempty"`
	PurposeOfVisit          string     `json:"purpose_of_visit,omitempty"`
	InTime                  *time.Time `json:"in_time,omitempty"`
	OutTime                 *time.Time `json:"out_time,omitempty"`
	ProposedRefreshmentTime *time.Time `json:"proposed_refreshment_time,omitempty"`
}
