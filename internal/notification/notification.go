// Package notification composes and delivers the emails the tracker sends:
// IT/admin requests raised at intake and overstay reminders to hosts.
//
// Delivery is best-effort everywhere. Callers log a failed dispatch and move
// on; nothing is retried and nothing rolls back the operation that triggered it.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Kind string

const (
	KindGuestWifi   Kind = "guestWifi"
	KindAdhocWifi   Kind = "adhocWifi"
	KindMeetingRoom Kind = "meetingRoom"
	KindRefreshment Kind = "refreshment"
	KindOverstay    Kind = "overstay"
)

func (k Kind) Valid() bool {
	switch k {
	case KindGuestWifi, KindAdhocWifi, KindMeetingRoom, KindRefreshment, KindOverstay:
		return true
	}
	return false
}

// Subject is a snapshot of the record a notification is about.
type Subject struct {
	RecordID                string
	RecordKind              string
	FirstName               string
	LastName                string
	Email                   string
	Company                 string
	Category                string
	Host                    string
	SubmittedBy             string
	MeetingRoom             string
	PurposeOfVisit          string
	InTime                  *time.Time
	OutTime                 *time.Time
	ProposedRefreshmentTime *time.Time
}

// DisplayName falls back to "Visitor" when both names are blank.
func (s Subject) DisplayName() string {
	name := strings.TrimSpace(s.FirstName + " " + s.LastName)
	if name == "" {
		return "Visitor"
	}
	return name
}

type Notification struct {
	Kind    Kind
	Subject Subject
	// To is the resolved host address. Only overstay reminders use it; every
	// other kind goes to a fixed team mailbox.
	To string
}

//go:generate mockgen -source=notification.go -destination=mock/dispatcher_mock.go -package=mock
type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}

var (
	ErrNoRecipient = errors.New("no host email provided; cannot send reminder")
	ErrUnknownKind = errors.New("unknown notification kind")
)

// DispatchError is a transport failure for one notification.
type DispatchError struct {
	Kind     Kind
	RecordID string
	Err      error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s notification for record %s: %v", e.Kind, e.RecordID, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
