package record

import "go-vms/internal/notification"

// Subject snapshots the fields a notification needs.
func (r Record) Subject() notification.Subject {
	return notification.Subject{
		RecordID:                r.ID.String(),
		RecordKind:              string(r.Kind),
		FirstName:               r.FirstName,
		LastName:                r.LastName,
		Email:                   r.Email,
		Company:                 r.Company,
		Category:                r.Category,
		Host:                    r.Host,
		SubmittedBy:             r.SubmittedBy,
		MeetingRoom:             r.MeetingRoom,
		PurposeOfVisit:          r.PurposeOfVisit,
		InTime:                  r.InTime,
		OutTime:                 r.OutTime,
		ProposedRefreshmentTime: r.ProposedRefreshmentTime,
	}
}

// HostAddress is where overstay reminders go: the host's own address when
// known, else whoever submitted the record. It may be empty.
func (r Record) HostAddress() string {
	if r.HostEmail != "" {
		return r.HostEmail
	}
	return r.SubmittedBy
}

// IntakeNotifications lists one notification per facility flag set on r.
func IntakeNotifications(r Record) []notification.Notification {
	var out []notification.Notification
	subject := r.Subject()

	if r.GuestWifiRequired {
		kind := notification.KindGuestWifi
		if r.Kind == KindAdhoc {
			kind = notification.KindAdhocWifi
		}
		out = append(out, notification.Notification{Kind: kind, Subject: subject})
	}
	if r.Kind == KindGuest && r.MeetingRoomRequired {
		out = append(out, notification.Notification{Kind: notification.KindMeetingRoom, Subject: subject})
	}
	if r.Kind == KindGuest && r.RefreshmentRequired {
		out = append(out, notification.Notification{Kind: notification.KindRefreshment, Subject: subject})
	}
	return out
}
