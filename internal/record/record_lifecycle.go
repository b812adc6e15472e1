package record

import (
	"strings"
	"time"

	recorderrors "go-vms/internal/record/errors"
	"go-vms/internal/shared/apperror"
)

// Retention is how long a record is kept after check-in.
const Retention = 365 * 24 * time.Hour

// ApplyUpdate merges req over current and resolves the lifecycle side
// effects of the resulting status. current is not modified.
func ApplyUpdate(current Record, req UpdateRecordRequest, now time.Time) (Record, error) {
	if current.Status == StatusRemoved || current.UIRemoved {
		return Record{}, recorderrors.ErrRecordRemoved
	}

	next := current
	merge(&next, req)

	if req.Status != nil {
		status := ParseStatus(*req.Status)
		if status == StatusRemoved {
			return Record{}, recorderrors.ErrRemoveViaUpdate
		}
		next.Status = status
	}

	if err := Validate(&next); err != nil {
		return Record{}, err
	}

	if next.Status == StatusCheckedIn && next.ActualInTime == nil {
		in := now
		deleteAt := in.Add(Retention)
		next.ActualInTime = &in
		next.DeleteAt = &deleteAt
	}
	if next.Status == StatusCheckedOut && next.ActualOutTime == nil {
		out := now
		next.ActualOutTime = &out
	}

	// A new checkout time re-arms the overstay reminder.
	if req.OutTime != nil {
		resetReminder(&next.Lifecycle)
	}
	if next.Status == StatusCheckedOut {
		resetReminder(&next.Lifecycle)
	}

	return next, nil
}

// Remove hides a record that has not been processed yet. It is the only way
// into StatusRemoved and cannot be undone.
func Remove(current Record, reason string, now time.Time) (Record, error) {
	if current.Status != StatusNew {
		return Record{}, alreadyProcessed(current.Kind)
	}

	next := current
	removedAt := now
	next.Status = StatusRemoved
	next.UIRemoved = true
	next.RemovedAt = &removedAt
	next.RemovedReason = strings.TrimSpace(reason)
	return next, nil
}

func resetReminder(l *Lifecycle) {
	l.Reminder15Sent = false
	l.Reminder15SentAt = nil
	l.Reminder15SentForOutTime = nil
}

func merge(r *Record, req UpdateRecordRequest) {
	setString(&r.Category, req.Category)
	setString(&r.FirstName, req.FirstName)
	setString(&r.LastName, req.LastName)
	setString(&r.Email, req.Email)
	setString(&r.Company, req.Company)
	setString(&r.Host, req.Host)
	setString(&r.HostEmail, req.HostEmail)
	setString(&r.CountryCode, req.CountryCode)
	setString(&r.Phone, req.Phone)
	setString(&r.PurposeOfVisit, req.PurposeOfVisit)
	setString(&r.MeetingRoom, req.MeetingRoom)
	setString(&r.LaptopSerial, req.LaptopSerial)
	setString(&r.CardNo, req.CardNo)
	setString(&r.Signature, req.Signature)
	setString(&r.SubmittedBy, req.SubmittedBy)

	setBool(&r.OnBehalfOf, req.OnBehalfOf)
	setBool(&r.GuestWifiRequired, req.GuestWifiRequired)
	setBool(&r.BadgeSurrendered, req.BadgeSurrendered)
	setBool(&r.HostApproved, req.HostApproved)
	setBool(&r.MeetingRoomRequired, req.MeetingRoomRequired)
	setBool(&r.RefreshmentRequired, req.RefreshmentRequired)

	if req.ProposedRefreshmentTime != nil {
		r.ProposedRefreshmentTime = req.ProposedRefreshmentTime
	}
	if req.InTime != nil {
		r.InTime = req.InTime
	}
	if req.OutTime != nil {
		r.OutTime = req.OutTime
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func notFound(kind Kind) *apperror.AppError {
	switch kind {
	case KindGuest:
		return recorderrors.ErrGuestNotFound
	case KindAdhoc:
		return recorderrors.ErrAdhocNotFound
	default:
		return recorderrors.ErrVisitorNotFound
	}
}

func alreadyProcessed(kind Kind) *apperror.AppError {
	switch kind {
	case KindGuest:
		return recorderrors.ErrGuestProcessed
	case KindAdhoc:
		return recorderrors.ErrAdhocProcessed
	default:
		return recorderrors.ErrVisitorProcessed
	}
}
