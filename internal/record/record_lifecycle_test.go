package record

import (
	"testing"
	"time"

	recorderrors "go-vms/internal/record/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func visitorRecord(status Status) Record {
	in := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	out := in.Add(time.Hour)
	return Record{
		ID:   uuid.New(),
		Kind: KindVisitor,
		Contact: Contact{
			Category:       "Visitor",
			FirstName:      "Ravi",
			LastName:       "Kumar",
			Email:          "ravi@example.com",
			Company:        "Acme",
			Host:           "Anita Rao",
			CountryCode:    "+91",
			Phone:          "9876543210",
			PurposeOfVisit: "Audit",
		},
		Lifecycle: Lifecycle{Status: status, InTime: &in, OutTime: &out},
	}
}

func TestApplyUpdate_CheckInStampsDeleteAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 5, 0, 0, time.UTC)

	checkedIn, err := ApplyUpdate(visitorRecord(StatusNew), UpdateRecordRequest{Status: ptr("checkedIn")}, now)
	require.NoError(t, err)
	require.NotNil(t, checkedIn.ActualInTime)
	assert.Equal(t, now, *checkedIn.ActualInTime)
	assert.Equal(t, now.Add(365*24*time.Hour), *checkedIn.DeleteAt)

	// A second check-in keeps the first stamp.
	later := now.Add(time.Hour)
	again, err := ApplyUpdate(checkedIn, UpdateRecordRequest{Status: ptr("checkedIn")}, later)
	require.NoError(t, err)
	assert.Equal(t, now, *again.ActualInTime)
	assert.Equal(t, *checkedIn.DeleteAt, *again.DeleteAt)
}

func TestApplyUpdate_CheckOut(t *testing.T) {
	now := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	current := visitorRecord(StatusCheckedIn)
	current.Reminder15Sent = true
	current.Reminder15SentAt = &now
	current.Reminder15SentForOutTime = current.OutTime

	next, err := ApplyUpdate(current, UpdateRecordRequest{Status: ptr("checkedOut")}, now)
	require.NoError(t, err)
	assert.Equal(t, now, *next.ActualOutTime)
	assert.False(t, next.Reminder15Sent)
	assert.Nil(t, next.Reminder15SentAt)
	assert.Nil(t, next.Reminder15SentForOutTime)
}

func TestApplyUpdate_RescheduleRearmsReminder(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	current := visitorRecord(StatusCheckedIn)
	current.Reminder15Sent = true
	current.Reminder15SentAt = &now
	current.Reminder15SentForOutTime = current.OutTime

	t2 := current.OutTime.Add(2 * time.Hour)
	next, err := ApplyUpdate(current, UpdateRecordRequest{OutTime: &t2}, now)
	require.NoError(t, err)
	assert.Equal(t, t2, *next.OutTime)
	assert.False(t, next.Reminder15Sent)
	assert.Nil(t, next.Reminder15SentAt)
	assert.Nil(t, next.Reminder15SentForOutTime)

	// Untouched outTime leaves the reminder alone.
	kept, err := ApplyUpdate(current, UpdateRecordRequest{CardNo: ptr("C-12")}, now)
	require.NoError(t, err)
	assert.True(t, kept.Reminder15Sent)
	assert.Equal(t, "C-12", kept.CardNo)
}

func TestApplyUpdate_Rejections(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		current Record
		req     UpdateRecordRequest
		wantErr error
	}{
		{
			name:    "removed record",
			current: func() Record { r := visitorRecord(StatusRemoved); r.UIRemoved = true; return r }(),
			req:     UpdateRecordRequest{Status: ptr("checkedIn")},
			wantErr: recorderrors.ErrRecordRemoved,
		},
		{
			name:    "removal through update",
			current: visitorRecord(StatusNew),
			req:     UpdateRecordRequest{Status: ptr("removed")},
			wantErr: recorderrors.ErrRemoveViaUpdate,
		},
		{
			name:    "guest-only status on a visitor",
			current: visitorRecord(StatusNew),
			req:     UpdateRecordRequest{Status: ptr("approved")},
			wantErr: recorderrors.ErrInvalidStatus,
		},
		{
			name:    "malformed email",
			current: visitorRecord(StatusNew),
			req:     UpdateRecordRequest{Email: ptr("not-an-email")},
			wantErr: recorderrors.ErrInvalidEmail,
		},
		{
			name:    "category outside the kind",
			current: visitorRecord(StatusNew),
			req:     UpdateRecordRequest{Category: ptr("UD Employee")},
			wantErr: recorderrors.ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyUpdate(tt.current, tt.req, now)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplyUpdate_ClearingRequiredField(t *testing.T) {
	_, err := ApplyUpdate(visitorRecord(StatusNew), UpdateRecordRequest{Company: ptr("  ")}, time.Now())
	require.Error(t, err)
	assert.Equal(t, "Company is required", err.Error())
}

func TestApplyUpdate_AuthorizedAnyCase(t *testing.T) {
	next, err := ApplyUpdate(visitorRecord(StatusCheckedIn), UpdateRecordRequest{Status: ptr("Authorized")}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, StatusAuthorized, next.Status)
}

func TestRemove(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for _, status := range []Status{StatusCheckedIn, StatusCheckedOut, StatusAuthorized, StatusRemoved} {
		t.Run(string(status), func(t *testing.T) {
			current := visitorRecord(status)
			_, err := Remove(current, "dup", now)
			assert.ErrorIs(t, err, recorderrors.ErrVisitorProcessed)
			assert.Equal(t, status, current.Status)
			assert.False(t, current.UIRemoved)
		})
	}

	t.Run("new", func(t *testing.T) {
		next, err := Remove(visitorRecord(StatusNew), " wrong host ", now)
		require.NoError(t, err)
		assert.Equal(t, StatusRemoved, next.Status)
		assert.True(t, next.UIRemoved)
		assert.Equal(t, now, *next.RemovedAt)
		assert.Equal(t, "wrong host", next.RemovedReason)
	})
}

func TestValidate_GuestOnlyServices(t *testing.T) {
	r := visitorRecord(StatusNew)
	r.MeetingRoomRequired = true
	r.RefreshmentRequired = true
	r.MeetingRoom = "Board Room"

	require.NoError(t, Validate(&r))
	assert.False(t, r.MeetingRoomRequired)
	assert.False(t, r.RefreshmentRequired)
	assert.Equal(t, "Board Room", r.MeetingRoom)
}

func TestValidate_Phone(t *testing.T) {
	r := visitorRecord(StatusNew)
	r.CountryCode = "+44"
	r.Phone = "1234"

	err := Validate(&r)
	require.Error(t, err)
	assert.Equal(t, "Phone for UK must be between 9 and 10 digits", err.Error())

	r.CountryCode = ""
	r.Phone = "98765-43210"
	require.NoError(t, Validate(&r))
	assert.Equal(t, "+91", r.CountryCode)
}

func TestIntakeNotifications(t *testing.T) {
	adhoc := visitorRecord(StatusNew)
	adhoc.Kind = KindAdhoc
	adhoc.GuestWifiRequired = true

	got := IntakeNotifications(adhoc)
	require.Len(t, got, 1)
	assert.Equal(t, "adhocWifi", string(got[0].Kind))

	plain := visitorRecord(StatusNew)
	assert.Empty(t, IntakeNotifications(plain))
}

func TestHostAddress(t *testing.T) {
	r := visitorRecord(StatusNew)
	r.SubmittedBy = "desk@corp.com"
	assert.Equal(t, "desk@corp.com", r.HostAddress())

	r.HostEmail = "anita@corp.com"
	assert.Equal(t, "anita@corp.com", r.HostAddress())
}
