package overstay_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-vms/internal/notification"
	mock_notification "go-vms/internal/notification/mock"
	"go-vms/internal/overstay"
	"go-vms/internal/record"
	recordMock "go-vms/internal/record/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// memRepo keeps records in memory and applies the same filters as the
// postgres repository.
type memRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*record.Record
}

func newMemRepo(recs ...record.Record) *memRepo {
	m := &memRepo{records: map[uuid.UUID]*record.Record{}}
	for i := range recs {
		r := recs[i]
		m.records[r.ID] = &r
	}
	return m
}

func (m *memRepo) FindOverstayCandidates(_ context.Context, kinds []record.Kind) ([]record.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []record.Record
	for _, r := range m.records {
		if !r.UIRemoved && r.Status == record.StatusCheckedIn && r.OutTime != nil && contains(kinds, r.Kind) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRepo) MarkReminderSent(_ context.Context, id uuid.UUID, outTime, sentAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok || r.OutTime == nil || !r.OutTime.Equal(outTime) {
		return false, nil
	}
	r.Reminder15Sent = true
	r.Reminder15SentAt = &sentAt
	r.Reminder15SentForOutTime = &outTime
	return true, nil
}

func (m *memRepo) get(id uuid.UUID) record.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.records[id]
}

func contains(kinds []record.Kind, k record.Kind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

var now = time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

var categories = map[record.Kind]string{
	record.KindVisitor: "Visitor",
	record.KindAdhoc:   "Adhoc",
	record.KindGuest:   "UD Employee",
}

// checkedIn returns a record that passes validation for its kind.
func checkedIn(kind record.Kind, outTime time.Time) record.Record {
	inTime := outTime.Add(-3 * time.Hour)
	return record.Record{
		ID:   uuid.New(),
		Kind: kind,
		Contact: record.Contact{
			Category:       categories[kind],
			FirstName:      "Ravi",
			LastName:       "Kumar",
			Email:          "ravi@example.com",
			Company:        "Acme",
			Host:           "Anita Rao",
			HostEmail:      "anita@corp.com",
			CountryCode:    "+91",
			Phone:          "9876543210",
			PurposeOfVisit: "Audit",
			SubmittedBy:    "desk@corp.com",
		},
		Lifecycle: record.Lifecycle{
			Status:       record.StatusCheckedIn,
			InTime:       &inTime,
			OutTime:      &outTime,
			ActualInTime: &inTime,
		},
	}
}

func TestJob_RemindsOncePerOutTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := mock_notification.NewMockDispatcher(ctrl)

	rec := checkedIn(record.KindVisitor, now.Add(-100*time.Minute))
	repo := newMemRepo(rec)
	job := overstay.NewJob(repo, dispatcher, zap.NewNop(), overstay.WithClock(clock))

	dispatcher.EXPECT().
		Dispatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n notification.Notification) error {
			assert.Equal(t, notification.KindOverstay, n.Kind)
			assert.Equal(t, "anita@corp.com", n.To)
			assert.Equal(t, rec.ID.String(), n.Subject.RecordID)
			return nil
		}).
		Times(1)

	first, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Sent)
	assert.Equal(t, 1, first.Marked)
	assert.Equal(t, 1, first.Scanned[record.KindVisitor])

	stored := repo.get(rec.ID)
	assert.True(t, stored.Reminder15Sent)
	require.NotNil(t, stored.Reminder15SentForOutTime)
	assert.True(t, stored.Reminder15SentForOutTime.Equal(*rec.OutTime))

	second, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Sent)
	assert.Equal(t, 1, second.Skipped)
	assert.True(t, repo.get(rec.ID).Reminder15SentForOutTime.Equal(*rec.OutTime))
}

func TestJob_RearmedRecordIsRemindedAgain(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := mock_notification.NewMockDispatcher(ctrl)

	t1 := now.Add(-5 * time.Hour)
	t2 := now.Add(-2 * time.Hour)
	rec := checkedIn(record.KindAdhoc, t1)
	rec.Reminder15Sent = true
	rec.Reminder15SentForOutTime = &t1

	// An update moved outTime to t2 and reset the reminder fields.
	next, err := record.ApplyUpdate(rec, record.UpdateRecordRequest{OutTime: &t2}, now)
	require.NoError(t, err)
	assert.False(t, next.Reminder15Sent)

	repo := newMemRepo(next)
	job := overstay.NewJob(repo, dispatcher, zap.NewNop(), overstay.WithClock(clock))

	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	sum, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Sent)
	assert.True(t, repo.get(rec.ID).Reminder15SentForOutTime.Equal(t2))
}

func TestJob_SkipsRecordsNotYetOverdue(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := mock_notification.NewMockDispatcher(ctrl)

	soon := checkedIn(record.KindVisitor, now.Add(10*time.Minute))
	edge := checkedIn(record.KindVisitor, now.Add(-90*time.Minute))
	repo := newMemRepo(soon, edge)
	job := overstay.NewJob(repo, dispatcher, zap.NewNop(), overstay.WithClock(clock))

	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(0)

	sum, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Skipped)
	assert.False(t, repo.get(soon.ID).Reminder15Sent)
}

func TestJob_GuestsOnlyWhenEnabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := mock_notification.NewMockDispatcher(ctrl)

	guest := checkedIn(record.KindGuest, now.Add(-3*time.Hour))

	excluded := overstay.NewJob(newMemRepo(guest), dispatcher, zap.NewNop(), overstay.WithClock(clock))
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(0)
	sum, err := excluded.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Scanned[record.KindGuest])

	ctrl2 := gomock.NewController(t)
	dispatcher2 := mock_notification.NewMockDispatcher(ctrl2)
	included := overstay.NewJob(newMemRepo(guest), dispatcher2, zap.NewNop(),
		overstay.WithClock(clock), overstay.WithGuests(true))
	dispatcher2.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	sum, err = included.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Sent)
}

func TestJob_HostFallsBackToSubmitter(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := mock_notification.NewMockDispatcher(ctrl)

	rec := checkedIn(record.KindAdhoc, now.Add(-2*time.Hour))
	rec.HostEmail = ""
	job := overstay.NewJob(newMemRepo(rec), dispatcher, zap.NewNop(), overstay.WithClock(clock))

	dispatcher.EXPECT().
		Dispatch(gomock.Any(), gomock.Cond(func(x any) bool {
			return x.(notification.Notification).To == "desk@corp.com"
		})).
		Return(nil)

	_, err := job.Run(context.Background())
	require.NoError(t, err)
}

func TestJob_FailuresAreIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := mock_notification.NewMockDispatcher(ctrl)
	repo := recordMock.NewMockRepository(ctrl)

	failing := checkedIn(record.KindVisitor, now.Add(-2*time.Hour))
	panicking := checkedIn(record.KindVisitor, now.Add(-2*time.Hour))
	healthy := checkedIn(record.KindAdhoc, now.Add(-2*time.Hour))

	repo.EXPECT().
		FindOverstayCandidates(gomock.Any(), []record.Kind{record.KindVisitor, record.KindAdhoc}).
		Return([]record.Record{failing, panicking, healthy}, nil)

	dispatcher.EXPECT().
		Dispatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n notification.Notification) error {
			switch n.Subject.RecordID {
			case failing.ID.String():
				return errors.New("smtp: 421 service not available")
			case panicking.ID.String():
				panic("template exploded")
			}
			return nil
		}).
		Times(3)

	repo.EXPECT().
		MarkReminderSent(gomock.Any(), failing.ID, *failing.OutTime, now).
		Return(true, nil)
	repo.EXPECT().
		MarkReminderSent(gomock.Any(), healthy.ID, *healthy.OutTime, now).
		Return(true, nil)

	job := overstay.NewJob(repo, dispatcher, zap.NewNop(), overstay.WithClock(clock))
	sum, err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, sum.Failed)
	assert.Equal(t, 1, sum.Sent)
	assert.Equal(t, 2, sum.Marked)
}

func TestJob_UndeliveredReminderIsStillMarked(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := mock_notification.NewMockDispatcher(ctrl)

	rec := checkedIn(record.KindVisitor, now.Add(-2*time.Hour))
	repo := newMemRepo(rec)
	job := overstay.NewJob(repo, dispatcher, zap.NewNop(), overstay.WithClock(clock))

	dispatcher.EXPECT().
		Dispatch(gomock.Any(), gomock.Any()).
		Return(errors.New("smtp down")).
		Times(1)

	first, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Failed)
	assert.Equal(t, 0, first.Sent)
	assert.Equal(t, 1, first.Marked)

	stored := repo.get(rec.ID)
	assert.True(t, stored.Reminder15Sent)
	require.NotNil(t, stored.Reminder15SentForOutTime)
	assert.True(t, stored.Reminder15SentForOutTime.Equal(*rec.OutTime))

	for i := 0; i < 2; i++ {
		sum, err := job.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, sum.Skipped)
	}
}

func TestJob_QueryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := recordMock.NewMockRepository(ctrl)
	repo.EXPECT().FindOverstayCandidates(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	job := overstay.NewJob(repo, mock_notification.NewMockDispatcher(ctrl), zap.NewNop())
	_, err := job.Run(context.Background())

	assert.EqualError(t, err, "db down")
}

func TestJob_ConcurrentRescheduleIsNotOverwritten(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := mock_notification.NewMockDispatcher(ctrl)
	repo := recordMock.NewMockRepository(ctrl)

	rec := checkedIn(record.KindVisitor, now.Add(-2*time.Hour))
	repo.EXPECT().FindOverstayCandidates(gomock.Any(), gomock.Any()).Return([]record.Record{rec}, nil)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().MarkReminderSent(gomock.Any(), rec.ID, *rec.OutTime, now).Return(false, nil)

	job := overstay.NewJob(repo, dispatcher, zap.NewNop(), overstay.WithClock(clock))
	sum, err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, sum.Sent)
	assert.Equal(t, 0, sum.Marked)
}
