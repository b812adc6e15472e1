package record

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=record_repo.go -destination=mock/record_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateBatch(ctx context.Context, records []Record) error
	FindByID(ctx context.Context, kind Kind, id string) (*Record, error)
	FindByIDForUpdate(ctx context.Context, kind Kind, id string) (*Record, error)
	FindActiveByKind(ctx context.Context, kind Kind) ([]Record, error)
	Save(ctx context.Context, r *Record) error
	Delete(ctx context.Context, kind Kind, id string) (bool, error)

	FindOverstayCandidates(ctx context.Context, kinds []Kind) ([]Record, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, outTime, sentAt time.Time) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn routes the statement through the bound transaction, if any.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

// kindScope confines a query to one record kind.
func kindScope(kind Kind) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("kind = ?", kind)
	}
}

func (r *repository) CreateBatch(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&records).Error
}

func (r *repository) FindByID(ctx context.Context, kind Kind, id string) (*Record, error) {
	var rec Record
	err := r.conn(ctx).
		Scopes(kindScope(kind)).
		First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindByIDForUpdate locks the row until the bound transaction ends, so a
// reminder mark made by the sweep cannot be overwritten by a stale read.
func (r *repository) FindByIDForUpdate(ctx context.Context, kind Kind, id string) (*Record, error) {
	var rec Record
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(kindScope(kind)).
		First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindActiveByKind(ctx context.Context, kind Kind) ([]Record, error) {
	var records []Record
	err := r.conn(ctx).
		Scopes(kindScope(kind)).
		Where("ui_removed = ?", false).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) Save(ctx context.Context, rec *Record) error {
	return r.conn(ctx).Save(rec).Error
}

func (r *repository) Delete(ctx context.Context, kind Kind, id string) (bool, error) {
	res := r.conn(ctx).
		Scopes(kindScope(kind)).
		Delete(&Record{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) FindOverstayCandidates(ctx context.Context, kinds []Kind) ([]Record, error) {
	var records []Record
	err := r.conn(ctx).
		Where("kind IN ?", kinds).
		Where("ui_removed = ?", false).
		Where("status = ?", StatusCheckedIn).
		Where("out_time IS NOT NULL").
		Order("out_time ASC").
		Find(&records).Error
	return records, err
}

// MarkReminderSent records the reminder for outTime. It matches on out_time
// too, so a reschedule that landed after the sweep read the row is not
// overwritten; false means nothing was marked.
func (r *repository) MarkReminderSent(ctx context.Context, id uuid.UUID, outTime, sentAt time.Time) (bool, error) {
	res := r.conn(ctx).
		Model(&Record{}).
		Where("id = ? AND out_time = ?", id, outTime).
		Updates(map[string]any{
			"reminder15_sent":              true,
			"reminder15_sent_at":           sentAt,
			"reminder15_sent_for_out_time": outTime,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.conn(ctx).
		Where("delete_at IS NOT NULL AND delete_at <= ?", now).
		Delete(&Record{})
	return res.RowsAffected, res.Error
}
