package record

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"go-vms/internal/notification"
	recorderrors "go-vms/internal/record/errors"
	"go-vms/internal/shared/apperror"
	"go-vms/internal/shared/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Notifier sends intake notifications without blocking the request.
type Notifier interface {
	Notify(ctx context.Context, n notification.Notification)
}

//go:generate mockgen -source=record_service.go -destination=mock/record_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, kind Kind, actor string, reqs []CreateRequest) ([]RecordResponse, error)
	List(ctx context.Context, kind Kind) ([]RecordResponse, error)
	GetByID(ctx context.Context, kind Kind, id string) (RecordResponse, error)
	Update(ctx context.Context, kind Kind, id string, req UpdateRecordRequest) (RecordResponse, error)
	Remove(ctx context.Context, kind Kind, id, reason string) (RecordResponse, error)
	Delete(ctx context.Context, kind Kind, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	notifier Notifier
	metrics  *metrics.Metrics
	group    singleflight.Group
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, notifier Notifier, m *metrics.Metrics, logger ...*zap.Logger) Service {
	l := zap.L().Named("record.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("record.service")
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &service{
		db:       db,
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, kind Kind, actor string, reqs []CreateRequest) ([]RecordResponse, error) {
	s.logger.Debug("create records requested",
		zap.String("kind", string(kind)),
		zap.String("actor", actor),
		zap.Int("count", len(reqs)),
	)

	if len(reqs) == 0 {
		return nil, recorderrors.ErrNoRecords
	}

	records := make([]Record, 0, len(reqs))
	for i, req := range reqs {
		rec := req.toRecord()
		if rec.Kind != kind {
			return nil, apperror.InvalidField("kind")
		}
		rec.ID = uuid.New()
		rec.Lifecycle = Lifecycle{Status: StatusNew, InTime: rec.InTime, OutTime: rec.OutTime}
		if rec.SubmittedBy == "" {
			rec.SubmittedBy = actor
		}
		if err := Validate(&rec); err != nil {
			s.logger.Warn("create records validation failed",
				zap.String("kind", string(kind)),
				zap.Int("index", i),
				zap.Error(err),
			)
			return nil, err
		}
		records = append(records, rec)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create records begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateBatch(ctx, records); err != nil {
		s.logger.Error("create records insert failed",
			zap.String("kind", string(kind)),
			zap.Int("count", len(records)),
			zap.Error(err),
		)
		return nil, classifyInsertError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create records commit failed", zap.Error(err))
		return nil, recorderrors.ErrBatchInsert
	}

	s.metrics.RecordsCreated.WithLabelValues(string(kind)).Add(float64(len(records)))
	s.logger.Info("create records success",
		zap.String("kind", string(kind)),
		zap.Int("count", len(records)),
	)

	for _, rec := range records {
		for _, n := range IntakeNotifications(rec) {
			s.notifier.Notify(ctx, n)
		}
	}

	return mapToListResponse(records), nil
}

func (s *service) List(ctx context.Context, kind Kind) ([]RecordResponse, error) {
	v, err, shared := s.group.Do(string(kind), func() (any, error) {
		records, err := s.repo.FindActiveByKind(ctx, kind)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(records), nil
	})
	if err != nil {
		s.logger.Error("list records failed", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}
	if shared {
		s.logger.Debug("list records shared result", zap.String("kind", string(kind)))
	}
	return v.([]RecordResponse), nil
}

func (s *service) GetByID(ctx context.Context, kind Kind, id string) (RecordResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RecordResponse{}, notFound(kind)
	}

	rec, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, notFound(kind)
		}
		return RecordResponse{}, err
	}
	return mapToResponse(*rec), nil
}

func (s *service) Update(ctx context.Context, kind Kind, id string, req UpdateRecordRequest) (RecordResponse, error) {
	s.logger.Debug("update record requested",
		zap.String("kind", string(kind)),
		zap.String("record_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return RecordResponse{}, notFound(kind)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update record begin tx failed", zap.Error(err))
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindByIDForUpdate(ctx, kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, notFound(kind)
		}
		return RecordResponse{}, err
	}

	next, err := ApplyUpdate(*current, req, s.now().UTC())
	if err != nil {
		s.logger.Warn("update record rejected",
			zap.String("record_id", id),
			zap.String("status", string(current.Status)),
			zap.Error(err),
		)
		return RecordResponse{}, err
	}

	if err := qtx.Save(ctx, &next); err != nil {
		s.logger.Error("update record persist failed",
			zap.String("record_id", id),
			zap.Error(err),
		)
		return RecordResponse{}, classifyWriteError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update record commit failed",
			zap.String("record_id", id),
			zap.Error(err),
		)
		return RecordResponse{}, err
	}

	fields := []zap.Field{
		zap.String("record_id", id),
		zap.String("status", string(next.Status)),
	}
	if current.ActualInTime == nil && next.ActualInTime != nil {
		fields = append(fields, zap.Time("delete_at", *next.DeleteAt))
	}
	s.logger.Info("update record success", fields...)

	return mapToResponse(next), nil
}

func (s *service) Remove(ctx context.Context, kind Kind, id, reason string) (RecordResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RecordResponse{}, notFound(kind)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("remove record begin tx failed", zap.Error(err))
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindByIDForUpdate(ctx, kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, notFound(kind)
		}
		return RecordResponse{}, err
	}

	next, err := Remove(*current, reason, s.now().UTC())
	if err != nil {
		s.logger.Warn("remove record rejected",
			zap.String("record_id", id),
			zap.String("status", string(current.Status)),
		)
		return RecordResponse{}, err
	}

	if err := qtx.Save(ctx, &next); err != nil {
		s.logger.Error("remove record persist failed", zap.String("record_id", id), zap.Error(err))
		return RecordResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("remove record commit failed", zap.String("record_id", id), zap.Error(err))
		return RecordResponse{}, err
	}

	s.logger.Info("remove record success",
		zap.String("kind", string(kind)),
		zap.String("record_id", id),
	)
	return mapToResponse(next), nil
}

func (s *service) Delete(ctx context.Context, kind Kind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notFound(kind)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deleted, err := s.repo.WithTx(tx).Delete(ctx, kind, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound(kind)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete record success",
		zap.String("kind", string(kind)),
		zap.String("record_id", id),
	)
	return nil
}

// classifyInsertError keeps constraint violations a client error and turns
// everything else into a failed batch.
func classifyInsertError(err error) error {
	if verr := constraintViolation(err); verr != nil {
		return verr
	}
	return recorderrors.ErrBatchInsert
}

func classifyWriteError(err error) error {
	if verr := constraintViolation(err); verr != nil {
		return verr
	}
	return err
}

func constraintViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case "23502", "23514", "22001", "22P02":
		return apperror.Wrap(err, apperror.CodeInvalidInput, pgErr.Message, http.StatusBadRequest)
	}
	return nil
}
