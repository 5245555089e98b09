package learner

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/data/schema"
	types "github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/dbctx"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

var (
	ErrSessionNotFound = errors.New("learning session not found")
	ErrSessionEnded    = errors.New("learning session already ended")
)

type LearningSessionRepo interface {
	Start(dbc dbctx.Context, s *types.LearningSession) error
	GetBySessionID(dbc dbctx.Context, sessionID uuid.UUID) (*types.LearningSession, error)
	AppendActivity(dbc dbctx.Context, sessionID uuid.UUID, a types.SessionActivity) error
	End(dbc dbctx.Context, sessionID uuid.UUID, endTime time.Time) (*types.LearningSession, error)
	ListByUserID(dbc dbctx.Context, userID int64, limit int) ([]*types.LearningSession, error)
}

type learningSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningSessionRepo(db *gorm.DB, baseLog *logger.Logger) LearningSessionRepo {
	return &learningSessionRepo{db: db, log: baseLog.With("repo", "LearningSessionRepo")}
}

func (r *learningSessionRepo) Start(dbc dbctx.Context, s *types.LearningSession) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if s == nil {
		return nil
	}
	now := time.Now().UTC()
	if s.SessionID == uuid.Nil {
		s.SessionID = uuid.New()
	}
	if s.StartTime.IsZero() {
		s.StartTime = now
	}
	if s.Activities == nil {
		s.Activities = []types.SessionActivity{}
	}
	s.CreatedAt, s.UpdatedAt = now, now
	if err := schema.Enforce(s); err != nil {
		return err
	}
	return translateWriteErr("LearningSession", t.WithContext(dbc.Ctx).Create(s).Error)
}

func (r *learningSessionRepo) GetBySessionID(dbc dbctx.Context, sessionID uuid.UUID) (*types.LearningSession, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return r.find(dbc, t, sessionID, false)
}

func (r *learningSessionRepo) AppendActivity(dbc dbctx.Context, sessionID uuid.UUID, a types.SessionActivity) error {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	if err := schema.Enforce(&a); err != nil {
		return err
	}
	return r.inTx(dbc, func(tx *gorm.DB) error {
		row, err := r.find(dbc, tx, sessionID, true)
		if err != nil {
			return err
		}
		if row == nil {
			return ErrSessionNotFound
		}
		if row.Ended() {
			return ErrSessionEnded
		}
		row.Activities = append(row.Activities, a)
		row.UpdatedAt = time.Now().UTC()
		return translateWriteErr("LearningSession", tx.WithContext(dbc.Ctx).
			Model(row).
			Select("activities", "updated_at").
			Updates(row).Error)
	})
}

func (r *learningSessionRepo) End(dbc dbctx.Context, sessionID uuid.UUID, endTime time.Time) (*types.LearningSession, error) {
	var out *types.LearningSession
	err := r.inTx(dbc, func(tx *gorm.DB) error {
		row, err := r.find(dbc, tx, sessionID, true)
		if err != nil {
			return err
		}
		if row == nil {
			return ErrSessionNotFound
		}
		if row.Ended() {
			return ErrSessionEnded
		}
		end := endTime.UTC()
		row.EndTime = &end
		row.UpdatedAt = time.Now().UTC()
		if err := schema.Enforce(row); err != nil {
			return err
		}
		if err := tx.WithContext(dbc.Ctx).
			Model(row).
			Select("end_time", "updated_at").
			Updates(row).Error; err != nil {
			return translateWriteErr("LearningSession", err)
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *learningSessionRepo) ListByUserID(dbc dbctx.Context, userID int64, limit int) ([]*types.LearningSession, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []*types.LearningSession
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *learningSessionRepo) find(dbc dbctx.Context, t *gorm.DB, sessionID uuid.UUID, lock bool) (*types.LearningSession, error) {
	if sessionID == uuid.Nil {
		return nil, nil
	}
	q := t.WithContext(dbc.Ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row types.LearningSession
	if err := q.Where("session_id = ?", sessionID).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.SessionID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *learningSessionRepo) inTx(dbc dbctx.Context, fn func(tx *gorm.DB) error) error {
	if dbc.Tx != nil {
		return fn(dbc.Tx)
	}
	return r.db.WithContext(dbc.Ctx).Transaction(fn)
}
