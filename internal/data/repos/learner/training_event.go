package learner

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/data/schema"
	types "github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/dbctx"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

// TrainingEventRepo is append-only: there is deliberately no update or delete.
type TrainingEventRepo interface {
	Append(dbc dbctx.Context, events ...*types.TrainingEvent) error
	ListByUserID(dbc dbctx.Context, userID int64, limit int) ([]*types.TrainingEvent, error)
}

type trainingEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrainingEventRepo(db *gorm.DB, baseLog *logger.Logger) TrainingEventRepo {
	return &trainingEventRepo{db: db, log: baseLog.With("repo", "TrainingEventRepo")}
}

func (r *trainingEventRepo) Append(dbc dbctx.Context, events ...*types.TrainingEvent) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	rows := make([]*types.TrainingEvent, 0, len(events))
	now := time.Now().UTC()
	for _, ev := range events {
		if ev == nil {
			continue
		}
		if ev.ID == uuid.Nil {
			ev.ID = uuid.New()
		}
		if ev.Timestamp.IsZero() {
			ev.Timestamp = now
		}
		if err := schema.Enforce(ev); err != nil {
			return err
		}
		rows = append(rows, ev)
	}
	if len(rows) == 0 {
		return nil
	}
	return translateWriteErr("TrainingEvent", t.WithContext(dbc.Ctx).Create(&rows).Error)
}

func (r *trainingEventRepo) ListByUserID(dbc dbctx.Context, userID int64, limit int) ([]*types.TrainingEvent, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []*types.TrainingEvent
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
