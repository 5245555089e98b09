package learner

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/data/schema"
	types "github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/dbctx"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

type RecommendationCacheRepo interface {
	GetByUserID(dbc dbctx.Context, userID int64) (*types.RecommendationCacheEntry, error)
	Upsert(dbc dbctx.Context, row *types.RecommendationCacheEntry) error
	DeleteByUserID(dbc dbctx.Context, userID int64) error
	// DeleteExpired removes entries whose expires_at is strictly before now.
	DeleteExpired(dbc dbctx.Context, now time.Time) (int64, error)
}

type recommendationCacheRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationCacheRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationCacheRepo {
	return &recommendationCacheRepo{db: db, log: baseLog.With("repo", "RecommendationCacheRepo")}
}

func (r *recommendationCacheRepo) GetByUserID(dbc dbctx.Context, userID int64) (*types.RecommendationCacheEntry, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID <= 0 {
		return nil, nil
	}
	var rows []types.RecommendationCacheEntry
	if err := t.WithContext(dbc.Ctx).Where("user_id = ?", userID).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *recommendationCacheRepo) Upsert(dbc dbctx.Context, row *types.RecommendationCacheEntry) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil
	}
	if row.Recommendations == nil {
		row.Recommendations = []types.ScoredCourse{}
	}
	if err := schema.Enforce(row); err != nil {
		return err
	}
	return translateWriteErr("RecommendationCacheEntry", t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"recommendations",
				"algorithm_version",
				"generated_at",
				"expires_at",
			}),
		}).
		Create(row).Error)
}

func (r *recommendationCacheRepo) DeleteByUserID(dbc dbctx.Context, userID int64) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Delete(&types.RecommendationCacheEntry{}).Error
}

func (r *recommendationCacheRepo) DeleteExpired(dbc dbctx.Context, now time.Time) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", now.UTC()).
		Delete(&types.RecommendationCacheEntry{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		r.log.Debug("swept expired recommendation cache entries", "count", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
