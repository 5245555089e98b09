package learner

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/data/schema"
	types "github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/dbctx"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

// ErrProfileNotFound is returned by mutations that require an existing profile.
var ErrProfileNotFound = errors.New("preference profile not found")

type ProfileRepo interface {
	GetByUserID(dbc dbctx.Context, userID int64) (*types.Profile, error)
	// Upsert creates the profile or replaces both preference sections of an existing one.
	// The boolean reports whether a new profile was created.
	Upsert(dbc dbctx.Context, userID int64, basic *types.BasicInfo, content *types.ContentPreferences) (*types.Profile, bool, error)
	AppendInteraction(dbc dbctx.Context, userID int64, it types.Interaction) error
	ReplaceInsights(dbc dbctx.Context, userID int64, insights datatypes.JSON) error
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (r *profileRepo) GetByUserID(dbc dbctx.Context, userID int64) (*types.Profile, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID <= 0 {
		return nil, nil
	}
	var row types.Profile
	if err := t.WithContext(dbc.Ctx).Where("user_id = ?", userID).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *profileRepo) Upsert(dbc dbctx.Context, userID int64, basic *types.BasicInfo, content *types.ContentPreferences) (*types.Profile, bool, error) {
	var (
		out     *types.Profile
		created bool
	)
	err := r.inTx(dbc, func(tx *gorm.DB) error {
		existing, err := r.lockByUserID(dbc, tx, userID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if existing == nil {
			row := &types.Profile{
				ID:                 uuid.New(),
				UserID:             userID,
				BasicInfo:          basic,
				ContentPreferences: content,
				Interactions:       []types.Interaction{},
				CreatedAt:          now,
				UpdatedAt:          now,
			}
			if err := schema.Enforce(row); err != nil {
				return err
			}
			if err := tx.WithContext(dbc.Ctx).Create(row).Error; err != nil {
				return translateWriteErr("Profile", err)
			}
			out, created = row, true
			return nil
		}

		existing.BasicInfo = basic
		existing.ContentPreferences = content
		existing.UpdatedAt = notBefore(now, existing.CreatedAt)
		if err := schema.Enforce(existing); err != nil {
			return err
		}
		if err := tx.WithContext(dbc.Ctx).
			Model(existing).
			Select("basic_info", "content_preferences", "updated_at").
			Updates(existing).Error; err != nil {
			return translateWriteErr("Profile", err)
		}
		out = existing
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	r.log.Debug("profile upserted", "user_id", userID, "created", created)
	return out, created, nil
}

func (r *profileRepo) AppendInteraction(dbc dbctx.Context, userID int64, it types.Interaction) error {
	if it.Timestamp.IsZero() {
		it.Timestamp = time.Now().UTC()
	}
	if err := schema.Enforce(&it); err != nil {
		return err
	}
	return r.inTx(dbc, func(tx *gorm.DB) error {
		row, err := r.lockByUserID(dbc, tx, userID)
		if err != nil {
			return err
		}
		if row == nil {
			return ErrProfileNotFound
		}
		row.Interactions = append(row.Interactions, it)
		row.UpdatedAt = notBefore(time.Now().UTC(), row.CreatedAt)
		if err := tx.WithContext(dbc.Ctx).
			Model(row).
			Select("interactions", "updated_at").
			Updates(row).Error; err != nil {
			return translateWriteErr("Profile", err)
		}
		return nil
	})
}

func (r *profileRepo) ReplaceInsights(dbc dbctx.Context, userID int64, insights datatypes.JSON) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(insights) == 0 {
		insights = datatypes.JSON([]byte("{}"))
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"ai_insights": insights,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return translateWriteErr("Profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepo) lockByUserID(dbc dbctx.Context, tx *gorm.DB, userID int64) (*types.Profile, error) {
	if userID <= 0 {
		return nil, schema.Reject("Profile", fmt.Errorf("user_id must be positive, got %d", userID))
	}
	var row types.Profile
	if err := tx.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *profileRepo) inTx(dbc dbctx.Context, fn func(tx *gorm.DB) error) error {
	if dbc.Tx != nil {
		return fn(dbc.Tx)
	}
	return r.db.WithContext(dbc.Ctx).Transaction(fn)
}
