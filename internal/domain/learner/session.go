package learner

import (
	"time"

	"github.com/google/uuid"
)

// LearningSession is one learner activity session. Activities are append-only.
type LearningSession struct {
	SessionID uuid.UUID `gorm:"column:session_id;type:uuid;primaryKey" json:"session_id" validate:"required"`
	UserID    int64     `gorm:"column:user_id;not null;index:idx_learning_sessions_user_start,priority:1" json:"user_id" validate:"gt=0"`

	StartTime time.Time  `gorm:"column:start_time;not null;index:idx_learning_sessions_user_start,priority:2,sort:desc" json:"start_time" validate:"required"`
	EndTime   *time.Time `gorm:"column:end_time" json:"end_time,omitempty"`

	Activities []SessionActivity `gorm:"column:activities;type:jsonb;serializer:json" json:"activities" validate:"dive"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updated_at"`
}

func (LearningSession) TableName() string { return "learning_sessions" }

type SessionActivity struct {
	Type      string         `json:"type" validate:"required,max=64"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp" validate:"required"`
}

func (s *LearningSession) Ended() bool { return s != nil && s.EndTime != nil }
