package learner

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TrainingEvent is a write-once log record. Retention is an external policy.
type TrainingEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;index:idx_training_events_user_ts,priority:1" json:"user_id" validate:"gt=0"`
	EventType EventType `gorm:"column:event_type;not null;index" json:"event_type" validate:"required,oneof=profile_created profile_updated onboarding_completed interaction_recorded recommendation_served recommendation_clicked feedback_given"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index:idx_training_events_user_ts,priority:2,sort:desc" json:"timestamp" validate:"required"`

	EventData   datatypes.JSON `gorm:"column:event_data;type:jsonb" json:"event_data,omitempty"`
	UserContext datatypes.JSON `gorm:"column:user_context;type:jsonb" json:"user_context,omitempty"`
}

func (TrainingEvent) TableName() string { return "training_events" }
