package learner

import "time"

// ScoredCourse is one generated course candidate.
type ScoredCourse struct {
	CourseID string            `json:"course_id" validate:"required"`
	Title    string            `json:"title,omitempty"`
	Score    float64           `json:"score" validate:"gte=0,lte=1"`
	Reason   string            `json:"reason,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// RecommendationCacheEntry holds the latest generated recommendation set for a learner.
// A nil ExpiresAt means the entry does not expire.
type RecommendationCacheEntry struct {
	UserID int64 `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"user_id" validate:"gt=0"`

	Recommendations  []ScoredCourse `gorm:"column:recommendations;type:jsonb;serializer:json;not null" json:"recommendations" validate:"dive"`
	AlgorithmVersion string         `gorm:"column:algorithm_version;not null" json:"algorithm_version" validate:"required,max=64"`

	GeneratedAt time.Time  `gorm:"column:generated_at;not null;autoCreateTime:false" json:"generated_at" validate:"required"`
	ExpiresAt   *time.Time `gorm:"column:expires_at;index" json:"expires_at,omitempty"`
}

func (RecommendationCacheEntry) TableName() string { return "recommendation_cache" }

// Expired reports whether now is strictly past ExpiresAt.
func (e *RecommendationCacheEntry) Expired(now time.Time) bool {
	return e != nil && e.ExpiresAt != nil && now.After(*e.ExpiresAt)
}
