package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
)

// AutoMigrateAll creates the four Schema Store collections and their indexes:
// unique user_id on profiles, session_id primary key on sessions, expires_at on the
// recommendation cache, and (user_id, timestamp desc) on training events / sessions.
func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&learner.Profile{},
		&learner.LearningSession{},
		&learner.RecommendationCacheEntry{},
		&learner.TrainingEvent{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
