package reccache

import (
	"context"
	"time"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
)

// Backend stores raw entries. Expiry decisions belong to Cache; backends only keep what they are given.
type Backend interface {
	Name() string
	// Load returns nil when nothing is stored for userID.
	Load(ctx context.Context, userID int64) (*learner.RecommendationCacheEntry, error)
	Store(ctx context.Context, entry *learner.RecommendationCacheEntry) error
	Delete(ctx context.Context, userID int64) error
	// DeleteExpired removes entries whose expires_at is strictly before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

func cloneEntry(e *learner.RecommendationCacheEntry) *learner.RecommendationCacheEntry {
	if e == nil {
		return nil
	}
	out := *e
	out.Recommendations = make([]learner.ScoredCourse, len(e.Recommendations))
	for i, c := range e.Recommendations {
		if c.Metadata != nil {
			md := make(map[string]string, len(c.Metadata))
			for k, v := range c.Metadata {
				md[k] = v
			}
			c.Metadata = md
		}
		out.Recommendations[i] = c
	}
	if e.ExpiresAt != nil {
		t := *e.ExpiresAt
		out.ExpiresAt = &t
	}
	return &out
}
