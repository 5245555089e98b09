package reccache

import (
	"context"
	"sync"
	"time"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
)

// MemoryBackend keeps entries in process. Entries are copied on the way in and out.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[int64]*learner.RecommendationCacheEntry
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: map[int64]*learner.RecommendationCacheEntry{}}
}

func (b *MemoryBackend) Name() string { return "memory" }

func (b *MemoryBackend) Load(_ context.Context, userID int64) (*learner.RecommendationCacheEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneEntry(b.entries[userID]), nil
}

func (b *MemoryBackend) Store(_ context.Context, entry *learner.RecommendationCacheEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[entry.UserID] = cloneEntry(entry)
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, userID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, userID)
	return nil
}

func (b *MemoryBackend) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var n int64
	for id, e := range b.entries {
		if e.ExpiresAt != nil && e.ExpiresAt.Before(now) {
			delete(b.entries, id)
			n++
		}
	}
	return n, nil
}

func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
