package reccache

import (
	"context"
	"time"

	repos "github.com/Syedsafwan24/Gradvy-sub002/internal/data/repos/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/dbctx"
)

// RepoBackend stores entries in the recommendation_cache table.
type RepoBackend struct {
	repo repos.RecommendationCacheRepo
}

func NewRepoBackend(repo repos.RecommendationCacheRepo) *RepoBackend {
	return &RepoBackend{repo: repo}
}

func (b *RepoBackend) Name() string { return "postgres" }

func (b *RepoBackend) Load(ctx context.Context, userID int64) (*learner.RecommendationCacheEntry, error) {
	return b.repo.GetByUserID(dbctx.Context{Ctx: ctx}, userID)
}

func (b *RepoBackend) Store(ctx context.Context, entry *learner.RecommendationCacheEntry) error {
	return b.repo.Upsert(dbctx.Context{Ctx: ctx}, cloneEntry(entry))
}

func (b *RepoBackend) Delete(ctx context.Context, userID int64) error {
	return b.repo.DeleteByUserID(dbctx.Context{Ctx: ctx}, userID)
}

func (b *RepoBackend) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return b.repo.DeleteExpired(dbctx.Context{Ctx: ctx}, now)
}
