package learner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/data/repos/testutil"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/data/schema"
	types "github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/dbctx"
)

func TestRecommendationCacheRepo_UpsertAndSweep(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewRecommendationCacheRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	soon := now.Add(time.Hour)
	later := now.Add(48 * time.Hour)

	require.NoError(t, repo.Upsert(dbc, &types.RecommendationCacheEntry{
		UserID:           1,
		AlgorithmVersion: "v1",
		Recommendations:  []types.ScoredCourse{{CourseID: "c1", Score: 0.9}},
		GeneratedAt:      now,
		ExpiresAt:        &soon,
	}))
	require.NoError(t, repo.Upsert(dbc, &types.RecommendationCacheEntry{
		UserID:           1,
		AlgorithmVersion: "v2",
		Recommendations:  []types.ScoredCourse{{CourseID: "c2", Score: 0.4}, {CourseID: "c3", Score: 0.3}},
		GeneratedAt:      now,
		ExpiresAt:        &later,
	}))
	require.NoError(t, repo.Upsert(dbc, &types.RecommendationCacheEntry{
		UserID:           2,
		AlgorithmVersion: "v1",
		GeneratedAt:      now,
		ExpiresAt:        &soon,
	}))
	require.NoError(t, repo.Upsert(dbc, &types.RecommendationCacheEntry{
		UserID:           3,
		AlgorithmVersion: "v1",
		GeneratedAt:      now,
	}))

	got, err := repo.GetByUserID(dbc, 1)
	require.NoError(t, err)
	require.Equal(t, "v2", got.AlgorithmVersion)
	require.Len(t, got.Recommendations, 2)
	require.Equal(t, "c2", got.Recommendations[0].CourseID)

	n, err := repo.DeleteExpired(dbc, now.Add(2*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	gone, err := repo.GetByUserID(dbc, 2)
	require.NoError(t, err)
	require.Nil(t, gone)

	permanent, err := repo.GetByUserID(dbc, 3)
	require.NoError(t, err)
	require.NotNil(t, permanent)
	require.Nil(t, permanent.ExpiresAt)

	require.NoError(t, repo.DeleteByUserID(dbc, 3))
	permanent, err = repo.GetByUserID(dbc, 3)
	require.NoError(t, err)
	require.Nil(t, permanent)
}

func TestRecommendationCacheRepo_RejectsBadScores(t *testing.T) {
	db := testutil.DB(t)
	repo := NewRecommendationCacheRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: testutil.Tx(t, db)}

	err := repo.Upsert(dbc, &types.RecommendationCacheEntry{
		UserID:           1,
		AlgorithmVersion: "v1",
		Recommendations:  []types.ScoredCourse{{CourseID: "c1", Score: -0.1}},
		GeneratedAt:      time.Now().UTC(),
	})
	require.ErrorIs(t, err, schema.ErrPersistenceRejected)
}
