package learner

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/data/repos/testutil"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/data/schema"
	types "github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/dbctx"
)

func TestLearningSessionRepo_Lifecycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewLearningSessionRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	start := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	s := &types.LearningSession{UserID: 7, StartTime: start}
	require.NoError(t, repo.Start(dbc, s))
	require.NotEqual(t, uuid.Nil, s.SessionID)

	require.NoError(t, repo.AppendActivity(dbc, s.SessionID, types.SessionActivity{Type: "lesson_opened", Timestamp: start.Add(time.Minute)}))
	require.NoError(t, repo.AppendActivity(dbc, s.SessionID, types.SessionActivity{Type: "quiz_answered", Timestamp: start.Add(2 * time.Minute)}))

	_, err := repo.End(dbc, s.SessionID, start.Add(-time.Second))
	require.ErrorIs(t, err, schema.ErrPersistenceRejected)

	ended, err := repo.End(dbc, s.SessionID, start.Add(30*time.Minute))
	require.NoError(t, err)
	require.True(t, ended.Ended())

	require.ErrorIs(t, repo.AppendActivity(dbc, s.SessionID, types.SessionActivity{Type: "late"}), ErrSessionEnded)

	got, err := repo.GetBySessionID(dbc, s.SessionID)
	require.NoError(t, err)
	require.Len(t, got.Activities, 2)
	require.Equal(t, "lesson_opened", got.Activities[0].Type)
	require.NotNil(t, got.EndTime)
}

func TestLearningSessionRepo_DuplicateSessionIDRejected(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewLearningSessionRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	id := uuid.New()
	require.NoError(t, repo.Start(dbc, &types.LearningSession{SessionID: id, UserID: 1}))
	err := repo.Start(dbc, &types.LearningSession{SessionID: id, UserID: 2})
	require.ErrorIs(t, err, schema.ErrPersistenceRejected)
}

func TestLearningSessionRepo_ListNewestFirst(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewLearningSessionRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Start(dbc, &types.LearningSession{UserID: 9, StartTime: base.Add(time.Duration(i) * time.Hour)}))
	}
	require.NoError(t, repo.Start(dbc, &types.LearningSession{UserID: 10, StartTime: base}))

	got, err := repo.ListByUserID(dbc, 9, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.True(t, got[0].StartTime.After(got[1].StartTime))
	require.True(t, got[1].StartTime.After(got[2].StartTime))
}
