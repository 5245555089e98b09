package draft

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...BadgerOption) (*BadgerStore, *badger.DB) {
	t.Helper()
	db, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewBadgerStore(db, nil, opts...), db
}

func intPtr(i int) *int { return &i }

func TestSaveMergesShallow(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	d, err := s.Save(ctx, 7, FlowQuick, intPtr(0), map[string]any{
		"basic_info": map[string]any{"learning_goals": []any{"web_dev"}},
	})
	require.NoError(t, err)
	require.Equal(t, DraftVersion, d.Version)
	require.Equal(t, 0, *d.LastStep)

	d, err = s.Save(ctx, 7, FlowQuick, intPtr(1), map[string]any{
		"basic_info":          map[string]any{"experience_level": "advanced"},
		"content_preferences": map[string]any{"language_preference": []any{"en"}},
	})
	require.NoError(t, err)

	got, err := s.Load(ctx, 7, FlowQuick)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 1, *got.LastStep)
	// Top-level keys are replaced, not deep-merged.
	basic := got.Data["basic_info"].(map[string]any)
	require.Equal(t, "advanced", basic["experience_level"])
	require.NotContains(t, basic, "learning_goals")
	require.Contains(t, got.Data, "content_preferences")
	require.True(t, got.UpdatedAt.Equal(d.UpdatedAt))
}

func TestSaveKeepsStepWhenNil(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.Save(ctx, 1, FlowFull, intPtr(3), nil)
	require.NoError(t, err)
	d, err := s.Save(ctx, 1, FlowFull, nil, map[string]any{"k": "v"})
	require.NoError(t, err)
	require.Equal(t, 3, *d.LastStep)
}

func TestSaveBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s, _ := newTestStore(t, WithClock(func() time.Time { return fixed }))
	first, err := s.Save(ctx, 1, FlowQuick, nil, nil)
	require.NoError(t, err)
	second, err := s.Save(ctx, 1, FlowQuick, nil, nil)
	require.NoError(t, err)
	require.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestFlowsAreIndependent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.Save(ctx, 1, FlowQuick, nil, map[string]any{"a": 1})
	require.NoError(t, err)

	full, err := s.Load(ctx, 1, FlowFull)
	require.NoError(t, err)
	require.Nil(t, full)

	other, err := s.Load(ctx, 2, FlowQuick)
	require.NoError(t, err)
	require.Nil(t, other)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.Save(ctx, 1, FlowQuick, nil, map[string]any{"a": 1})
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx, 1, FlowQuick))
	require.NoError(t, s.Clear(ctx, 1, FlowQuick))

	d, err := s.Load(ctx, 1, FlowQuick)
	require.NoError(t, err)
	require.Nil(t, d)
}

func TestLoadDiscardsCorruptAndForeignVersion(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "corrupt", raw: "{not json"},
		{name: "old_version", raw: `{"version":"draft.v0","user_id":1,"flow_type":"quick","data":{"a":1}}`},
		{name: "no_version", raw: `{"user_id":1,"flow_type":"quick","data":{"a":1}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			s, db := newTestStore(t)
			require.NoError(t, db.Update(func(txn *badger.Txn) error {
				return txn.Set(draftKey(1, FlowQuick), []byte(tc.raw))
			}))

			d, err := s.Load(ctx, 1, FlowQuick)
			require.NoError(t, err)
			require.Nil(t, d)

			// A save over an unusable draft starts fresh.
			d, err = s.Save(ctx, 1, FlowQuick, nil, map[string]any{"b": 2})
			require.NoError(t, err)
			require.Equal(t, map[string]any{"b": 2}, d.Data)
		})
	}
}

func TestInvalidKeys(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.Save(ctx, 1, FlowType("wizard"), nil, nil)
	require.ErrorIs(t, err, ErrInvalidFlowType)
	_, err = s.Load(ctx, 0, FlowQuick)
	require.ErrorIs(t, err, ErrInvalidUserID)
	require.ErrorIs(t, s.Clear(ctx, -1, FlowFull), ErrInvalidUserID)
}

func TestParseFlowType(t *testing.T) {
	cases := []struct {
		in      string
		want    FlowType
		wantErr bool
	}{
		{in: "quick", want: FlowQuick},
		{in: " FULL ", want: FlowFull},
		{in: "", wantErr: true},
		{in: "long", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseFlowType(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("ParseFlowType(%q)=%q,%v want %q,err=%v", tc.in, got, err, tc.want, tc.wantErr)
		}
	}
}
