package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/validation"
)

const testDelay = 20 * time.Millisecond

func goalRules() validation.FieldRules {
	min, max := 1, 3
	return validation.FieldRules{
		Name:  "learning_goals",
		Label: "Learning goals",
		Rules: []validation.Rule{validation.Required(), validation.Length(&min, &max)},
	}
}

type recorder struct {
	mu    sync.Mutex
	calls []validation.Result
	keys  []Key
	done  chan struct{}
}

func newRecorder() *recorder { return &recorder{done: make(chan struct{}, 16)} }

func (r *recorder) cb(key Key, res validation.Result) {
	r.mu.Lock()
	r.calls = append(r.calls, res)
	r.keys = append(r.keys, key)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for callback")
	}
}

func TestRapidCallsCollapseToLastValue(t *testing.T) {
	s := New(testDelay, nil)
	defer s.Close()
	rec := newRecorder()
	key := Key{Section: "basic_info", Field: "learning_goals"}

	values := [][]string{
		{},
		{"a", "b", "c", "d"},
		{"a", "b", "c", "d", "e"},
		{},
		{"web_dev"},
	}
	for _, v := range values {
		if !s.ValidateWithDebounce(key, v, goalRules(), rec.cb) {
			t.Fatalf("ValidateWithDebounce returned false on open scheduler")
		}
	}
	waitFor(t, rec.done)
	time.Sleep(3 * testDelay)

	if got := rec.count(); got != 1 {
		t.Fatalf("callbacks=%d, want 1", got)
	}
	if !rec.calls[0].IsValid {
		t.Fatalf("last value should be valid, got errors %v", rec.calls[0].Errors)
	}
	if rec.keys[0] != key {
		t.Fatalf("callback key=%v, want %v", rec.keys[0], key)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	s := New(testDelay, nil)
	defer s.Close()
	rec := newRecorder()
	a := Key{Section: "basic_info", Field: "learning_goals"}
	b := Key{Section: "basic_info", Field: "learning_style"}

	s.ValidateWithDebounce(a, []string{}, goalRules(), rec.cb)
	s.ValidateWithDebounce(b, []string{"x"}, goalRules(), rec.cb)
	waitFor(t, rec.done)
	waitFor(t, rec.done)

	if got := rec.count(); got != 2 {
		t.Fatalf("callbacks=%d, want 2", got)
	}
	byKey := map[Key]bool{}
	for i, k := range rec.keys {
		byKey[k] = rec.calls[i].IsValid
	}
	if byKey[a] || !byKey[b] {
		t.Fatalf("validity by key=%v, want a invalid and b valid", byKey)
	}
}

func TestClearTimeoutCancels(t *testing.T) {
	s := New(testDelay, nil)
	defer s.Close()
	var fired atomic.Int32
	key := Key{Field: "experience_level"}
	other := Key{Field: "career_stage"}
	done := make(chan struct{}, 1)

	s.ValidateWithDebounce(key, "advanced", validation.FieldRules{}, func(Key, validation.Result) { fired.Add(1) })
	s.ValidateWithDebounce(other, "student", validation.FieldRules{}, func(Key, validation.Result) { done <- struct{}{} })
	s.ClearTimeout(key)

	waitFor(t, done)
	time.Sleep(3 * testDelay)
	if fired.Load() != 0 {
		t.Fatalf("cleared key fired %d times", fired.Load())
	}
	if s.Pending() != 0 {
		t.Fatalf("Pending=%d, want 0", s.Pending())
	}
}

func TestClearAllTimeoutsKeepsSchedulerUsable(t *testing.T) {
	s := New(testDelay, nil)
	defer s.Close()
	var fired atomic.Int32
	cb := func(Key, validation.Result) { fired.Add(1) }
	for _, f := range []string{"a", "b", "c"} {
		s.ValidateWithDebounce(Key{Field: f}, "x", validation.FieldRules{}, cb)
	}
	if s.Pending() != 3 {
		t.Fatalf("Pending=%d, want 3", s.Pending())
	}
	s.ClearAllTimeouts()
	time.Sleep(3 * testDelay)
	if fired.Load() != 0 {
		t.Fatalf("cleared timers fired %d times", fired.Load())
	}

	rec := newRecorder()
	if !s.ValidateWithDebounce(Key{Field: "a"}, "x", validation.FieldRules{}, rec.cb) {
		t.Fatalf("scheduler rejected call after ClearAllTimeouts")
	}
	waitFor(t, rec.done)
}

func TestCloseStopsFurtherCallbacks(t *testing.T) {
	s := New(testDelay, nil)
	var fired atomic.Int32
	cb := func(Key, validation.Result) { fired.Add(1) }
	s.ValidateWithDebounce(Key{Field: "a"}, "x", validation.FieldRules{}, cb)
	s.Close()
	if s.ValidateWithDebounce(Key{Field: "b"}, "x", validation.FieldRules{}, cb) {
		t.Fatalf("ValidateWithDebounce after Close returned true")
	}
	time.Sleep(3 * testDelay)
	if fired.Load() != 0 {
		t.Fatalf("callbacks after Close=%d, want 0", fired.Load())
	}
	s.Close()
}

func TestCloseWaitsForRunningCallback(t *testing.T) {
	s := New(time.Millisecond, nil)
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	s.ValidateWithDebounce(Key{Field: "a"}, "x", validation.FieldRules{}, func(Key, validation.Result) {
		close(started)
		<-release
		finished.Store(true)
	})
	waitFor(t, started)

	closed := make(chan struct{})
	go func() {
		s.Close()
		close(closed)
	}()
	select {
	case <-closed:
		t.Fatalf("Close returned while a callback was still running")
	case <-time.After(3 * testDelay):
	}
	close(release)
	waitFor(t, closed)
	if !finished.Load() {
		t.Fatalf("callback did not finish before Close returned")
	}
}

func TestKeyString(t *testing.T) {
	cases := []struct {
		key  Key
		want string
	}{
		{Key{Section: "basic_info", Field: "learning_goals"}, "basic_info.learning_goals"},
		{Key{Field: "learning_goals"}, "learning_goals"},
	}
	for _, tc := range cases {
		if got := tc.key.String(); got != tc.want {
			t.Fatalf("Key.String()=%q, want %q", got, tc.want)
		}
	}
}
