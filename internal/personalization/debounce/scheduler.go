// Package debounce delays field validation until edits to that field go quiet.
package debounce

import (
	"sync"
	"time"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/validation"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

const DefaultDelay = 500 * time.Millisecond

// Key identifies one editable field.
type Key struct {
	Section string
	Field   string
}

func (k Key) String() string {
	if k.Section == "" {
		return k.Field
	}
	return k.Section + "." + k.Field
}

// Callback receives the validation result for the last value submitted under key.
type Callback func(key Key, result validation.Result)

type pending struct {
	id    uint64
	timer *time.Timer
}

// Scheduler owns one pending timer per key. A newer call for a key replaces the older one;
// cleared or replaced timers never reach their callback.
type Scheduler struct {
	delay time.Duration
	log   *logger.Logger

	mu      sync.Mutex
	pending map[Key]*pending
	nextID  uint64
	closed  bool

	inflight sync.WaitGroup
}

func New(delay time.Duration, baseLog *logger.Logger) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &Scheduler{
		delay:   delay,
		log:     baseLog.With("component", "DebounceScheduler"),
		pending: map[Key]*pending{},
	}
}

func (s *Scheduler) Delay() time.Duration { return s.delay }

// ValidateWithDebounce (re)starts key's timer. When it fires, value is validated against rules
// and cb is invoked once. Returns false if the scheduler is closed.
func (s *Scheduler) ValidateWithDebounce(key Key, value any, rules validation.FieldRules, cb Callback) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	if prev, ok := s.pending[key]; ok {
		prev.timer.Stop()
	}
	s.nextID++
	p := &pending{id: s.nextID}
	p.timer = time.AfterFunc(s.delay, func() { s.fire(key, p.id, value, rules, cb) })
	s.pending[key] = p
	return true
}

func (s *Scheduler) fire(key Key, id uint64, value any, rules validation.FieldRules, cb Callback) {
	s.mu.Lock()
	cur, ok := s.pending[key]
	if s.closed || !ok || cur.id != id {
		// Replaced or cleared between expiry and lock.
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	s.inflight.Add(1)
	s.mu.Unlock()
	defer s.inflight.Done()

	res := validation.ValidateField(key.Field, value, rules)
	if cb == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("debounced validation callback panicked", "key", key.String(), "panic", r)
		}
	}()
	cb(key, res)
}

// ClearTimeout cancels key's pending validation, if any.
func (s *Scheduler) ClearTimeout(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
		delete(s.pending, key)
	}
}

// ClearAllTimeouts cancels every pending validation. The scheduler stays usable.
func (s *Scheduler) ClearAllTimeouts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Scheduler) clearLocked() {
	for k, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, k)
	}
}

// Pending reports how many keys have a timer outstanding.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Close cancels all timers and blocks until callbacks already running have returned.
// No callback starts after Close returns.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	n := len(s.pending)
	s.clearLocked()
	s.mu.Unlock()
	s.inflight.Wait()
	if n > 0 {
		s.log.Debug("debounce scheduler closed", "cancelled", n)
	}
}
