// Package reccache caches generated course recommendations per learner with explicit expiry.
package reccache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/observability"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

const DefaultTTL = 24 * time.Hour

var (
	ErrInvalidScore   = errors.New("recommendation score must be within [0,1]")
	ErrInvalidUserID  = errors.New("invalid recommendation cache user id")
	ErrMissingVersion = errors.New("algorithm version is required")
	ErrNoGenerator    = errors.New("recommendation generator not configured")
)

type Cache struct {
	backend   Backend
	log       *logger.Logger
	metrics   *observability.Metrics
	now       func() time.Time
	generator Generator
	ttl       time.Duration
	group     singleflight.Group
}

type Option func(*Cache)

func WithClock(now func() time.Time) Option { return func(c *Cache) { c.now = now } }

func WithMetrics(m *observability.Metrics) Option { return func(c *Cache) { c.metrics = m } }

func WithGenerator(g Generator) Option { return func(c *Cache) { c.generator = g } }

// WithTTL sets the lifetime GetOrGenerate gives regenerated entries.
func WithTTL(ttl time.Duration) Option { return func(c *Cache) { c.ttl = ttl } }

func New(backend Backend, baseLog *logger.Logger, opts ...Option) *Cache {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	c := &Cache{
		backend: backend,
		log:     baseLog.With("component", "RecommendationCache", "backend", backend.Name()),
		now:     func() time.Time { return time.Now().UTC() },
		ttl:     DefaultTTL,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Cache) Backend() string { return c.backend.Name() }

// Get reports a miss when nothing is stored or now is strictly after expires_at.
func (c *Cache) Get(ctx context.Context, userID int64) (*learner.RecommendationCacheEntry, bool, error) {
	if userID <= 0 {
		return nil, false, fmt.Errorf("%w: %d", ErrInvalidUserID, userID)
	}
	e, err := c.backend.Load(ctx, userID)
	if err != nil {
		c.metrics.IncCacheLookup(c.backend.Name(), "error")
		return nil, false, err
	}
	if e == nil {
		c.metrics.IncCacheLookup(c.backend.Name(), "miss")
		return nil, false, nil
	}
	if e.Expired(c.now()) {
		c.metrics.IncCacheLookup(c.backend.Name(), "expired")
		return nil, false, nil
	}
	c.metrics.IncCacheLookup(c.backend.Name(), "hit")
	return e, true, nil
}

// Put stores recs with generated_at = now and expires_at = now + ttl. A ttl <= 0 describes an
// entry that is already stale: nothing is stored and any previous entry is removed.
func (c *Cache) Put(ctx context.Context, userID int64, version string, recs []learner.ScoredCourse, ttl time.Duration) (*learner.RecommendationCacheEntry, error) {
	if err := checkPut(userID, version, recs); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		if err := c.backend.Delete(ctx, userID); err != nil {
			return nil, err
		}
		c.metrics.IncCacheStore(c.backend.Name(), "invalidate")
		c.log.Debug("non-positive ttl; cache entry dropped", "user_id", userID, "ttl", ttl)
		return nil, nil
	}
	now := c.now()
	exp := now.Add(ttl)
	return c.store(ctx, &learner.RecommendationCacheEntry{
		UserID:           userID,
		Recommendations:  recs,
		AlgorithmVersion: version,
		GeneratedAt:      now,
		ExpiresAt:        &exp,
	}, "ttl")
}

// PutPermanent stores an entry without expires_at; it stays until replaced or invalidated.
func (c *Cache) PutPermanent(ctx context.Context, userID int64, version string, recs []learner.ScoredCourse) (*learner.RecommendationCacheEntry, error) {
	if err := checkPut(userID, version, recs); err != nil {
		return nil, err
	}
	return c.store(ctx, &learner.RecommendationCacheEntry{
		UserID:           userID,
		Recommendations:  recs,
		AlgorithmVersion: version,
		GeneratedAt:      c.now(),
	}, "permanent")
}

func (c *Cache) store(ctx context.Context, e *learner.RecommendationCacheEntry, kind string) (*learner.RecommendationCacheEntry, error) {
	if e.Recommendations == nil {
		e.Recommendations = []learner.ScoredCourse{}
	}
	if err := c.backend.Store(ctx, e); err != nil {
		return nil, err
	}
	c.metrics.IncCacheStore(c.backend.Name(), kind)
	return cloneEntry(e), nil
}

func (c *Cache) Invalidate(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidUserID, userID)
	}
	if err := c.backend.Delete(ctx, userID); err != nil {
		return err
	}
	c.metrics.IncCacheStore(c.backend.Name(), "invalidate")
	return nil
}

// Sweep removes entries that have expired as of now.
func (c *Cache) Sweep(ctx context.Context) (int64, error) {
	n, err := c.backend.DeleteExpired(ctx, c.now())
	if err != nil {
		return 0, err
	}
	c.metrics.AddCacheSwept(c.backend.Name(), n)
	return n, nil
}

// GetOrGenerate serves the cached entry or regenerates it from p. Concurrent callers for the same
// learner share one regeneration. The boolean reports whether the result came from the cache.
func (c *Cache) GetOrGenerate(ctx context.Context, p *learner.Profile) (*learner.RecommendationCacheEntry, bool, error) {
	if p == nil {
		return nil, false, fmt.Errorf("%w: nil profile", ErrInvalidUserID)
	}
	if e, ok, err := c.Get(ctx, p.UserID); err != nil || ok {
		return e, ok, err
	}
	if c.generator == nil {
		return nil, false, ErrNoGenerator
	}
	v, err, _ := c.group.Do(strconv.FormatInt(p.UserID, 10), func() (any, error) {
		// Another caller may have finished regenerating while we waited on Get.
		if e, ok, err := c.Get(ctx, p.UserID); err != nil || ok {
			return e, err
		}
		start := time.Now()
		recs, err := c.generator.Generate(ctx, p)
		status := "ok"
		if err != nil {
			status = "error"
		}
		c.metrics.ObserveGenerate(c.generator.Version(), status, time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("generate recommendations: %w", err)
		}
		e, err := c.Put(ctx, p.UserID, c.generator.Version(), recs, c.ttl)
		if err != nil {
			return nil, err
		}
		if e == nil {
			// Caching disabled by ttl; still hand back the fresh set.
			e = &learner.RecommendationCacheEntry{
				UserID:           p.UserID,
				Recommendations:  recs,
				AlgorithmVersion: c.generator.Version(),
				GeneratedAt:      c.now(),
			}
		}
		c.log.Debug("recommendations regenerated", "user_id", p.UserID, "count", len(recs))
		return e, nil
	})
	if err != nil {
		return nil, false, err
	}
	return cloneEntry(v.(*learner.RecommendationCacheEntry)), false, nil
}

func checkPut(userID int64, version string, recs []learner.ScoredCourse) error {
	if userID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidUserID, userID)
	}
	if version == "" {
		return ErrMissingVersion
	}
	for i, r := range recs {
		if math.IsNaN(r.Score) || r.Score < 0 || r.Score > 1 {
			return fmt.Errorf("%w: recommendations[%d]=%v", ErrInvalidScore, i, r.Score)
		}
	}
	return nil
}
