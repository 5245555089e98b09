package app

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/observability"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/draft"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/reccache"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/validation"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/services"
)

type Services struct {
	Preferences     services.PreferenceService
	Sessions        services.SessionService
	Recommendations services.RecommendationService

	Cache *reccache.Cache
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, metrics *observability.Metrics, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	validator, err := loadValidator(cfg.ValidationRulesPath)
	if err != nil {
		return Services{}, err
	}
	backend, err := newCacheBackend(cfg, reposet, clients)
	if err != nil {
		return Services{}, err
	}
	cache := reccache.New(backend, log,
		reccache.WithMetrics(metrics),
		reccache.WithTTL(cfg.RecCacheTTL),
		reccache.WithGenerator(reccache.SuggestionGenerator{}),
	)
	log.Info("Recommendation cache ready", "backend", cache.Backend(), "ttl", cfg.RecCacheTTL.String())

	drafts := draft.NewBadgerStore(clients.Badger, log)

	return Services{
		Preferences: services.NewPreferenceService(
			db, log, metrics, validator,
			reposet.Profile, reposet.TrainingEvent, drafts, cache,
		),
		Sessions:        services.NewSessionService(log, reposet.LearningSession),
		Recommendations: services.NewRecommendationService(log, metrics, reposet.Profile, reposet.TrainingEvent, cache),
		Cache:           cache,
	}, nil
}

func newCacheBackend(cfg Config, reposet Repos, clients Clients) (reccache.Backend, error) {
	switch cfg.RecCacheBackend {
	case CacheBackendPostgres:
		return reccache.NewRepoBackend(reposet.RecommendationCache), nil
	case CacheBackendRedis:
		if clients.Redis == nil {
			return nil, fmt.Errorf("recommendation cache backend %q needs a redis client", cfg.RecCacheBackend)
		}
		return reccache.NewRedisBackend(clients.Redis, cfg.RedisNamespace), nil
	case CacheBackendMemory:
		return reccache.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown recommendation cache backend %q", cfg.RecCacheBackend)
	}
}

// loadValidator returns the embedded rules unless path names an override document.
func loadValidator(path string) (*validation.Validator, error) {
	if path == "" {
		return validation.New(nil), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read validation rules: %w", err)
	}
	rules, err := validation.ParseRuleSet(raw)
	if err != nil {
		return nil, fmt.Errorf("parse validation rules %s: %w", path, err)
	}
	return validation.New(rules), nil
}
