package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/observability"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/envutil"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

const (
	CacheBackendPostgres = "postgres"
	CacheBackendRedis    = "redis"
	CacheBackendMemory   = "memory"
)

type Config struct {
	HTTPAddr    string
	CORSOrigins []string

	// RecCacheBackend selects where recommendation cache entries live.
	RecCacheBackend string
	RecCacheTTL     time.Duration
	SweepInterval   time.Duration

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisNamespace string

	// DraftDir holds the badger draft store. Empty keeps drafts in memory.
	DraftDir string

	// ValidationRulesPath overrides the embedded rule document when set.
	ValidationRulesPath string

	Otel observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		HTTPAddr:            envutil.String("HTTP_ADDR", ":8080", log),
		CORSOrigins:         splitList(envutil.String("CORS_ORIGINS", "", log)),
		RecCacheBackend:     strings.ToLower(envutil.String("RECCACHE_BACKEND", CacheBackendPostgres, log)),
		RecCacheTTL:         envutil.Duration("RECCACHE_TTL", 24*time.Hour, log),
		SweepInterval:       envutil.Duration("RECCACHE_SWEEP_INTERVAL", 10*time.Minute, log),
		RedisAddr:           envutil.String("REDIS_ADDR", "", log),
		RedisPassword:       envutil.String("REDIS_PASSWORD", "", log),
		RedisDB:             envutil.Int("REDIS_DB", 0, log),
		RedisNamespace:      envutil.String("REDIS_NAMESPACE", "", log),
		DraftDir:            envutil.String("DRAFT_DIR", "./data/drafts", log),
		ValidationRulesPath: envutil.String("VALIDATION_RULES_PATH", "", log),
		Otel:                observability.OtelConfigFromEnv(log),
	}
}

func (c Config) Validate() error {
	switch c.RecCacheBackend {
	case CacheBackendPostgres, CacheBackendMemory:
	case CacheBackendRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("RECCACHE_BACKEND=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown RECCACHE_BACKEND %q (want postgres, redis or memory)", c.RecCacheBackend)
	}
	if c.SweepInterval < 0 {
		return fmt.Errorf("RECCACHE_SWEEP_INTERVAL must not be negative")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
