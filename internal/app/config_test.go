package app

import (
	"testing"
	"time"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "CORS_ORIGINS", "RECCACHE_BACKEND", "RECCACHE_TTL", "RECCACHE_SWEEP_INTERVAL", "DRAFT_DIR"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(logger.Nop())

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr=%q", cfg.HTTPAddr)
	}
	if cfg.RecCacheBackend != CacheBackendPostgres {
		t.Fatalf("RecCacheBackend=%q", cfg.RecCacheBackend)
	}
	if cfg.RecCacheTTL != 24*time.Hour {
		t.Fatalf("RecCacheTTL=%s", cfg.RecCacheTTL)
	}
	if cfg.CORSOrigins != nil {
		t.Fatalf("CORSOrigins=%v", cfg.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("RECCACHE_BACKEND", "Memory")
	t.Setenv("RECCACHE_TTL", "90")
	cfg := LoadConfig(logger.Nop())

	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("CORSOrigins=%v", cfg.CORSOrigins)
	}
	if cfg.RecCacheBackend != CacheBackendMemory {
		t.Fatalf("RecCacheBackend=%q", cfg.RecCacheBackend)
	}
	if cfg.RecCacheTTL != 90*time.Second {
		t.Fatalf("RecCacheTTL=%s", cfg.RecCacheTTL)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "memory", cfg: Config{RecCacheBackend: CacheBackendMemory}},
		{name: "redis without addr", cfg: Config{RecCacheBackend: CacheBackendRedis}, wantErr: true},
		{name: "redis with addr", cfg: Config{RecCacheBackend: CacheBackendRedis, RedisAddr: "localhost:6379"}},
		{name: "unknown backend", cfg: Config{RecCacheBackend: "memcached"}, wantErr: true},
		{name: "negative sweep", cfg: Config{RecCacheBackend: CacheBackendMemory, SweepInterval: -time.Second}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() err=%v wantErr=%v", err, tc.wantErr)
			}
		})
	}
}
