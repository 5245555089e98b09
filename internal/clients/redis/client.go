package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

var ErrMissingAddr = errors.New("missing REDIS_ADDR")

// NewClient connects and pings so a bad address fails at startup rather than on the first request.
func NewClient(ctx context.Context, log *logger.Logger, cfg Config) (*goredis.Client, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, ErrMissingAddr
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if log != nil {
		log.With("client", "redis").Info("Connected to redis", "addr", addr, "db", cfg.DB)
	}
	return rdb, nil
}

// Ping adapts the client to a readiness check.
func Ping(rdb *goredis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
