package app

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/clients/redis"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/draft"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

type Clients struct {
	// Redis is nil unless REDIS_ADDR is set.
	Redis  *goredis.Client
	Badger *badger.DB
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var out Clients
	if cfg.RedisAddr != "" {
		rdb, err := redis.NewClient(ctx, log, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
		out.Redis = rdb
	}

	bdb, err := draft.OpenBadger(cfg.DraftDir)
	if err != nil {
		out.Close(log)
		return Clients{}, fmt.Errorf("open draft store: %w", err)
	}
	out.Badger = bdb
	if cfg.DraftDir == "" {
		log.Warn("DRAFT_DIR is empty; drafts are kept in memory only")
	}
	return out, nil
}

func (c Clients) Close(log *logger.Logger) {
	if c.Badger != nil {
		if err := c.Badger.Close(); err != nil {
			log.Warn("close draft store", "error", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn("close redis", "error", err)
		}
	}
}
