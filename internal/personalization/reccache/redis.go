package reccache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
)

const redisKeyPrefix = "reccache:"

// RedisBackend stores one JSON document per learner. Keys carry a PEXPIREAT one millisecond past
// expires_at so redis never drops an entry that Cache would still serve.
type RedisBackend struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisBackend keys entries as <namespace>reccache:<user_id>. namespace may be empty.
func NewRedisBackend(rdb *redis.Client, namespace string) *RedisBackend {
	return &RedisBackend{rdb: rdb, prefix: namespace + redisKeyPrefix}
}

func (b *RedisBackend) Name() string { return "redis" }

func (b *RedisBackend) key(userID int64) string {
	return b.prefix + strconv.FormatInt(userID, 10)
}

func (b *RedisBackend) Load(ctx context.Context, userID int64) (*learner.RecommendationCacheEntry, error) {
	raw, err := b.rdb.Get(ctx, b.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var e learner.RecommendationCacheEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		// Unreadable payloads behave like a miss and get overwritten on the next store.
		return nil, nil
	}
	return &e, nil
}

func (b *RedisBackend) Store(ctx context.Context, entry *learner.RecommendationCacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	key := b.key(entry.UserID)
	pipe := b.rdb.TxPipeline()
	pipe.Set(ctx, key, raw, 0)
	if entry.ExpiresAt != nil {
		pipe.PExpireAt(ctx, key, entry.ExpiresAt.Add(time.Millisecond))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis store: %w", err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, userID int64) error {
	if err := b.rdb.Del(ctx, b.key(userID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: redis evicts keys at their PEXPIREAT.
func (b *RedisBackend) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
