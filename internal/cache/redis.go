package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"heartlink/backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// matchCountTTL bounds staleness if an invalidation is ever missed.
const matchCountTTL = time.Hour

// RedisCache caches per-user match counts so the profile screen does not hit
// the database on every poll. The database stays the source of truth.
type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes a Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.RedisAddr,
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	if cfg.RedisDB != 0 {
		opts.DB = cfg.RedisDB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func keyForMatchCount(username string) string {
	return fmt.Sprintf("matches:count:%s", username)
}

// GetMatchCount returns the cached count for a user. The second return value
// is false on a cache miss.
func (c *RedisCache) GetMatchCount(ctx context.Context, username string) (int64, bool, error) {
	val, err := c.Client.Get(ctx, keyForMatchCount(username)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil // cache miss
	} else if err != nil {
		return 0, false, err
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

// SetMatchCount stores the count for a user, refreshing the TTL.
func (c *RedisCache) SetMatchCount(ctx context.Context, username string, count int64) error {
	return c.Client.Set(ctx, keyForMatchCount(username), count, matchCountTTL).Err()
}

// InvalidateMatchCount drops the cached counts for both sides of a new match.
func (c *RedisCache) InvalidateMatchCount(ctx context.Context, usernames ...string) error {
	keys := make([]string, len(usernames))
	for i, username := range usernames {
		keys[i] = keyForMatchCount(username)
	}
	return c.Client.Del(ctx, keys...).Err()
}
