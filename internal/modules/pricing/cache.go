// README: Short-lived Redis copy of the merged pricing snapshot.
package pricing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const settingsCacheKey = "pricing:settings:snapshot"

type RedisSnapshotCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{redis: client, ttl: ttl}
}

func (c *RedisSnapshotCache) Get(ctx context.Context) (Settings, bool, error) {
	raw, err := c.redis.Get(ctx, settingsCacheKey).Bytes()
	if err == redis.Nil {
		return Settings{}, false, nil
	}
	if err != nil {
		return Settings{}, false, err
	}
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return Settings{}, false, err
	}
	return s, true, nil
}

// Fill stores s only when no snapshot is cached.
func (c *RedisSnapshotCache) Fill(ctx context.Context, s Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.redis.SetNX(ctx, settingsCacheKey, raw, c.ttl).Err()
}

// Set replaces the cached snapshot.
func (c *RedisSnapshotCache) Set(ctx context.Context, s Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, settingsCacheKey, raw, c.ttl).Err()
}

func (c *RedisSnapshotCache) Invalidate(ctx context.Context) error {
	return c.redis.Del(ctx, settingsCacheKey).Err()
}
