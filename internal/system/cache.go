package system

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"universe-builder/internal/planet"
	"universe-builder/internal/shared/redis"

	"github.com/patrickmn/go-cache"
	goredis "github.com/redis/go-redis/v9"
)

// Cache stores generated object lists keyed by universe fingerprint and
// system id. A miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]planet.CelestialObject, bool, error)
	Set(ctx context.Context, key string, objects []planet.CelestialObject) error
}

func cacheKey(fingerprint string, systemID int) string {
	return fmt.Sprintf("%s:%d", fingerprint, systemID)
}

type memoryCache struct {
	c *cache.Cache
}

func NewMemoryCache(ttl, cleanupInterval time.Duration) Cache {
	return &memoryCache{c: cache.New(ttl, cleanupInterval)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]planet.CelestialObject, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	objects, ok := v.([]planet.CelestialObject)
	return objects, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, objects []planet.CelestialObject) error {
	m.c.Set(key, objects, cache.DefaultExpiration)
	return nil
}

const redisKeyPrefix = "universe:objects:"

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache stores object lists as JSON so several server instances can
// share generated systems.
func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func (r *redisCache) Get(ctx context.Context, key string) ([]planet.CelestialObject, bool, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached objects: %w", err)
	}

	var objects []planet.CelestialObject
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached objects: %w", err)
	}
	return objects, true, nil
}

func (r *redisCache) Set(ctx context.Context, key string, objects []planet.CelestialObject) error {
	data, err := json.Marshal(objects)
	if err != nil {
		return fmt.Errorf("failed to encode objects: %w", err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache objects: %w", err)
	}
	return nil
}
