package downloads

import (
	"context"
	"errors"
	"time"

	"github.com/brt-intranet/backend/pkg/redis"
)

const cacheKeyPrefix = "descargas:"

// RedisCache stores catalogs as JSON under descargas:<codigo>.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a catalog cache on top of a Redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the cached catalog or ErrCacheMiss.
func (c *RedisCache) Get(ctx context.Context, productCode string) (Catalog, error) {
	var cat Catalog
	err := c.client.GetJSON(ctx, cacheKeyPrefix+productCode, &cat)
	if errors.Is(err, redis.ErrMiss) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// Set caches a catalog for ttl.
func (c *RedisCache) Set(ctx context.Context, productCode string, cat Catalog, ttl time.Duration) error {
	return c.client.SetJSON(ctx, cacheKeyPrefix+productCode, cat, ttl)
}
