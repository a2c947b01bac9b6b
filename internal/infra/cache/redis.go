// Package cache implements the read-side cache on Redis.
package cache

import (
	"context"
	"log/slog"
	"time"

	"bazaar/config"
	"bazaar/internal/domain/lifecycle"
	"bazaar/internal/domain/service"
	"bazaar/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// deleteScanBatch bounds how many keys a single SCAN iteration returns
// during prefix invalidation.
const deleteScanBatch = 100

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewClient creates the Redis client with fx lifecycle management.
func NewClient(params Params) (*redis.Client, error) {
	if params.Config.Redis == nil {
		return nil, errors.New("redis config must be provided")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     params.Config.Redis.Addr,
		Password: params.Config.Redis.Password,
		DB:       params.Config.Redis.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

// redisCache implements the service.Cache interface on a Redis client.
type redisCache struct {
	client *redis.Client
}

// NewRedisCache is the constructor for redisCache.
func NewRedisCache(client *redis.Client) service.Cache {
	return &redisCache{client: client}
}

// Get retrieves a cached value. A miss is reported through the found flag,
// not as an error.
func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}

		return "", false, errors.Wrap(err, "failed to get cache key")
	}

	return value, true, nil
}

// Set stores a value under the key with the given TTL.
func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to set cache key")
	}

	return nil
}

// Delete removes a single key.
func (c *redisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(err, "failed to delete cache key")
	}

	return nil
}

// DeleteByPrefix removes every key under the prefix using SCAN, so large
// invalidations never block Redis the way KEYS would.
func (c *redisCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", deleteScanBatch).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= deleteScanBatch {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return errors.Wrap(err, "failed to delete cache keys by prefix")
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "failed to scan cache keys by prefix")
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return errors.Wrap(err, "failed to delete cache keys by prefix")
		}
	}

	return nil
}
