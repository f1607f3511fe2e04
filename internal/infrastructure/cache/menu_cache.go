package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/colaai/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// MenuTag returns the cache tag under which a tenant's public menu is
// stored. The "menu-<slug>" shape is a public contract shared with the
// storefront; changing it orphans every existing cache entry.
func MenuTag(publicSlug string) string {
	return "menu-" + publicSlug
}

const defaultMenuTTL = 15 * time.Minute

// RedisMenuCache stores rendered menu payloads in Redis, keyed by the
// tenant's menu tag.
type RedisMenuCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisMenuCache connects to Redis and returns a menu cache.
func NewRedisMenuCache(cfg config.RedisConfig, logger *zap.Logger) (*RedisMenuCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisMenuCacheWithClient(client, logger), nil
}

// NewRedisMenuCacheWithClient wraps an existing Redis client. Useful for
// testing or when sharing a client across components.
func NewRedisMenuCacheWithClient(client *redis.Client, logger *zap.Logger) *RedisMenuCache {
	return &RedisMenuCache{
		client: client,
		ttl:    defaultMenuTTL,
		logger: logger,
	}
}

// Get returns the cached menu payload for the slug, with a hit flag.
func (c *RedisMenuCache) Get(ctx context.Context, publicSlug string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, MenuTag(publicSlug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read menu cache: %w", err)
	}
	return payload, true, nil
}

// Set stores the menu payload for the slug with the cache TTL.
func (c *RedisMenuCache) Set(ctx context.Context, publicSlug string, payload []byte) error {
	if err := c.client.Set(ctx, MenuTag(publicSlug), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write menu cache: %w", err)
	}
	return nil
}

// InvalidateTag drops the cache entry for a tag. Deleting an absent tag
// is a no-op, so invalidation is idempotent.
func (c *RedisMenuCache) InvalidateTag(ctx context.Context, tag string) error {
	if err := c.client.Del(ctx, tag).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache tag %s: %w", tag, err)
	}
	c.logger.Debug("Invalidated cache tag", zap.String("tag", tag))
	return nil
}

// Close closes the underlying Redis client.
func (c *RedisMenuCache) Close() error {
	return c.client.Close()
}
