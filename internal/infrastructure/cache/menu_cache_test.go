package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestCache(t *testing.T) (*miniredis.Miniredis, *RedisMenuCache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRedisMenuCacheWithClient(client, zap.NewNop())
}

func TestMenuTag(t *testing.T) {
	assert.Equal(t, "menu-joes-grill", MenuTag("joes-grill"))
}

func TestRedisMenuCache_SetAndGet(t *testing.T) {
	_, cache := setupTestCache(t)
	ctx := context.Background()

	payload := []byte(`{"items":["burger","fries"]}`)
	require.NoError(t, cache.Set(ctx, "joes-grill", payload))

	got, hit, err := cache.Get(ctx, "joes-grill")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload, got)
}

func TestRedisMenuCache_GetMiss(t *testing.T) {
	_, cache := setupTestCache(t)

	got, hit, err := cache.Get(context.Background(), "no-such-store")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestRedisMenuCache_InvalidateTag(t *testing.T) {
	mr, cache := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "joes-grill", []byte("menu")))
	require.True(t, mr.Exists(MenuTag("joes-grill")))

	require.NoError(t, cache.InvalidateTag(ctx, MenuTag("joes-grill")))
	assert.False(t, mr.Exists(MenuTag("joes-grill")))

	// Deleting an already-absent tag succeeds.
	require.NoError(t, cache.InvalidateTag(ctx, MenuTag("joes-grill")))
}

func TestRedisMenuCache_SetAppliesTTL(t *testing.T) {
	mr, cache := setupTestCache(t)

	require.NoError(t, cache.Set(context.Background(), "joes-grill", []byte("menu")))
	assert.Equal(t, defaultMenuTTL, mr.TTL(MenuTag("joes-grill")))
}
