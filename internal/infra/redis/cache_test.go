package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, zap.NewNop(), "discovery"), mr
}

func TestCache_SetGet(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "geo:lisbon:6", []byte(`{"lon":-9.14}`), 10*time.Minute))

	data, err := cache.Get(ctx, "geo:lisbon:6")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"lon":-9.14}`), data)
}

func TestCache_MissIsNotAnError(t *testing.T) {
	cache, _ := setupCache(t)

	data, err := cache.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCache_KeysArePrefixed(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "discovery:top", []byte("snap"), time.Minute))

	assert.True(t, mr.Exists("discovery:discovery:top"))
	assert.False(t, mr.Exists("discovery:top"))
}

func TestCache_TTLExpiry(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "discovery:top", []byte("snap"), 5*time.Minute))

	mr.FastForward(4 * time.Minute)
	data, err := cache.Get(ctx, "discovery:top")
	require.NoError(t, err)
	assert.Equal(t, []byte("snap"), data)

	mr.FastForward(2 * time.Minute)
	data, err = cache.Get(ctx, "discovery:top")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCache_Delete(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))

	data, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, cache.Delete(ctx, "k"))
}
