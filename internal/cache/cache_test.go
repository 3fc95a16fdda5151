package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/geocoder89/inscricoes/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGetDelete(t *testing.T) {
	c := cache.New(time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	val := []byte("v1")
	require.NoError(t, c.Set(ctx, "k", val, 0))
	val[0] = 'x' // stored copy is independent

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, c.Delete(ctx, "k"))
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := cache.New(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Incr(t *testing.T) {
	c := cache.New(10 * time.Millisecond)
	ctx := context.Background()

	n, err := c.Incr(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = c.Incr(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// counters outlive the default ttl
	time.Sleep(30 * time.Millisecond)

	got, ok, err := c.Get(ctx, "v")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("2"), got)

	require.NoError(t, c.Set(ctx, "s", []byte("x"), 0))
	_, err = c.Incr(ctx, "s")
	assert.Error(t, err)
}

// Runs against a real redis when TEST_REDIS_ADDR is set.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	s := cache.NewRedisStore(cache.RedisConfig{Addr: addr})
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	require.NoError(t, s.Ping(ctx))

	key := "inscricoes:test:" + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() { _ = s.Delete(ctx, key) })

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, key, []byte(`[]`), time.Minute))

	got, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, s.Delete(ctx, key))
	_, ok, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.Incr(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
