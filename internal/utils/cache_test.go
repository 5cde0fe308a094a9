package utils

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	c.Flush()
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisCache_SetGetExpire(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	c := NewRedisCache(client, "test:")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "popular:1", []byte(`{"page":1}`), time.Second))
	assert.True(t, m.Exists("test:popular:1"))

	got, ok, err := c.Get(ctx, "popular:1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"page":1}`, string(got))

	m.FastForward(2 * time.Second)

	_, ok, err = c.Get(ctx, "popular:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTTLCache(t *testing.T) {
	c := NewTTLCache[int](2, 50*time.Millisecond)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // 淘汰 a

	_, ok := c.Get("a")
	assert.False(t, ok)
	v, ok := c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, c.Len())

	c.Delete("b")
	assert.Equal(t, 1, c.Len())

	time.Sleep(80 * time.Millisecond)
	_, ok = c.Get("c")
	assert.False(t, ok)
}
