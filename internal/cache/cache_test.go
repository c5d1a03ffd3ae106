package cache

import (
	"context"
	"testing"
	"time"

	"apigallery/viewer/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCache_SetGet(t *testing.T) {
	mr, client := setupMiniRedis(t)
	ctx := context.Background()

	c := NewRedisCache(client, "test:", time.Minute)

	_, ok := c.Get(ctx, "https://pokeapi.co/api/v2/pokemon/1")
	assert.False(t, ok)

	c.Set(ctx, "https://pokeapi.co/api/v2/pokemon/1", []byte(`{"id":1}`))

	got, ok := c.Get(ctx, "https://pokeapi.co/api/v2/pokemon/1")
	require.True(t, ok)
	assert.Equal(t, `{"id":1}`, string(got))

	// stored under the prefix with the configured expiry
	assert.True(t, mr.Exists("test:https://pokeapi.co/api/v2/pokemon/1"))
	assert.Equal(t, time.Minute, mr.TTL("test:https://pokeapi.co/api/v2/pokemon/1"))
}

func TestRedisCache_Expiry(t *testing.T) {
	mr, client := setupMiniRedis(t)
	ctx := context.Background()

	c := NewRedisCache(client, "test:", 10*time.Second)
	c.Set(ctx, "k", []byte("v"))

	mr.FastForward(11 * time.Second)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisCache_ServerDownIsMiss(t *testing.T) {
	mr, client := setupMiniRedis(t)
	ctx := context.Background()

	c := NewRedisCache(client, "test:", time.Minute)
	mr.Close()

	c.Set(ctx, "k", []byte("v"))
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2, time.Minute)

	c.Set(ctx, "a", []byte("1"))
	c.Set(ctx, "b", []byte("2"))
	c.Set(ctx, "c", []byte("3"))

	_, ok := c.Get(ctx, "a")
	assert.False(t, ok, "oldest entry evicted past capacity")

	got, ok := c.Get(ctx, "c")
	require.True(t, ok)
	assert.Equal(t, "3", string(got))
	assert.Equal(t, 2, c.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10, 20*time.Millisecond)

	c.Set(ctx, "a", []byte("1"))
	assert.Eventually(t, func() bool {
		_, ok := c.Get(ctx, "a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestNew(t *testing.T) {
	_, client := setupMiniRedis(t)

	c, err := New(config.CacheConfig{Backend: "none"}, nil, "")
	require.NoError(t, err)
	assert.IsType(t, Noop{}, c)

	c, err = New(config.CacheConfig{Backend: "memory", Size: 8, TTL: 60}, nil, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	c, err = New(config.CacheConfig{Backend: "redis", TTL: 60}, client, "p:")
	require.NoError(t, err)
	assert.IsType(t, &RedisCache{}, c)

	_, err = New(config.CacheConfig{Backend: "redis", TTL: 60}, nil, "p:")
	assert.Error(t, err)

	_, err = New(config.CacheConfig{Backend: "disk"}, nil, "")
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	n := Noop{}
	n.Set(ctx, "k", []byte("v"))
	_, ok := n.Get(ctx, "k")
	assert.False(t, ok)
}
