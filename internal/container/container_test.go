package container

import (
	"context"
	"strconv"
	"testing"

	"apigallery/viewer/internal/cache"
	"apigallery/viewer/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		PokeAPI: config.PokeAPIConfig{BaseURL: "http://127.0.0.1:1/api/v2", Timeout: 1, MaxRequestsPerSecond: 50},
		DogAPI:  config.DogAPIConfig{BaseURL: "http://127.0.0.1:1/api", Timeout: 1},
		Gallery: config.GalleryConfig{ItemsPerPage: 20},
		Search:  config.SearchConfig{DebounceMS: 10},
		Cache:   config.CacheConfig{Backend: "memory", TTL: 60, Size: 16},
		Redis:   config.RedisConfig{KeyPrefix: "test:"},
		Log:     config.LogConfig{Level: "error", Format: "text"},
	}
}

func TestNew_MemoryCache(t *testing.T) {
	app, err := New(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	defer app.Close()

	assert.IsType(t, &cache.MemoryCache{}, app.Cache)
	assert.NotNil(t, app.Gallery)
	assert.NotNil(t, app.Searcher)
	assert.NotNil(t, app.Dog)
	assert.Zero(t, app.ProxySupplier.Len())
	assert.Equal(t, 1, app.Gallery.Snapshot().CurrentPage)
}

func TestNew_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Cache.Backend = "redis"
	cfg.Redis.Host = mr.Host()
	cfg.Redis.Port = port

	app, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.IsType(t, &cache.RedisCache{}, app.Cache)
	app.Cache.Set(context.Background(), "k", []byte("v"))
	got, err := mr.Get("test:k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	assert.NoError(t, app.Close())
}

func TestNew_RedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	host := mr.Host()
	mr.Close()

	cfg := testConfig()
	cfg.Cache.Backend = "redis"
	cfg.Redis.Host = host
	cfg.Redis.Port = port

	_, err = New(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "failed to connect to Redis")
}

func TestConfigureLogging(t *testing.T) {
	assert.NoError(t, ConfigureLogging(config.LogConfig{Level: "debug", Format: "json"}))
	assert.NoError(t, ConfigureLogging(config.LogConfig{Level: "error", Format: "text"}))
	assert.Error(t, ConfigureLogging(config.LogConfig{Level: "loud", Format: "text"}))
}
