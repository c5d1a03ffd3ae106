package cache

import (
	"context"
	"fmt"
	"time"

	"apigallery/viewer/internal/config"

	"github.com/redis/go-redis/v9"
)

// Cache stores raw response bodies keyed by request URL
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// New builds the cache selected by cfg.Backend. The redis backend needs a connected client.
func New(cfg config.CacheConfig, redisClient *redis.Client, keyPrefix string) (Cache, error) {
	switch cfg.Backend {
	case "none", "":
		return Noop{}, nil
	case "memory":
		return NewMemoryCache(cfg.Size, cfg.TTLDuration()), nil
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("redis cache backend requires a redis client")
		}
		return NewRedisCache(redisClient, keyPrefix, cfg.TTLDuration()), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}

// Noop never stores anything
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (Noop) Set(context.Context, string, []byte) {}

var (
	_ Cache = Noop{}
	_ Cache = (*MemoryCache)(nil)
	_ Cache = (*RedisCache)(nil)
)

// defaultTTL applies when a caller passes a non-positive ttl
const defaultTTL = time.Hour
