package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RedisCache keeps response bodies in Redis under keyPrefix+key.
// Redis failures are logged and treated as misses so a cache outage never fails a fetch.
type RedisCache struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

func NewRedisCache(redisClient *redis.Client, keyPrefix string, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
		ttl:         ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.redisClient.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).WithField("key", key).Warn("Failed to read from Redis cache")
		}
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.redisClient.Set(ctx, c.keyPrefix+key, value, c.ttl).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("Failed to write to Redis cache")
	}
}
