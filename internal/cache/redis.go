package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/utils"
)

// RedisCache is the shared process-wide result cache. Concurrent writers may
// race on a key; last-write-wins is fine because every cached computation is
// idempotent.
type RedisCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

// NewRedisCacheFromEnv connects using REDIS_ADDR. Returns an error when the
// address is missing or the server does not answer a ping, so callers can
// fall back to a MemoryCache.
func NewRedisCacheFromEnv(log *logger.Logger) (*RedisCache, error) {
	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{
		log:    log.With("service", "RedisCache"),
		rdb:    rdb,
		prefix: "verdora:cache:",
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Cache read failed, treating as miss", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := c.rdb.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		c.log.Warn("Cache write failed, dropping entry", "key", key, "error", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, c.prefix+key).Err(); err != nil {
		c.log.Warn("Cache delete failed", "key", key, "error", err)
	}
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
