// Package cache stores serialized read responses (product listings, order
// statistics) and drops them by key prefix when the underlying data changes.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Cache interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	InvalidatePrefix(ctx context.Context, prefix string)
}

// Nop never hits. It is used when no Redis address is configured.
type Nop struct{}

func (Nop) Get(context.Context, string, any) bool           { return false }
func (Nop) Set(context.Context, string, any, time.Duration) {}
func (Nop) InvalidatePrefix(context.Context, string)        {}

type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func NewRedisCache(client *redis.Client, logger *zap.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

// Get decodes a cached JSON value into dst. Misses and errors both report false.
func (c *RedisCache) Get(ctx context.Context, key string, dst any) bool {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		c.logger.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisCache) InvalidatePrefix(ctx context.Context, prefix string) {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache scan failed", zap.String("prefix", prefix), zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
		}
	}
}

// Key builds a deterministic cache key from a namespace and request parameters.
func Key(prefix string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return ""
	}
	return prefix + string(data)
}
