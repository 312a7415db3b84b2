// Package redis implements the report cache on Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ReportCache stores generated report text under a caller-supplied key.
type ReportCache struct {
	rdb    goredis.UniversalClient
	prefix string
}

// New wraps rdb. Keys are namespaced under prefix.
func New(rdb goredis.UniversalClient, prefix string) *ReportCache {
	return &ReportCache{rdb: rdb, prefix: prefix}
}

// Connect parses a redis:// URL and verifies the server answers PING.
func Connect(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("op=redis.Connect: %w", err)
	}
	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("op=redis.Connect: %w", err)
	}
	return rdb, nil
}

// Get returns the cached text and whether it was present.
func (c *ReportCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("op=redis.Get: %w", err)
	}
	return v, true, nil
}

// Set stores text for ttl; a non-positive ttl keeps the entry until evicted.
func (c *ReportCache) Set(ctx context.Context, key, text string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.rdb.Set(ctx, c.prefix+key, text, ttl).Err(); err != nil {
		return fmt.Errorf("op=redis.Set: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *ReportCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
