// Package redisutil manages the optional Redis connection and a typed JSON
// cache used for per-symbol fact snapshots.
package redisutil

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sehyunkim/tacscreen/pkg/config"
)

// Client wraps the Redis client behind an enabled gate
// ⭐ SSOT: Redis 연결은 여기서만 관리
//
// When Redis is disabled in config the client is a no-op: every cache read
// misses and every write is dropped, so callers never branch on it.
type Client struct {
	rdb     *redis.Client
	enabled bool
}

// New creates a new Redis client. Disabled config yields a no-op client.
func New(cfg *config.Config) (*Client, error) {
	if !cfg.Redis.Enabled {
		return &Client{enabled: false}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Client{rdb: rdb, enabled: true}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// Enabled returns whether Redis is enabled.
func (c *Client) Enabled() bool {
	return c.enabled
}

// Redis returns the underlying redis client for advanced usage.
func (c *Client) Redis() *redis.Client {
	return c.rdb
}
