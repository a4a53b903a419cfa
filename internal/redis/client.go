package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/metrics"
)

// Client wraps a go-redis client with convenience methods.
type Client struct {
	rdb *goredis.Client
}

// NewClient creates a new Redis client from a URL (e.g., "redis://localhost:6379").
func NewClient(redisURL string) (*Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := goredis.NewClient(opts)
	return &Client{rdb: rdb}, nil
}

// Ping verifies the Redis connection.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		metrics.RedisConnectionErrors.Inc()
		return err
	}
	return nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Underlying returns the raw go-redis client for advanced operations.
func (c *Client) Underlying() *goredis.Client {
	return c.rdb
}
