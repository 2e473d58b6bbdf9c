package cache

import (
	"context"
	"fmt"
	"time"

	"PortfolioFM/config"

	"github.com/redis/go-redis/v9"
)

// Client wraps the Redis connection. A nil Client is a valid no-op cache so
// the service runs cleanly with Redis disabled.
type Client struct {
	rdb *redis.Client
}

// Connect initializes the Redis connection and verifies it with a ping.
func Connect(cfg *config.Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// Ping probes cache reachability for the health check.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return c.rdb.Ping(ctx).Err()
}
