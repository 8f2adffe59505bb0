package redis

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"universe-builder/internal/shared/config"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Client is the shared object cache connection. A nil *Client is valid and
// means Redis is not configured.
type Client struct {
	*redis.Client
}

// options resolves cfg into client options. A URL wins over host and port.
func options(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  pingTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}, nil
}

// Connect returns nil without error when Redis is disabled; callers fall back
// to the in-process cache.
func Connect(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*Client, error) {
	logger = logger.With("component", "redis", "operation", "connect")

	if !cfg.Enabled {
		logger.Info("Redis disabled, caching system objects in memory")
		return nil, nil
	}

	opts, err := options(cfg)
	if err != nil {
		logger.Error("Invalid Redis configuration", "error", err)
		return nil, err
	}
	logger.Debug("Connecting to Redis", "addr", opts.Addr, "db", opts.DB)

	c := &Client{redis.NewClient(opts)}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := c.PingContext(pingCtx); err != nil {
		logger.Error("Failed to ping Redis", "addr", opts.Addr, "error", err)
		_ = c.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	logger.Info("Redis connection established", "addr", opts.Addr)
	return c, nil
}

func (c *Client) Close() error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Close()
}

func (c *Client) PingContext(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
