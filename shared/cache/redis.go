package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis wraps the go-redis client with health checking.
type Redis struct {
	*redis.Client
}

// NewRedis connects to the Redis server at url (redis://[user:pass@]host:port/db).
// It returns nil, nil when url is empty so callers can fall back to in-process state.
func NewRedis(ctx context.Context, url string) (*Redis, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{Client: client}, nil
}

// Health checks if the Redis connection is healthy.
func (r *Redis) Health(ctx context.Context) error {
	return r.Ping(ctx).Err()
}
