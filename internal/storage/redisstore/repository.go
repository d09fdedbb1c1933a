// Package redisstore keeps the dedup state in a single redis key, for
// deployments where the process has no durable filesystem.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"intern-watch/internal/dedup"
	"intern-watch/internal/observability"
	"intern-watch/internal/storage"
)

type Repository struct {
	client *redis.Client
	key    string
	logger *observability.Logger
}

// NewRepository parses redisURL, verifies connectivity and returns the
// repository bound to key.
func NewRepository(ctx context.Context, redisURL, key string, logger *observability.Logger) (*Repository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Repository{client: client, key: key, logger: logger}, nil
}

func (r *Repository) Load(ctx context.Context) (*dedup.State, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Info("no prior state key, starting empty", "key", r.key)
		return dedup.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state key: %w", err)
	}

	state, err := storage.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode state key %s: %w", r.key, err)
	}
	return state, nil
}

func (r *Repository) Save(ctx context.Context, state *dedup.State) error {
	data, err := storage.Encode(state)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write state key: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.client.Close()
}
