package statestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "oauth:state:"

// Redis is a Store shared by every instance connected to the same server.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

var _ Store = (*Redis)(nil)

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithKeyPrefix overrides the "oauth:state:" key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) Save(ctx context.Context, state string, ttl time.Duration) error {
	if state == "" {
		return ErrEmptyState
	}
	if err := r.client.Set(ctx, r.prefix+state, 1, ttlOrDefault(ttl)).Err(); err != nil {
		return fmt.Errorf("statestore: save: %w", err)
	}
	return nil
}

// Consume deletes the key with GETDEL, so only one caller can redeem a state.
func (r *Redis) Consume(ctx context.Context, state string) error {
	if state == "" {
		return ErrEmptyState
	}
	err := r.client.GetDel(ctx, r.prefix+state).Err()
	if errors.Is(err, redis.Nil) {
		return ErrStateNotFound
	}
	if err != nil {
		return fmt.Errorf("statestore: consume: %w", err)
	}
	return nil
}
