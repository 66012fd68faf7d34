// Package statestore keeps the CSRF "state" values handed out with
// authorization URLs until the provider redirects back.
//
// A state is single-use: Consume succeeds at most once per Save, and never
// after the TTL has elapsed. Memory suits a single instance; Redis shares
// states between replicas.
package statestore

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

var (
	ErrStateNotFound = errors.New("statestore: state not found or expired")
	ErrEmptyState    = errors.New("statestore: empty state")
)

// DefaultTTL is how long a state stays redeemable when no TTL is given.
const DefaultTTL = 10 * time.Minute

// Store saves and redeems states.
type Store interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	Consume(ctx context.Context, state string) error
}

// Config is the state TTL loaded from the environment.
type Config struct {
	TTL time.Duration `env:"OAUTH_STATE_TTL" envDefault:"10m"`
}

// Generate returns a random URL-safe state of 32 bytes of entropy.
func Generate() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("statestore: generate: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
