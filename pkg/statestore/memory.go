package statestore

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is a process-local Store.
type Memory struct {
	mu sync.Mutex
	c  *gocache.Cache
}

var _ Store = (*Memory)(nil)

// NewMemory creates a Memory store. Expired states are purged every
// cleanupInterval; a non-positive interval disables the janitor.
func NewMemory(cleanupInterval time.Duration) *Memory {
	return &Memory{c: gocache.New(DefaultTTL, cleanupInterval)}
}

func (m *Memory) Save(_ context.Context, state string, ttl time.Duration) error {
	if state == "" {
		return ErrEmptyState
	}
	m.c.Set(state, struct{}{}, ttlOrDefault(ttl))
	return nil
}

func (m *Memory) Consume(_ context.Context, state string) error {
	if state == "" {
		return ErrEmptyState
	}

	// Get and Delete must not interleave with another Consume.
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.c.Get(state); !ok {
		return ErrStateNotFound
	}
	m.c.Delete(state)
	return nil
}
