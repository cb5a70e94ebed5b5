// Package cache is a keyed TTL cache with a memory tier in front of a
// persistent store (disk files or Redis). Eviction is purely time-based.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Entry is the unit stored in every tier: the encoded value plus an absolute
// expiry. A value is only ever returned while now < ExpiresAt.
type Entry struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Expired reports whether the entry is past its expiry at the given instant.
func (e Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Store is the second cache tier. Implementations persist entries across
// process restarts; the memory tier does not.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
	Close() error
}

// Manager serializes every operation behind one mutex so no caller observes a
// torn read or write. Reads check memory first and fall back to the store,
// promoting live entries; expired entries are evicted from both tiers.
type Manager struct {
	mu    sync.Mutex
	mem   map[string]Entry
	store Store
	now   func() time.Time
}

// ManagerOption configures Manager.
type ManagerOption func(*Manager)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a Manager over an optional second-tier store.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		mem:   make(map[string]Entry),
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get decodes the cached value for key into dest. Returns ErrCacheMiss when
// the key is absent or expired in both tiers.
func (m *Manager) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if e, ok := m.mem[key]; ok {
		if !e.Expired(now) {
			return json.Unmarshal(e.Value, dest)
		}
		delete(m.mem, key)
		if m.store != nil {
			_ = m.store.Delete(ctx, key)
		}
		return ErrCacheMiss
	}

	if m.store == nil {
		return ErrCacheMiss
	}

	e, ok, err := m.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("cache store get: %w", err)
	}
	if !ok {
		return ErrCacheMiss
	}
	if e.Expired(now) {
		_ = m.store.Delete(ctx, key)
		return ErrCacheMiss
	}

	// Promote the live entry so the next read is memory-only.
	m.mem[key] = e
	return json.Unmarshal(e.Value, dest)
}

// Set writes the value to memory and persists it to the store. A store write
// failure does not fail the Set; the memory tier already holds the entry.
func (m *Manager) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	e := Entry{Value: raw, ExpiresAt: m.now().Add(ttl)}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.mem[key] = e
	if m.store != nil {
		if err := m.store.Set(ctx, key, e); err != nil {
			return nil // tolerated: memory tier is authoritative until expiry
		}
	}
	return nil
}

// Invalidate removes keys from both tiers.
func (m *Manager) Invalidate(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.mem, k)
	}
	if m.store != nil {
		return m.store.Delete(ctx, keys...)
	}
	return nil
}

// Clear removes all entries from both tiers.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mem = make(map[string]Entry)
	if m.store != nil {
		return m.store.Clear(ctx)
	}
	return nil
}

// Close releases store resources.
func (m *Manager) Close() error {
	if m.store != nil {
		return m.store.Close()
	}
	return nil
}

// GetTyped retrieves and decodes a value of type T.
func GetTyped[T any](ctx context.Context, m *Manager, key string) (T, error) {
	var v T
	err := m.Get(ctx, key, &v)
	return v, err
}
