package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore persists one JSON file per cache key under a dedicated directory.
// File names are the filesystem-safe hash of the key, so arbitrary key strings
// never leak into paths.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the cache directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("disk cache: directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("disk cache: create dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) path(key string) string {
	return filepath.Join(s.dir, HashKey(key)+".json")
}

func (s *DiskStore) Get(_ context.Context, key string) (Entry, bool, error) {
	p := s.path(key)
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("disk cache: read: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		// Corrupt entry: remove it rather than serving garbage.
		_ = os.Remove(p)
		return Entry{}, false, nil
	}
	return e, true, nil
}

func (s *DiskStore) Set(_ context.Context, key string, e Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("disk cache: encode: %w", err)
	}
	if err := os.WriteFile(s.path(key), b, 0o644); err != nil {
		return fmt.Errorf("disk cache: write: %w", err)
	}
	return nil
}

func (s *DiskStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		if err := os.Remove(s.path(k)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("disk cache: remove: %w", err)
		}
	}
	return nil
}

func (s *DiskStore) Clear(_ context.Context) error {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return fmt.Errorf("disk cache: glob: %w", err)
	}
	for _, p := range matches {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("disk cache: remove: %w", err)
		}
	}
	return nil
}

func (s *DiskStore) Close() error { return nil }
