package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by Redis, for deployments where cache entries
// should be shared across instances instead of written to local disk.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOption configures RedisStore.
type RedisOption func(*redisConfig)

type redisConfig struct {
	addr     string
	password string
	db       int
	prefix   string
}

// WithRedisAddr sets the Redis address.
func WithRedisAddr(addr string) RedisOption {
	return func(c *redisConfig) { c.addr = addr }
}

// WithRedisAuth sets password and database.
func WithRedisAuth(password string, db int) RedisOption {
	return func(c *redisConfig) {
		c.password = password
		c.db = db
	}
}

// WithRedisPrefix sets the key prefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(c *redisConfig) { c.prefix = prefix }
}

// NewRedisStore connects and pings Redis.
func NewRedisStore(opts ...RedisOption) (*RedisStore, error) {
	cfg := &redisConfig{
		addr:   "localhost:6379",
		prefix: "marketscan",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.addr,
		Password: cfg.password,
		DB:       cfg.db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client, prefix: cfg.prefix}, nil
}

func (s *RedisStore) wrapKey(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	b, err := s.client.Get(ctx, s.wrapKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("redis get: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		_ = s.client.Unlink(ctx, s.wrapKey(key)).Err()
		return Entry{}, false, nil
	}
	return e, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, e Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("redis encode: %w", err)
	}
	// Redis expiry mirrors the entry's own so stale keys self-clean.
	ttl := time.Until(e.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, s.wrapKey(key), b, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	wrapped := make([]string, len(keys))
	for i, k := range keys {
		wrapped[i] = s.wrapKey(k)
	}
	return s.client.Unlink(ctx, wrapped...).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	keys, err := s.client.Keys(ctx, s.prefix+":*").Result()
	if err != nil {
		return fmt.Errorf("redis keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Unlink(ctx, keys...).Err()
}

func (s *RedisStore) Close() error { return s.client.Close() }
