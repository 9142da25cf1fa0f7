// Package storage persists the engine's namespaces: each one is a single
// JSON value under a flat, well-known key. This mirrors the browser build's
// localStorage contract, with redis standing in for the browser's storage.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
}

// New connects to redis and verifies the connection, failing fast the way
// the rate limiter does: a storage-less engine is useless.
func New(redisURL string) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{rdb: client}, nil
}

// NewWithClient wraps an existing client. Tests use this with miniredis.
func NewWithClient(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Client exposes the underlying connection for collaborators that speak
// redis directly (broadcaster, blob store, rate limiter).
func (s *Store) Client() *redis.Client {
	return s.rdb
}

// Load reads a namespace into dest. The second return is false when the key
// does not exist, in which case dest is left untouched so the caller can
// fall back to its seed dataset.
func (s *Store) Load(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Save serializes value and writes it back under key. Called after every
// mutation to the namespace; there is no buffering.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SaveMulti writes several namespaces in one MULTI/EXEC so readers never see
// a partially applied multi-record change (the cascading subject delete).
func (s *Store) SaveMulti(ctx context.Context, values map[string]any) error {
	pipe := s.rdb.TxPipeline()
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		pipe.Set(ctx, key, raw, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save batch: %w", err)
	}
	return nil
}

// LoadString reads a flat string value (auth token, demo-mode flag).
// Missing keys come back as "".
func (s *Store) LoadString(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return val, nil
}

func (s *Store) SaveString(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Delete removes keys; missing keys are not an error.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete keys: %w", err)
	}
	return nil
}

// Raw returns the exact persisted bytes for a key, or nil when absent.
// Used by tests that assert byte-identical output across migration runs.
func (s *Store) Raw(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return raw, nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
