// Package blob stores uploaded file content keyed by generated ids. Entities
// reference blobs by id; resolution order is blob id, then stored URL, then
// origin-prefixed relative path.
package blob

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/estudiapro/demo-api/internal/storage"
)

// ErrUnavailable means the backing storage primitive is missing in this
// runtime. Put surfaces it loudly; Get degrades to nil.
var ErrUnavailable = errors.New("blob store is not available")

type Record struct {
	ID          string
	Data        []byte
	Name        string
	ContentType string
	CreatedAt   int64
}

type Store interface {
	// Put stores the payload under a freshly generated id and returns it.
	Put(ctx context.Context, data []byte, name, contentType string) (string, error)
	// Get returns the record, or nil when absent or when the store is
	// unavailable in the current runtime.
	Get(ctx context.Context, id string) (*Record, error)
	// Delete removes the record; deleting a missing id is a no-op.
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps blobs in redis hashes, one per record, written through a
// transactional pipeline. This is the default backend: it keeps the demo
// engine self-contained.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) key(id string) string {
	return storage.BlobKeyPrefix + id
}

func (s *RedisStore) Put(ctx context.Context, data []byte, name, contentType string) (string, error) {
	if s.rdb == nil {
		return "", fmt.Errorf("%w: no redis connection", ErrUnavailable)
	}
	if name == "" {
		name = "archivo"
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	id := uuid.NewString()
	createdAt := time.Now().UnixMilli()

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, s.key(id), map[string]any{
		"data":        data,
		"name":        name,
		"contentType": contentType,
		"createdAt":   createdAt,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("store blob %s: %w", id, err)
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Record, error) {
	if s.rdb == nil {
		return nil, nil
	}
	fields, err := s.rdb.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	createdAt, _ := strconv.ParseInt(fields["createdAt"], 10, 64)
	return &Record{
		ID:          id,
		Data:        []byte(fields["data"]),
		Name:        fields["name"],
		ContentType: fields["contentType"],
		CreatedAt:   createdAt,
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if s.rdb == nil {
		return nil
	}
	if err := s.rdb.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete blob %s: %w", id, err)
	}
	return nil
}
