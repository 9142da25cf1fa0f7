package blob

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestBlobStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb)
}

func TestPutGetDelete(t *testing.T) {
	s := newTestBlobStore(t)
	ctx := context.Background()

	id, err := s.Put(ctx, []byte("contenido"), "apuntes.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec == nil {
		t.Fatal("record missing after put")
	}
	if !bytes.Equal(rec.Data, []byte("contenido")) || rec.Name != "apuntes.pdf" || rec.ContentType != "application/pdf" {
		t.Fatalf("record mismatch: %+v", rec)
	}
	if rec.CreatedAt == 0 {
		t.Fatal("expected a creation timestamp")
	}

	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rec, err = s.Get(ctx, id)
	if err != nil || rec != nil {
		t.Fatalf("expected nil after delete, got %+v err %v", rec, err)
	}
	// Deleting again is a no-op.
	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
}

func TestPutDefaultsMetadata(t *testing.T) {
	s := newTestBlobStore(t)
	ctx := context.Background()

	id, err := s.Put(ctx, []byte("x"), "", "")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	rec, err := s.Get(ctx, id)
	if err != nil || rec == nil {
		t.Fatalf("get: %+v %v", rec, err)
	}
	if rec.Name != "archivo" || rec.ContentType != "application/octet-stream" {
		t.Fatalf("defaults not applied: %+v", rec)
	}
}

func TestGetUnknownID(t *testing.T) {
	s := newTestBlobStore(t)
	rec, err := s.Get(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil for unknown id, got %+v", rec)
	}
}

func TestUnavailableStore(t *testing.T) {
	s := NewRedisStore(nil)
	ctx := context.Background()

	if _, err := s.Put(ctx, []byte("x"), "a", "b"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from Put, got %v", err)
	}
	if rec, err := s.Get(ctx, "id"); err != nil || rec != nil {
		t.Fatalf("Get must degrade silently, got %+v %v", rec, err)
	}
	if err := s.Delete(ctx, "id"); err != nil {
		t.Fatalf("Delete must degrade silently, got %v", err)
	}
}
