package client

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/estudiapro/demo-api/internal/blob"
	"github.com/estudiapro/demo-api/internal/broadcast"
	"github.com/estudiapro/demo-api/internal/config"
	"github.com/estudiapro/demo-api/internal/engine"
	"github.com/estudiapro/demo-api/internal/storage"
)

func newTestClient(t *testing.T) (*Client, *storage.Store) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store := storage.NewWithClient(rdb)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		JWTSecret: "test-secret",
		// Unroutable on purpose: offline mode must never reach it.
		APIBaseURL:  "http://192.0.2.1:1/api",
		DemoLatency: time.Millisecond,
	}
	bc := broadcast.New(rdb, logger)
	t.Cleanup(func() { bc.Close() })

	eng := engine.New(cfg, store, blob.NewRedisStore(rdb), bc, logger)
	c, err := New(cfg, eng, store, logger)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, store
}

func TestDemoModeDefaultsOn(t *testing.T) {
	c, _ := newTestClient(t)
	if !c.DemoMode() {
		t.Fatal("demo mode must default to on")
	}
}

func TestLoginNormalizedShape(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	res, err := c.Login(ctx, "demo@estudiapro.com", "demo123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !res.Success || res.Token == "" || res.User == nil {
		t.Fatalf("normalized login missing fields: %+v", res)
	}
	if res.User.Role != "estudiante" {
		t.Fatalf("role = %s", res.User.Role)
	}

	bad, err := c.Login(ctx, "demo@estudiapro.com", "wrong")
	if err != nil {
		t.Fatalf("bad login: %v", err)
	}
	if bad.Success || bad.Message == "" {
		t.Fatalf("expected credential failure envelope, got %+v", bad)
	}
}

func TestOfflineFlowNeverTouchesNetwork(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	if _, err := c.Login(ctx, "demo@estudiapro.com", "demo123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	subjects, err := c.Subjects(ctx)
	if err != nil {
		t.Fatalf("subjects: %v", err)
	}
	if len(subjects) == 0 {
		t.Fatal("expected the seeded catalog")
	}

	mine, err := c.MySubjects(ctx)
	if err != nil {
		t.Fatalf("my subjects: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("expected 3 seeded enrollments, got %d", len(mine))
	}

	result, err := c.SubmitExam(ctx, "exam-derivadas", map[string]any{
		"q-1": "12x^3-10x", "q-2": "1", "q-3": "3",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Calificacion != 100 {
		t.Fatalf("expected perfect score, got %+v", result)
	}
}

func TestSetDemoModeResetsSession(t *testing.T) {
	c, store := newTestClient(t)
	ctx := context.Background()

	if _, err := c.Login(ctx, "demo@estudiapro.com", "demo123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if token, _ := store.LoadString(ctx, storage.KeyAuthToken); token == "" {
		t.Fatal("token should exist after login")
	}

	if err := c.SetDemoMode(ctx, false); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if c.DemoMode() {
		t.Fatal("expected demo mode off")
	}
	if token, _ := store.LoadString(ctx, storage.KeyAuthToken); token != "" {
		t.Fatal("toggle must clear the stored token")
	}
	if flag, _ := store.LoadString(ctx, storage.KeyDemoMode); flag != "false" {
		t.Fatalf("flag not persisted, got %q", flag)
	}

	if err := c.SetDemoMode(ctx, true); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	// Back in demo mode with a fresh session: profile requires login again.
	if _, err := c.Profile(ctx); err != engine.ErrSessionExpired {
		t.Fatalf("expected expired session after toggle, got %v", err)
	}
}

func TestToggleIsIdempotent(t *testing.T) {
	c, store := newTestClient(t)
	ctx := context.Background()

	if _, err := c.Login(ctx, "demo@estudiapro.com", "demo123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := c.SetDemoMode(ctx, true); err != nil {
		t.Fatalf("noop toggle: %v", err)
	}
	// Same-state toggle must not clear the session.
	if token, _ := store.LoadString(ctx, storage.KeyAuthToken); token == "" {
		t.Fatal("noop toggle cleared the token")
	}
}
