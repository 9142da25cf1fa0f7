package broadcast

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/estudiapro/demo-api/internal/storage"
)

func newTestBroadcaster(t *testing.T) (*Broadcaster, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	b := New(rdb, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { b.Close() })
	return b, rdb
}

func TestBroadcastWritesSyncMarker(t *testing.T) {
	b, rdb := newTestBroadcaster(t)
	ctx := context.Background()

	b.Broadcast(ctx, KindSubjects)

	raw, err := rdb.Get(ctx, storage.KeySyncMark).Bytes()
	if err != nil {
		t.Fatalf("marker missing: %v", err)
	}
	sig, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sig.Kind != KindSubjects || sig.Timestamp == 0 {
		t.Fatalf("unexpected signal %+v", sig)
	}
}

func TestSubscribeReceivesSignals(t *testing.T) {
	b, _ := newTestBroadcaster(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	messages, err := b.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	b.Broadcast(ctx, KindForums)

	select {
	case msg := <-messages:
		sig, err := Decode(msg.Payload)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if sig.Kind != KindForums {
			t.Fatalf("expected forums signal, got %+v", sig)
		}
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("no signal received")
	}
}

func TestBroadcastSurvivesDeadRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	b := New(rdb, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { b.Close() })

	rdb.Close()
	// Must not panic or error: the sync marker channel is best-effort.
	b.Broadcast(context.Background(), KindUsers)
}

func TestMarkerOverwrittenByLatestSignal(t *testing.T) {
	b, rdb := newTestBroadcaster(t)
	ctx := context.Background()

	b.Broadcast(ctx, KindSubjects)
	b.Broadcast(ctx, KindNotifications)

	raw, err := rdb.Get(ctx, storage.KeySyncMark).Bytes()
	if err != nil {
		t.Fatalf("marker: %v", err)
	}
	sig, _ := Decode(raw)
	if sig.Kind != KindNotifications {
		t.Fatalf("marker must hold the latest signal, got %+v", sig)
	}
}
