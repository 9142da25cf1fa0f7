// Package broadcast publishes "namespace changed" hints so other tabs (or
// subscribers in this process) can re-fetch. Two redundant channels: the
// persisted sync-marker key, which other tabs watch for writes, and a
// watermill topic for in-process listeners. Consumers must treat signals as
// at-least-once, unordered invalidation hints, never as deltas.
package broadcast

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"

	"github.com/estudiapro/demo-api/internal/storage"
)

// Topic is the watermill topic name, matching the browser build's
// BroadcastChannel name.
const Topic = "estudia-pro-demo-sync"

// Change kinds. One per namespace a mutation can touch.
const (
	KindSubjects      = "subjects"
	KindResources     = "resources"
	KindCommunity     = "community"
	KindForums        = "forums"
	KindUsers         = "users"
	KindNotifications = "notifications"
	KindActivities    = "activities"
	KindTutors        = "tutors"
)

type Signal struct {
	Kind      string `json:"kind"`
	Timestamp int64  `json:"timestamp"`
}

type Broadcaster struct {
	rdb    *redis.Client
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

func New(rdb *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		rdb:    rdb,
		pubsub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger)),
		logger: logger,
	}
}

// Broadcast sends the hint on both channels. Both sends are best-effort: a
// failed channel is logged and skipped, never surfaced to the caller.
func (b *Broadcaster) Broadcast(ctx context.Context, kind string) {
	payload, err := json.Marshal(Signal{Kind: kind, Timestamp: time.Now().UnixMilli()})
	if err != nil {
		b.logger.Warn("encode sync signal failed", "kind", kind, "error", err)
		return
	}

	if b.rdb != nil {
		if err := b.rdb.Set(ctx, storage.KeySyncMark, payload, 0).Err(); err != nil {
			b.logger.Warn("sync marker write failed", "kind", kind, "error", err)
		}
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubsub.Publish(Topic, msg); err != nil {
		b.logger.Warn("sync publish failed", "kind", kind, "error", err)
	}
}

// Subscribe returns the in-process stream of signals. Messages must be
// Acked by the consumer.
func (b *Broadcaster) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, Topic)
}

func (b *Broadcaster) Close() error {
	return b.pubsub.Close()
}

// Decode parses a signal payload; used by subscribers on either channel.
func Decode(payload []byte) (Signal, error) {
	var sig Signal
	err := json.Unmarshal(payload, &sig)
	return sig, err
}
