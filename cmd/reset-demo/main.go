// Command reset-demo wipes every demo namespace and re-seeds it, giving the
// next session a pristine dataset.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/estudiapro/demo-api/internal/blob"
	"github.com/estudiapro/demo-api/internal/broadcast"
	"github.com/estudiapro/demo-api/internal/config"
	"github.com/estudiapro/demo-api/internal/engine"
	"github.com/estudiapro/demo-api/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	store, err := storage.New(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Delete(ctx, storage.NamespaceKeys()...); err != nil {
		log.Fatalf("Failed to wipe demo namespaces: %v", err)
	}
	logger.Info("demo namespaces wiped", "keys", len(storage.NamespaceKeys()))

	bc := broadcast.New(store.Client(), logger)
	defer bc.Close()

	eng := engine.New(cfg, store, blob.NewRedisStore(store.Client()), bc, logger)
	if err := eng.SeedAll(ctx); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}
	logger.Info("demo data seeded")
}
