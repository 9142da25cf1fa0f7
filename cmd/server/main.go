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
	"github.com/estudiapro/demo-api/internal/router"
	"github.com/estudiapro/demo-api/internal/storage"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	store, err := storage.New(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer store.Close()

	var blobs blob.Store
	switch cfg.BlobBackend {
	case "minio":
		blobs, err = blob.NewMinioStore(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO storage: %v", err)
		}
	default:
		blobs = blob.NewRedisStore(store.Client())
	}

	bc := broadcast.New(store.Client(), logger)
	defer bc.Close()

	eng := engine.New(cfg, store, blobs, bc, logger)
	if err := eng.SeedAll(context.Background()); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	r := router.Setup(cfg, eng, store)

	logger.Info("demo api listening", "port", cfg.Port, "blob_backend", cfg.BlobBackend)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
