package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port    string
	GinMode string

	// Redis (namespace storage + sync marker + rate limiting)
	RedisURL string

	// Blob storage backend: "redis" (self-contained demo) or "minio"
	BlobBackend string

	// MinIO (used when BlobBackend is "minio")
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	// Real backend, used by the client façade when demo mode is off.
	// Also the origin prepended to relative file paths.
	APIBaseURL string

	// JWT
	JWTSecret string

	// Artificial latency applied to every emulated request
	DemoLatency time.Duration

	// CORS
	CORSOrigins []string
}

func Load() *Config {
	return &Config{
		Port:    getEnv("PORT", "8000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		BlobBackend: getEnv("BLOB_BACKEND", "redis"),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "demo-files"),
		MinIOUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",

		APIBaseURL: strings.TrimSuffix(getEnv("API_BASE_URL", "http://127.0.0.1:8000/api"), "/"),

		JWTSecret: getEnv("JWT_SECRET", "development_secret"),

		DemoLatency: getDurationEnv("DEMO_LATENCY", 350*time.Millisecond),

		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"), ","),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
