package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/estudiapro/demo-api/internal/config"
)

// MinioStore is the object-storage backend, for deployments that want
// uploads to survive outside redis.
type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, err
	}

	// Ensure bucket exists
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &MinioStore{client: client, bucket: cfg.MinIOBucket}, nil
}

func (s *MinioStore) Put(ctx context.Context, data []byte, name, contentType string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("%w: minio client not configured", ErrUnavailable)
	}
	if name == "" {
		name = "archivo"
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	id := uuid.NewString()
	_, err := s.client.PutObject(ctx, s.bucket, id, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"filename":   name,
			"created-at": fmt.Sprintf("%d", time.Now().UnixMilli()),
		},
	})
	if err != nil {
		return "", fmt.Errorf("store blob %s: %w", id, err)
	}
	return id, nil
}

func (s *MinioStore) Get(ctx context.Context, id string) (*Record, error) {
	if s.client == nil {
		return nil, nil
	}
	obj, err := s.client.GetObject(ctx, s.bucket, id, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", id, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, fmt.Errorf("read blob %s: %w", id, err)
	}

	stat, err := obj.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat blob %s: %w", id, err)
	}

	rec := &Record{
		ID:          id,
		Data:        data,
		Name:        stat.UserMetadata["Filename"],
		ContentType: stat.ContentType,
	}
	return rec, nil
}

func (s *MinioStore) Delete(ctx context.Context, id string) error {
	if s.client == nil {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{})
}
