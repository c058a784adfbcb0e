package storage

import (
	"context"
	"fmt"

	"github.com/yukikurage/foodgram-api/internal/config"
)

// Store persists recipe images and resolves their public URLs.
type Store interface {
	Save(ctx context.Context, key string, img *Image) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New builds the store selected by STORAGE_BACKEND.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case "local", "":
		return NewLocalStore(cfg.MediaDir, cfg.MediaURL), nil
	case "s3":
		return NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.AWSAccessKey, cfg.AWSSecretKey)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}
