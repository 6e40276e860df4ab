// Package storage implements object storage for project attachments on
// Google Cloud Storage or any S3 compatible service.
package storage

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-project-marketplace/config"
	"github.com/oksasatya/go-project-marketplace/internal/domain/gateway"
)

const (
	DriverGCS = "gcs"
	DriverS3  = "s3"
)

// New builds the storage selected by cfg.StorageDriver. The returned close
// func releases the underlying client.
func New(ctx context.Context, cfg *config.Config) (gateway.ObjectStorage, func() error, error) {
	if cfg.StorageBucket == "" {
		return nil, nil, fmt.Errorf("STORAGE_BUCKET is not set")
	}
	switch cfg.StorageDriver {
	case DriverGCS:
		client, err := NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, nil, fmt.Errorf("gcs client: %w", err)
		}
		g := NewGCS(client, cfg.StorageBucket, cfg.GCSPublicRead)
		return g, g.Close, nil
	case DriverS3:
		s, err := NewS3(ctx, S3Config{
			Region:       cfg.S3Region,
			Endpoint:     cfg.S3Endpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			Bucket:       cfg.StorageBucket,
			UsePathStyle: cfg.S3UsePathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

var (
	_ gateway.ObjectStorage = (*GCS)(nil)
	_ gateway.ObjectStorage = (*S3)(nil)
)
