package blob

import (
	"context"
	"fmt"

	"drive-go/internal/config"
	"drive-go/internal/drive"
)

// NewBlobStoreFromConfig creates a blob store based on the configuration type.
func NewBlobStoreFromConfig(ctx context.Context, cfg config.BlobStoreConfig) (drive.BlobStore, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem blob store requires fs_root")
		}
		return NewFileSystemStore(cfg.FSRoot)
	case "s3":
		return NewS3Store(ctx, S3Options{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			UsePathStyle:    cfg.S3UsePathStyle,
		})
	default:
		return nil, fmt.Errorf("unsupported blob store type: %q", cfg.Type)
	}
}
