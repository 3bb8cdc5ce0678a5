package blob

import (
	"context"
	"path/filepath"
	"testing"

	"drive-go/internal/config"
)

func TestNewBlobStoreFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, err := NewBlobStoreFromConfig(ctx, config.BlobStoreConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("NewBlobStoreFromConfig() error = %v", err)
		}
		if _, ok := s.(*MemoryStore); !ok {
			t.Errorf("got %T, want *MemoryStore", s)
		}
	})

	t.Run("filesystem", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "blobs")
		s, err := NewBlobStoreFromConfig(ctx, config.BlobStoreConfig{Type: "filesystem", FSRoot: root})
		if err != nil {
			t.Fatalf("NewBlobStoreFromConfig() error = %v", err)
		}
		if _, ok := s.(*FileSystemStore); !ok {
			t.Errorf("got %T, want *FileSystemStore", s)
		}
	})

	t.Run("filesystem without root", func(t *testing.T) {
		if _, err := NewBlobStoreFromConfig(ctx, config.BlobStoreConfig{Type: "filesystem"}); err == nil {
			t.Error("expected error for missing fs_root")
		}
	})

	t.Run("s3", func(t *testing.T) {
		s, err := NewBlobStoreFromConfig(ctx, config.BlobStoreConfig{
			Type:              "s3",
			S3Bucket:          "bucket",
			S3Region:          "eu-west-1",
			S3AccessKeyID:     "id",
			S3SecretAccessKey: "secret",
		})
		if err != nil {
			t.Fatalf("NewBlobStoreFromConfig() error = %v", err)
		}
		if _, ok := s.(*S3Store); !ok {
			t.Errorf("got %T, want *S3Store", s)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := NewBlobStoreFromConfig(ctx, config.BlobStoreConfig{Type: "ftp"}); err == nil {
			t.Error("expected error for unknown type")
		}
	})
}
