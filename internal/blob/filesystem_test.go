package blob

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileSystemStore(t *testing.T) {
	root := filepath.Join(t.TempDir(), "blobs")

	s, err := NewFileSystemStore(root)
	if err != nil {
		t.Fatalf("NewFileSystemStore() error = %v", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		t.Fatalf("root directory not created: %v", err)
	}
	if err := s.ValidateSetup(context.Background()); err != nil {
		t.Errorf("ValidateSetup() error = %v", err)
	}
}

func TestFileSystemStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewFileSystemStore(root)
	if err != nil {
		t.Fatalf("NewFileSystemStore() error = %v", err)
	}

	p, err := s.Save(ctx, "users/u1/r1", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	onDisk, err := os.ReadFile(filepath.Join(root, "users", "u1", "r1"))
	if err != nil {
		t.Fatalf("blob file not written: %v", err)
	}
	if string(onDisk) != "payload" {
		t.Errorf("file content = %q, want %q", onDisk, "payload")
	}

	// No temp files should be left behind.
	entries, _ := os.ReadDir(filepath.Join(root, "users", "u1"))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}

	var buf bytes.Buffer
	if err := s.Get(ctx, p, &buf); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if buf.String() != "payload" {
		t.Errorf("Get() = %q, want %q", buf.String(), "payload")
	}

	ok, err := s.Exists(ctx, p)
	if err != nil || !ok {
		t.Fatalf("Exists() = %v, %v; want true, nil", ok, err)
	}

	if err := s.Delete(ctx, p); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if ok, _ := s.Exists(ctx, p); ok {
		t.Error("blob still exists after Delete()")
	}
	if err := s.Delete(ctx, p); err != nil {
		t.Errorf("Delete() of missing blob error = %v, want nil", err)
	}
}

func TestFileSystemStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileSystemStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSystemStore() error = %v", err)
	}

	if _, err := s.Save(ctx, "snapshots/latest", strings.NewReader("one")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := s.Save(ctx, "snapshots/latest", strings.NewReader("two")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var buf bytes.Buffer
	if err := s.Get(ctx, "snapshots/latest", &buf); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if buf.String() != "two" {
		t.Errorf("Get() = %q, want %q", buf.String(), "two")
	}
}

func TestFileSystemStore_Errors(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileSystemStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSystemStore() error = %v", err)
	}

	t.Run("get missing", func(t *testing.T) {
		err := s.Get(ctx, "users/u1/missing", &bytes.Buffer{})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("exists missing", func(t *testing.T) {
		ok, err := s.Exists(ctx, "users/u1/missing")
		if err != nil || ok {
			t.Errorf("Exists() = %v, %v; want false, nil", ok, err)
		}
	})

	t.Run("path escaping root", func(t *testing.T) {
		if _, err := s.Save(ctx, "../outside", strings.NewReader("x")); err == nil {
			t.Error("Save() expected error for path outside root")
		}
	})
}

func TestFileSystemStore_ValidateSetup_NotADirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "blobs")
	s, err := NewFileSystemStore(root)
	if err != nil {
		t.Fatalf("NewFileSystemStore() error = %v", err)
	}
	if err := os.Remove(root); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(root, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := s.ValidateSetup(context.Background()); err == nil {
		t.Error("ValidateSetup() expected error when root is a file")
	}
}
