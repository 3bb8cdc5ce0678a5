package drive_test

import (
	"context"
	"errors"
	"testing"

	"drive-go/internal/drive"
	"drive-go/internal/model"
)

// tree creates /a, /a/b and /a/b/c for alice, each the parent of the next.
func (f *fixture) tree(t *testing.T) (a, b, c *model.Directory) {
	t.Helper()
	ctx := context.Background()

	a, err := f.catalog.CreateDirectory(ctx, f.alice, "a", "/a", nil)
	if err != nil {
		t.Fatalf("CreateDirectory(/a) error = %v", err)
	}
	b, err = f.catalog.CreateDirectory(ctx, f.alice, "b", "/a/b", &a.ID)
	if err != nil {
		t.Fatalf("CreateDirectory(/a/b) error = %v", err)
	}
	c, err = f.catalog.CreateDirectory(ctx, f.alice, "c", "/a/b/c", &b.ID)
	if err != nil {
		t.Fatalf("CreateDirectory(/a/b/c) error = %v", err)
	}
	return a, b, c
}

func TestCatalog_CreateDirectory(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a name that is not the last segment", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.catalog.CreateDirectory(ctx, f.alice, "docs", "/work/reports", nil)
		if !errors.Is(err, drive.ErrPathMismatch) {
			t.Errorf("CreateDirectory() error = %v, want PathMismatch", err)
		}
	})

	t.Run("duplicate path is a conflict", func(t *testing.T) {
		f := newFixture(t)

		if _, err := f.catalog.CreateDirectory(ctx, f.alice, "docs", "/docs", nil); err != nil {
			t.Fatalf("first CreateDirectory() error = %v", err)
		}
		_, err := f.catalog.CreateDirectory(ctx, f.alice, "docs", "/docs", nil)
		if !errors.Is(err, drive.ErrConflict) {
			t.Errorf("second CreateDirectory() error = %v, want Conflict", err)
		}
	})

	t.Run("same path for another owner is fine", func(t *testing.T) {
		f := newFixture(t)

		if _, err := f.catalog.CreateDirectory(ctx, f.alice, "docs", "/docs", nil); err != nil {
			t.Fatalf("CreateDirectory(alice) error = %v", err)
		}
		if _, err := f.catalog.CreateDirectory(ctx, f.bob, "docs", "/docs", nil); err != nil {
			t.Errorf("CreateDirectory(bob) error = %v", err)
		}
	})

	t.Run("parent owned by someone else is not found", func(t *testing.T) {
		f := newFixture(t)

		parent, err := f.catalog.CreateDirectory(ctx, f.bob, "docs", "/docs", nil)
		if err != nil {
			t.Fatalf("CreateDirectory(bob) error = %v", err)
		}
		_, err = f.catalog.CreateDirectory(ctx, f.alice, "sub", "/docs/sub", &parent.ID)
		if !errors.Is(err, drive.ErrNotFound) {
			t.Errorf("CreateDirectory() error = %v, want NotFound", err)
		}
	})
}

func TestCatalog_ListDirectoryFiles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b, _ := f.tree(t)
	f.upload(t, f.alice, drive.DirectoryRef{Name: "a", Path: "/a"}, "x.txt", "x")

	listing, err := f.catalog.ListDirectoryFiles(ctx, f.alice, a.ID)
	if err != nil {
		t.Fatalf("ListDirectoryFiles() error = %v", err)
	}
	if len(listing.Children) != 1 || listing.Children[0].ID != b.ID {
		t.Errorf("Children = %v, want only /a/b", listing.Children)
	}
	if len(listing.Files) != 1 || listing.Files[0].DisplayName != "x.txt" {
		t.Errorf("Files = %v, want only x.txt", listing.Files)
	}

	_, err = f.catalog.ListDirectoryFiles(ctx, f.bob, a.ID)
	if !errors.Is(err, drive.ErrNotFound) {
		t.Errorf("ListDirectoryFiles(bob) error = %v, want NotFound", err)
	}
}

func TestCatalog_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("directory delete removes files and blobs", func(t *testing.T) {
		f := newFixture(t)
		f.upload(t, f.alice, docs, "a.txt", "a")
		f.upload(t, f.alice, docs, "a.txt", "a2")
		f.upload(t, f.alice, docs, "b.txt", "b")

		dirs, err := f.catalog.ListDirectories(ctx, f.alice)
		if err != nil || len(dirs) != 1 {
			t.Fatalf("ListDirectories() = %v, %v", dirs, err)
		}

		deleted, err := f.catalog.Delete(ctx, f.alice, "directory", []string{dirs[0].ID})
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if len(deleted) != 2 {
			t.Errorf("Delete() removed %d files, want 2", len(deleted))
		}
		if n := len(f.blobs.Paths()); n != 0 {
			t.Errorf("%d blobs left, want 0", n)
		}

		_, err = f.catalog.ResolveDirectory(ctx, f.alice, dirs[0].ID)
		if !errors.Is(err, drive.ErrNotFound) {
			t.Errorf("ResolveDirectory() error = %v, want NotFound", err)
		}
		files, err := f.catalog.List(ctx, f.alice)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(files) != 0 {
			t.Errorf("List() returned %d files, want 0", len(files))
		}
		if n := f.logger.Count("INFO", "items deleted"); n != 1 {
			t.Errorf("logged %d deletes, want 1", n)
		}
	})

	t.Run("cascade reaches direct children only", func(t *testing.T) {
		f := newFixture(t)
		a, b, c := f.tree(t)
		f.upload(t, f.alice, drive.DirectoryRef{Name: "b", Path: "/a/b"}, "in-b.txt", "b")
		kept := f.upload(t, f.alice, drive.DirectoryRef{Name: "c", Path: "/a/b/c"}, "in-c.txt", "c")

		deleted, err := f.catalog.Delete(ctx, f.alice, "Directory", []string{a.ID})
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if len(deleted) != 1 || deleted[0].DisplayName != "in-b.txt" {
			t.Errorf("Delete() removed %v, want only in-b.txt", deleted)
		}

		if _, err := f.catalog.ResolveDirectory(ctx, f.alice, b.ID); !errors.Is(err, drive.ErrNotFound) {
			t.Errorf("ResolveDirectory(b) error = %v, want NotFound", err)
		}
		grandchild, err := f.catalog.ResolveDirectory(ctx, f.alice, c.ID)
		if err != nil {
			t.Fatalf("ResolveDirectory(c) error = %v", err)
		}
		if !grandchild.IsRoot() {
			t.Errorf("grandchild parent = %v, want root", *grandchild.ParentID)
		}
		if got := f.read(t, f.alice, kept.ID); got != "c" {
			t.Errorf("content = %q, want %q", got, "c")
		}
	})

	t.Run("file delete keeps other files", func(t *testing.T) {
		f := newFixture(t)
		a := f.upload(t, f.alice, docs, "a.txt", "a")
		f.upload(t, f.alice, docs, "b.txt", "b")

		deleted, err := f.catalog.Delete(ctx, f.alice, "file", []string{a.ID, " ", a.ID})
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if len(deleted) != 1 {
			t.Errorf("Delete() removed %d files, want 1", len(deleted))
		}
		files, _ := f.catalog.List(ctx, f.alice)
		if len(files) != 1 || files[0].DisplayName != "b.txt" {
			t.Errorf("List() = %v, want only b.txt", files)
		}
	})

	t.Run("blob failures do not fail the delete", func(t *testing.T) {
		f := newFixture(t)
		a := f.upload(t, f.alice, docs, "a.txt", "a")
		f.blobs.FailDelete(true)

		if _, err := f.catalog.Delete(ctx, f.alice, "file", []string{a.ID}); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if n := f.logger.Count("WARN", "failed to delete blob"); n != 1 {
			t.Errorf("logged %d blob delete failures, want 1", n)
		}
	})

	t.Run("rejects bad input", func(t *testing.T) {
		f := newFixture(t)
		a := f.upload(t, f.alice, docs, "a.txt", "a")

		tests := []struct {
			name string
			kind string
			ids  []string
			want error
		}{
			{"unknown kind", "folder", []string{a.ID}, drive.ErrInvalidRequest},
			{"no ids", "file", nil, drive.ErrInvalidRequest},
			{"blank ids", "file", []string{"", "  "}, drive.ErrInvalidRequest},
			{"unknown id", "file", []string{"missing"}, drive.ErrNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.catalog.Delete(ctx, f.alice, tt.kind, tt.ids)
				if !errors.Is(err, tt.want) {
					t.Errorf("Delete() error = %v, want %v", err, tt.want)
				}
			})
		}
	})

	t.Run("cannot delete another owner's file", func(t *testing.T) {
		f := newFixture(t)
		a := f.upload(t, f.alice, docs, "a.txt", "a")

		_, err := f.catalog.Delete(ctx, f.bob, "file", []string{a.ID})
		if !errors.Is(err, drive.ErrNotFound) {
			t.Errorf("Delete() error = %v, want NotFound", err)
		}
		if _, err := f.catalog.Download(ctx, f.alice, a.ID); err != nil {
			t.Errorf("Download() error = %v after foreign delete", err)
		}
	})
}

func TestCatalog_Move(t *testing.T) {
	ctx := context.Background()

	t.Run("directory under its own descendant is rejected", func(t *testing.T) {
		f := newFixture(t)
		a, _, c := f.tree(t)

		err := f.catalog.Move(ctx, f.alice, "directory", a.ID, c.ID)
		if !errors.Is(err, drive.ErrInvalidRequest) {
			t.Errorf("Move() error = %v, want InvalidRequest", err)
		}
		err = f.catalog.Move(ctx, f.alice, "directory", a.ID, a.ID)
		if !errors.Is(err, drive.ErrInvalidRequest) {
			t.Errorf("Move(self) error = %v, want InvalidRequest", err)
		}

		got, err := f.catalog.ResolveDirectory(ctx, f.alice, a.ID)
		if err != nil {
			t.Fatalf("ResolveDirectory() error = %v", err)
		}
		if !got.IsRoot() {
			t.Error("rejected move changed the parent")
		}
	})

	t.Run("directory without destination becomes a root", func(t *testing.T) {
		f := newFixture(t)
		_, b, c := f.tree(t)

		if err := f.catalog.Move(ctx, f.alice, "directory", c.ID, ""); err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		got, _ := f.catalog.ResolveDirectory(ctx, f.alice, c.ID)
		if !got.IsRoot() {
			t.Errorf("parent = %v, want root", *got.ParentID)
		}

		// And back again.
		if err := f.catalog.Move(ctx, f.alice, "directory", c.ID, b.ID); err != nil {
			t.Fatalf("Move() back error = %v", err)
		}
		got, _ = f.catalog.ResolveDirectory(ctx, f.alice, c.ID)
		if got.ParentID == nil || *got.ParentID != b.ID {
			t.Errorf("parent = %v, want %s", got.ParentID, b.ID)
		}
	})

	t.Run("file moves between directories", func(t *testing.T) {
		f := newFixture(t)
		file := f.upload(t, f.alice, docs, "a.txt", "a")
		dest, err := f.catalog.CreateDirectory(ctx, f.alice, "archive", "/archive", nil)
		if err != nil {
			t.Fatalf("CreateDirectory() error = %v", err)
		}

		if err := f.catalog.Move(ctx, f.alice, "file", file.ID, dest.ID); err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		listing, err := f.catalog.ListDirectoryFiles(ctx, f.alice, dest.ID)
		if err != nil {
			t.Fatalf("ListDirectoryFiles() error = %v", err)
		}
		if len(listing.Files) != 1 || listing.Files[0].ID != file.ID {
			t.Errorf("Files = %v, want a.txt", listing.Files)
		}
	})

	t.Run("file needs a destination", func(t *testing.T) {
		f := newFixture(t)
		file := f.upload(t, f.alice, docs, "a.txt", "a")

		err := f.catalog.Move(ctx, f.alice, "file", file.ID, "")
		if !errors.Is(err, drive.ErrInvalidRequest) {
			t.Errorf("Move() error = %v, want InvalidRequest", err)
		}
	})

	t.Run("name clash in destination is a conflict", func(t *testing.T) {
		f := newFixture(t)
		file := f.upload(t, f.alice, docs, "a.txt", "a")
		f.upload(t, f.alice, drive.DirectoryRef{Name: "archive", Path: "/archive"}, "a.txt", "old")
		dirs, _ := f.catalog.ListDirectories(ctx, f.alice)

		var archive string
		for _, d := range dirs {
			if d.FullPath == "/archive" {
				archive = d.ID
			}
		}
		err := f.catalog.Move(ctx, f.alice, "file", file.ID, archive)
		if !errors.Is(err, drive.ErrConflict) {
			t.Errorf("Move() error = %v, want Conflict", err)
		}
	})

	t.Run("destination of another owner is not found", func(t *testing.T) {
		f := newFixture(t)
		file := f.upload(t, f.alice, docs, "a.txt", "a")
		foreign, err := f.catalog.CreateDirectory(ctx, f.bob, "inbox", "/inbox", nil)
		if err != nil {
			t.Fatalf("CreateDirectory() error = %v", err)
		}

		err = f.catalog.Move(ctx, f.alice, "file", file.ID, foreign.ID)
		if !errors.Is(err, drive.ErrNotFound) {
			t.Errorf("Move() error = %v, want NotFound", err)
		}
	})
}
