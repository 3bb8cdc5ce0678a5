package drive

import (
	"context"
	"io"
)

// BlobStore holds the raw bytes of revisions. Paths are opaque keys chosen
// by the catalog; they never contain user-controlled segments.
// All operations stream so large payloads are never buffered by the caller.
type BlobStore interface {
	// Save stores everything read from r under path and returns the path
	// the blob can be retrieved with.
	Save(ctx context.Context, path string, r io.Reader) (string, error)

	// Get writes the blob stored under path to w.
	Get(ctx context.Context, path string, w io.Writer) error

	// Delete removes the blob stored under path.
	Delete(ctx context.Context, path string) error

	// Exists reports whether a blob is stored under path.
	Exists(ctx context.Context, path string) (bool, error)

	// ValidateSetup verifies that the store is reachable and writable.
	ValidateSetup(ctx context.Context) error
}
