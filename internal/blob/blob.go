// Package blob provides the stores that hold revision payloads and catalog
// snapshots: in memory, on the local filesystem, or in an S3 bucket.
package blob

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotFound is returned by Get when nothing is stored under a path.
var ErrNotFound = errors.New("blob not found")

// cleanKey validates a blob path. Keys are slash separated, relative and may
// not climb out of the store with "..".
func cleanKey(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("empty blob path")
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return "", fmt.Errorf("invalid blob path %q", p)
	}
	c := path.Clean(p)
	if c == "." || c == ".." || strings.HasPrefix(c, "../") {
		return "", fmt.Errorf("invalid blob path %q", p)
	}
	return c, nil
}
