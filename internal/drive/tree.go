package drive

import (
	"context"
	"strings"

	"drive-go/internal/model"
)

// DirectoryRef names the directory an upload targets.
type DirectoryRef struct {
	Name string
	Path string
}

// lastSegment returns the part of p after its final "/".
// A trailing slash therefore yields an empty segment.
func lastSegment(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// ParentPath returns the path of the directory that would contain fullPath,
// or "" when fullPath has no parent segment.
func ParentPath(fullPath string) string {
	i := strings.LastIndex(fullPath, "/")
	if i <= 0 {
		return ""
	}
	return fullPath[:i]
}

// ValidateDirectoryPath checks that name is the last "/" segment of fullPath.
// It runs on every directory create and every upload.
func ValidateDirectoryPath(name, fullPath string) error {
	if name == "" || fullPath == "" {
		return Errorf("ValidateDirectoryPath", InvalidRequest, "directory name and path are required")
	}
	if strings.Contains(name, "/") {
		return Errorf("ValidateDirectoryPath", PathMismatch, "name %q contains a separator", name)
	}
	if seg := lastSegment(fullPath); seg != name {
		return Errorf("ValidateDirectoryPath", PathMismatch, "name %q does not match last segment %q of %q", name, seg, fullPath)
	}
	return nil
}

// ParentLookup returns the parent id of directory id, or nil for a root.
// found is false when the directory does not exist.
type ParentLookup func(ctx context.Context, id string) (parentID *string, found bool, err error)

// CheckMove rejects a move of dirID under newParentID when newParentID is
// dirID itself or one of its descendants. It walks the ancestor chain of the
// destination, so it must run inside the same transaction as the update.
func CheckMove(ctx context.Context, dirID string, newParentID *string, parentOf ParentLookup) error {
	if newParentID == nil {
		return nil
	}
	seen := map[string]bool{}
	cur := *newParentID
	for {
		if cur == dirID {
			return Errorf("Move", InvalidRequest, "cannot move directory %s into itself or a descendant", dirID)
		}
		if seen[cur] {
			// Existing data already contains a loop; refuse to extend it.
			return Errorf("Move", Internal, "directory parent chain loops at %s", cur)
		}
		seen[cur] = true

		parent, found, err := parentOf(ctx, cur)
		if err != nil {
			return err
		}
		if !found {
			return Errorf("Move", NotFound, "directory %s", cur)
		}
		if parent == nil {
			return nil
		}
		cur = *parent
	}
}

// CascadeClosure returns ids followed by every directory in children whose
// parent is one of ids, without duplicates. Only one level of children is
// merged; deeper descendants are not part of the closure.
func CascadeClosure(ids []string, children []*model.Directory) []string {
	in := make(map[string]bool, len(ids))
	closure := make([]string, 0, len(ids)+len(children))
	add := func(id string) {
		if !in[id] {
			in[id] = true
			closure = append(closure, id)
		}
	}
	for _, id := range ids {
		add(id)
	}
	roots := make(map[string]bool, len(ids))
	for _, id := range ids {
		roots[id] = true
	}
	for _, d := range children {
		if d.ParentID != nil && roots[*d.ParentID] {
			add(d.ID)
		}
	}
	return closure
}

// normalizeIDs trims ids and drops blanks and duplicates, keeping order.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
