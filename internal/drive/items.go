package drive

import (
	"context"
	"strings"

	"drive-go/internal/model"
)

// ItemKind selects what Delete and Move act on.
type ItemKind string

const (
	ItemFile      ItemKind = "file"
	ItemDirectory ItemKind = "directory"
)

// ParseItemKind accepts "file" or "directory" in any case.
func ParseItemKind(s string) (ItemKind, error) {
	switch k := ItemKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ItemFile, ItemDirectory:
		return k, nil
	}
	return "", Errorf("ParseItemKind", InvalidRequest, "item type must be file or directory, got %q", s)
}

// Delete removes owner's files or directories. Deleting directories also
// removes their direct child directories and every file in any of them.
// All records go in one transaction; the blobs of the removed revisions are
// deleted afterwards, and failures there are only logged.
func (c *Catalog) Delete(ctx context.Context, owner Principal, kind string, ids []string) ([]*model.DeletedFile, error) {
	const op = "Delete"
	k, err := ParseItemKind(kind)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return nil, Errorf(op, InvalidRequest, "ids must be a non-empty list")
	}

	var deleted []*model.DeletedFile
	switch k {
	case ItemFile:
		deleted, err = c.database.DeleteFiles(ctx, owner.UserID, ids)
	case ItemDirectory:
		deleted, err = c.database.DeleteDirectories(ctx, owner.UserID, ids)
	}
	if err != nil {
		return nil, E(op, Internal, err)
	}

	blobs := 0
	for _, f := range deleted {
		for _, p := range f.StoragePaths {
			c.deleteBlob(ctx, p)
			blobs++
		}
	}
	c.logger.Info("items deleted", "kind", string(k), "ids", len(ids), "files", len(deleted), "blobs", blobs)
	return deleted, nil
}

// Move puts one of owner's files or directories under destID. A directory
// moved with an empty destID becomes a root; a file always needs a
// destination. Moving a directory under itself or a descendant is an
// InvalidRequest.
func (c *Catalog) Move(ctx context.Context, owner Principal, kind, itemID, destID string) error {
	const op = "Move"
	k, err := ParseItemKind(kind)
	if err != nil {
		return E(op, Internal, err)
	}
	if itemID == "" {
		return Errorf(op, InvalidRequest, "item id is required")
	}

	if destID != "" {
		if _, err := c.ResolveDirectory(ctx, owner, destID); err != nil {
			return E(op, Internal, err)
		}
	}

	switch k {
	case ItemFile:
		if destID == "" {
			return Errorf(op, InvalidRequest, "destination directory is required")
		}
		if _, err := c.ownedFile(ctx, op, owner, itemID); err != nil {
			return err
		}
		err = c.database.MoveFile(ctx, owner.UserID, itemID, destID)
	case ItemDirectory:
		if _, err := c.ResolveDirectory(ctx, owner, itemID); err != nil {
			return E(op, Internal, err)
		}
		var parent *string
		if destID != "" {
			parent = &destID
		}
		err = c.database.MoveDirectory(ctx, owner.UserID, itemID, parent)
	}
	if err != nil {
		return E(op, Internal, err)
	}
	c.logger.Info("item moved", "kind", string(k), "id", itemID, "dest", destID)
	return nil
}
