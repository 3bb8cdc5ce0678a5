package drive

import (
	"context"

	"drive-go/internal/model"
)

// AddMetadata appends key/value entries to one of owner's files. Keys may
// repeat; an existing key is never overwritten.
func (c *Catalog) AddMetadata(ctx context.Context, owner Principal, fileID string, entries []model.MetadataEntry) ([]*model.MetadataEntry, error) {
	const op = "AddMetadata"
	if len(entries) == 0 {
		return nil, Errorf(op, InvalidRequest, "no metadata entries")
	}
	for _, e := range entries {
		if e.Key == "" {
			return nil, Errorf(op, InvalidRequest, "metadata key is required")
		}
	}
	if _, err := c.ownedFile(ctx, op, owner, fileID); err != nil {
		return nil, err
	}
	added, err := c.database.AddMetadata(ctx, fileID, entries)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	return added, nil
}

// ListMetadata returns the entries of one of owner's files in insertion order.
func (c *Catalog) ListMetadata(ctx context.Context, owner Principal, fileID string) ([]*model.MetadataEntry, error) {
	const op = "ListMetadata"
	if _, err := c.ownedFile(ctx, op, owner, fileID); err != nil {
		return nil, err
	}
	entries, err := c.database.ListMetadata(ctx, fileID)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	return entries, nil
}
