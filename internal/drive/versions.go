package drive

import (
	"context"

	"drive-go/internal/model"
)

// ListVersions returns every revision of one of owner's files, newest first.
func (c *Catalog) ListVersions(ctx context.Context, owner Principal, fileID string) ([]*model.Revision, error) {
	const op = "ListVersions"
	if _, err := c.ownedFile(ctx, op, owner, fileID); err != nil {
		return nil, err
	}
	revs, err := c.database.ListRevisions(ctx, fileID)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	if len(revs) == 0 {
		return nil, Errorf(op, NotFound, "no versions for file %s", fileID)
	}
	return revs, nil
}

// GetVersion returns one revision of one of owner's files.
func (c *Catalog) GetVersion(ctx context.Context, owner Principal, fileID, versionID string) (*model.Revision, error) {
	const op = "GetVersion"
	if _, err := c.ownedFile(ctx, op, owner, fileID); err != nil {
		return nil, err
	}
	rev, err := c.database.FindRevision(ctx, fileID, versionID)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	if rev == nil {
		return nil, Errorf(op, NotFound, "version %s of file %s", versionID, fileID)
	}
	return rev, nil
}

// Restore makes versionID the priority revision of fileID. No revision is
// created or removed, so restoring the same version again changes nothing.
func (c *Catalog) Restore(ctx context.Context, owner Principal, fileID, versionID string) (*model.LogicalFile, error) {
	const op = "Restore"
	if versionID == "" {
		return nil, Errorf(op, InvalidRequest, "version id is required")
	}
	file, err := c.ownedFile(ctx, op, owner, fileID)
	if err != nil {
		return nil, err
	}
	if file.Priority.ID == versionID {
		return file, nil
	}
	if err := c.database.PromoteRevision(ctx, owner.UserID, fileID, versionID); err != nil {
		return nil, E(op, Internal, err)
	}

	restored, err := c.database.FindFile(ctx, owner.UserID, fileID)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	if restored == nil {
		return nil, Errorf(op, NotFound, "file %s", fileID)
	}
	c.logger.Info("version restored", "file_id", fileID, "version", restored.Priority.VersionNumber)
	return restored, nil
}
