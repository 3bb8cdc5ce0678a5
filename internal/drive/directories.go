package drive

import (
	"context"

	"drive-go/internal/model"
)

// ensureDirectory validates ref and returns owner's directory at ref.Path,
// creating it when missing.
func (c *Catalog) ensureDirectory(ctx context.Context, owner Principal, ref DirectoryRef) (*model.Directory, error) {
	if err := ValidateDirectoryPath(ref.Name, ref.Path); err != nil {
		return nil, err
	}
	dir, err := c.database.EnsureDirectory(ctx, &model.Directory{
		ID:        c.idgen.New(),
		OwnerID:   owner.UserID,
		Name:      ref.Name,
		FullPath:  ref.Path,
		CreatedAt: c.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	return dir, nil
}

// EnsureDirectory returns owner's directory named ref, creating it if absent.
func (c *Catalog) EnsureDirectory(ctx context.Context, owner Principal, ref DirectoryRef) (*model.Directory, error) {
	dir, err := c.ensureDirectory(ctx, owner, ref)
	if err != nil {
		return nil, E("EnsureDirectory", Internal, err)
	}
	return dir, nil
}

// CreateDirectory creates a directory for owner. parentID, when set, must
// name one of owner's directories. A directory with the same path is a
// Conflict.
func (c *Catalog) CreateDirectory(ctx context.Context, owner Principal, name, fullPath string, parentID *string) (*model.Directory, error) {
	const op = "CreateDirectory"
	if err := ValidateDirectoryPath(name, fullPath); err != nil {
		return nil, E(op, Internal, err)
	}
	if parentID != nil && *parentID == "" {
		parentID = nil
	}
	dir := &model.Directory{
		ID:        c.idgen.New(),
		OwnerID:   owner.UserID,
		ParentID:  parentID,
		Name:      name,
		FullPath:  fullPath,
		CreatedAt: c.clock.Now(),
	}
	if err := c.database.CreateDirectory(ctx, dir); err != nil {
		return nil, E(op, Internal, err)
	}
	c.logger.Info("directory created", "id", dir.ID, "path", dir.FullPath)
	return dir, nil
}

// ResolveDirectory returns one of owner's directories by id.
func (c *Catalog) ResolveDirectory(ctx context.Context, owner Principal, id string) (*model.Directory, error) {
	const op = "ResolveDirectory"
	if id == "" {
		return nil, Errorf(op, InvalidRequest, "directory id is required")
	}
	dir, err := c.database.FindDirectoryByID(ctx, owner.UserID, id)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	if dir == nil {
		return nil, Errorf(op, NotFound, "directory %s", id)
	}
	return dir, nil
}

// ListDirectories returns all of owner's directories ordered by path.
func (c *Catalog) ListDirectories(ctx context.Context, owner Principal) ([]*model.Directory, error) {
	dirs, err := c.database.ListDirectories(ctx, owner.UserID)
	if err != nil {
		return nil, E("ListDirectories", Internal, err)
	}
	return dirs, nil
}

// DirectoryListing is the content of one directory.
type DirectoryListing struct {
	Directory *model.Directory
	Children  []*model.Directory
	Files     []*model.LogicalFile
}

// ListDirectoryFiles returns the files and direct child directories of one
// of owner's directories.
func (c *Catalog) ListDirectoryFiles(ctx context.Context, owner Principal, id string) (*DirectoryListing, error) {
	const op = "ListDirectoryFiles"
	dir, err := c.ResolveDirectory(ctx, owner, id)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	children, err := c.database.ListChildDirectories(ctx, owner.UserID, dir.ID)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	files, err := c.database.ListFilesInDirectory(ctx, owner.UserID, dir.ID)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	return &DirectoryListing{Directory: dir, Children: children, Files: files}, nil
}
