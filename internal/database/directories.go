package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"drive-go/internal/database/sqlc"
	"drive-go/internal/drive"
	"drive-go/internal/model"
)

// Directory operations

func (s *SQLiteDatabase) EnsureDirectory(ctx context.Context, candidate *model.Directory) (*model.Directory, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	existing, err := qtx.GetDirectoryByPath(ctx, sqlc.GetDirectoryByPathParams{
		OwnerID:  candidate.OwnerID,
		FullPath: candidate.FullPath,
	})
	if err == nil {
		// Already there; nothing to write.
		return toDirectory(existing), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("finding directory: %w", err)
	}

	// Attach to the directory at the parent path, if the owner has one.
	parentID := candidate.ParentID
	if parentID == nil {
		if pp := drive.ParentPath(candidate.FullPath); pp != "" {
			parent, err := qtx.GetDirectoryByPath(ctx, sqlc.GetDirectoryByPathParams{
				OwnerID:  candidate.OwnerID,
				FullPath: pp,
			})
			switch {
			case err == nil:
				parentID = &parent.ID
			case !errors.Is(err, sql.ErrNoRows):
				return nil, fmt.Errorf("finding parent directory: %w", err)
			}
		}
	}

	created, err := qtx.InsertDirectory(ctx, sqlc.InsertDirectoryParams{
		ID:        candidate.ID,
		OwnerID:   candidate.OwnerID,
		ParentID:  nullString(parentID),
		Name:      candidate.Name,
		FullPath:  candidate.FullPath,
		CreatedAt: candidate.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("inserting directory: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return toDirectory(created), nil
}

func (s *SQLiteDatabase) CreateDirectory(ctx context.Context, dir *model.Directory) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	if dir.ParentID != nil {
		_, err := qtx.GetDirectoryByID(ctx, sqlc.GetDirectoryByIDParams{ID: *dir.ParentID, OwnerID: dir.OwnerID})
		if errors.Is(err, sql.ErrNoRows) {
			return drive.Errorf("CreateDirectory", drive.NotFound, "parent directory %s", *dir.ParentID)
		}
		if err != nil {
			return fmt.Errorf("finding parent directory: %w", err)
		}
	}

	_, err = qtx.InsertDirectory(ctx, sqlc.InsertDirectoryParams{
		ID:        dir.ID,
		OwnerID:   dir.OwnerID,
		ParentID:  nullString(dir.ParentID),
		Name:      dir.Name,
		FullPath:  dir.FullPath,
		CreatedAt: dir.CreatedAt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return drive.Errorf("CreateDirectory", drive.Conflict, "directory %s already exists", dir.FullPath)
		}
		if isForeignKeyViolation(err) {
			return drive.Errorf("CreateDirectory", drive.NotFound, "owner %s", dir.OwnerID)
		}
		return fmt.Errorf("inserting directory: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) FindDirectoryByID(ctx context.Context, ownerID, id string) (*model.Directory, error) {
	dir, err := s.queries.GetDirectoryByID(ctx, sqlc.GetDirectoryByIDParams{ID: id, OwnerID: ownerID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding directory by id: %w", err)
	}
	return toDirectory(dir), nil
}

func (s *SQLiteDatabase) ListDirectories(ctx context.Context, ownerID string) ([]*model.Directory, error) {
	rows, err := s.queries.ListDirectoriesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing directories: %w", err)
	}
	return toDirectories(rows), nil
}

func (s *SQLiteDatabase) ListChildDirectories(ctx context.Context, ownerID, parentID string) ([]*model.Directory, error) {
	rows, err := s.queries.ListChildDirectories(ctx, sqlc.ListChildDirectoriesParams{
		OwnerID:  ownerID,
		ParentID: sql.NullString{String: parentID, Valid: true},
	})
	if err != nil {
		return nil, fmt.Errorf("listing child directories: %w", err)
	}
	return toDirectories(rows), nil
}

func toDirectories(rows []sqlc.Directory) []*model.Directory {
	dirs := make([]*model.Directory, len(rows))
	for i := range rows {
		dirs[i] = toDirectory(rows[i])
	}
	return dirs
}

// MoveDirectory re-parents a directory after checking, in the same
// transaction, that the destination is not inside the directory.
func (s *SQLiteDatabase) MoveDirectory(ctx context.Context, ownerID, id string, newParentID *string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	parentOf := func(ctx context.Context, dirID string) (*string, bool, error) {
		parent, err := qtx.GetDirectoryParent(ctx, sqlc.GetDirectoryParentParams{ID: dirID, OwnerID: ownerID})
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("loading parent of %s: %w", dirID, err)
		}
		return stringPtr(parent), true, nil
	}

	if _, found, err := parentOf(ctx, id); err != nil {
		return err
	} else if !found {
		return drive.Errorf("MoveDirectory", drive.NotFound, "directory %s", id)
	}

	if err := drive.CheckMove(ctx, id, newParentID, parentOf); err != nil {
		return err
	}

	n, err := qtx.UpdateDirectoryParent(ctx, sqlc.UpdateDirectoryParentParams{
		ParentID: nullString(newParentID),
		ID:       id,
		OwnerID:  ownerID,
	})
	if err != nil {
		return fmt.Errorf("updating directory parent: %w", err)
	}
	if n == 0 {
		return drive.Errorf("MoveDirectory", drive.NotFound, "directory %s", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteDirectories removes the closure of ids and everything inside it.
// Dependent rows go first: metadata, shares, permissions, revisions, files,
// then the directories. Directories below the closure lose their parent
// through ON DELETE SET NULL and become roots.
func (s *SQLiteDatabase) DeleteDirectories(ctx context.Context, ownerID string, ids []string) ([]*model.DeletedFile, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	var roots []string
	var children []*model.Directory
	for _, id := range ids {
		_, err := qtx.GetDirectoryByID(ctx, sqlc.GetDirectoryByIDParams{ID: id, OwnerID: ownerID})
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("finding directory %s: %w", id, err)
		}
		roots = append(roots, id)

		kids, err := qtx.ListChildDirectories(ctx, sqlc.ListChildDirectoriesParams{
			OwnerID:  ownerID,
			ParentID: sql.NullString{String: id, Valid: true},
		})
		if err != nil {
			return nil, fmt.Errorf("listing children of %s: %w", id, err)
		}
		children = append(children, toDirectories(kids)...)
	}
	if len(roots) == 0 {
		return nil, drive.Errorf("DeleteDirectories", drive.NotFound, "no matching directories")
	}

	closure := drive.CascadeClosure(roots, children)

	deleted := []*model.DeletedFile{}
	for _, dirID := range closure {
		heads, err := qtx.ListFileHeadsByDirectory(ctx, sqlc.ListFileHeadsByDirectoryParams{
			OwnerID:     ownerID,
			DirectoryID: dirID,
		})
		if err != nil {
			return nil, fmt.Errorf("listing files of %s: %w", dirID, err)
		}
		for _, h := range heads {
			df, err := deleteFileTx(ctx, qtx, ownerID, h.ID, h.DisplayName)
			if err != nil {
				return nil, err
			}
			deleted = append(deleted, df)
		}
	}

	for _, dirID := range closure {
		if _, err := qtx.DeleteDirectory(ctx, sqlc.DeleteDirectoryParams{ID: dirID, OwnerID: ownerID}); err != nil {
			return nil, fmt.Errorf("deleting directory %s: %w", dirID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return deleted, nil
}
