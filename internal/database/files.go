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

// Logical file and revision operations

// RecordUpload registers one uploaded payload in a single transaction:
//
// 1. Finds the logical file by (owner, directory, display name), creating it
// with a Private permission when absent.
// 2. Allocates the next version number.
// 3. Inserts the revision and points the file at it.
//
// The write lock is held from the start, so two uploads to the same name
// cannot allocate the same version number.
func (s *SQLiteDatabase) RecordUpload(ctx context.Context, rec *drive.UploadRecord) (*model.LogicalFile, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	var fileID string
	file, err := qtx.GetFileByName(ctx, sqlc.GetFileByNameParams{
		OwnerID:     rec.OwnerID,
		DirectoryID: rec.DirectoryID,
		DisplayName: rec.DisplayName,
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		fileID = rec.FileID
		err = qtx.InsertFile(ctx, sqlc.InsertFileParams{
			ID:                 fileID,
			OwnerID:            rec.OwnerID,
			DirectoryID:        rec.DirectoryID,
			DisplayName:        rec.DisplayName,
			CreatedAt:          rec.Revision.UploadedAt,
			PriorityRevisionID: rec.Revision.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("creating file: %w", err)
		}
		if err := qtx.InsertDefaultPermission(ctx, fileID); err != nil {
			return nil, fmt.Errorf("creating default permission: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("finding file: %w", err)
	default:
		fileID = file.ID
	}

	current, err := qtx.GetMaxVersionNumber(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("reading latest version: %w", err)
	}

	_, err = qtx.InsertRevision(ctx, sqlc.InsertRevisionParams{
		ID:            rec.Revision.ID,
		FileID:        fileID,
		VersionNumber: drive.NextVersionNumber(current),
		StoragePath:   rec.Revision.StoragePath,
		Size:          rec.Revision.Size,
		MimeType:      rec.Revision.MimeType,
		UploadedAt:    rec.Revision.UploadedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("creating revision: %w", err)
	}

	_, err = qtx.UpdateFilePriority(ctx, sqlc.UpdateFilePriorityParams{
		PriorityRevisionID: rec.Revision.ID,
		ID:                 fileID,
		OwnerID:            rec.OwnerID,
	})
	if err != nil {
		return nil, fmt.Errorf("updating priority revision: %w", err)
	}

	head, err := qtx.GetFileHead(ctx, sqlc.GetFileHeadParams{ID: fileID, OwnerID: rec.OwnerID})
	if err != nil {
		return nil, fmt.Errorf("loading file: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return toLogicalFile(head), nil
}

func (s *SQLiteDatabase) FindFile(ctx context.Context, ownerID, fileID string) (*model.LogicalFile, error) {
	head, err := s.queries.GetFileHead(ctx, sqlc.GetFileHeadParams{ID: fileID, OwnerID: ownerID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding file: %w", err)
	}
	return toLogicalFile(head), nil
}

func (s *SQLiteDatabase) FindFileByID(ctx context.Context, fileID string) (*model.LogicalFile, error) {
	head, err := s.queries.GetFileHeadByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding file by id: %w", err)
	}
	return toLogicalFile(head), nil
}

func (s *SQLiteDatabase) ListFiles(ctx context.Context, ownerID string) ([]*model.LogicalFile, error) {
	heads, err := s.queries.ListFileHeadsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	return toLogicalFiles(heads), nil
}

func (s *SQLiteDatabase) ListFilesInDirectory(ctx context.Context, ownerID, directoryID string) ([]*model.LogicalFile, error) {
	heads, err := s.queries.ListFileHeadsByDirectory(ctx, sqlc.ListFileHeadsByDirectoryParams{
		OwnerID:     ownerID,
		DirectoryID: directoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("listing files in directory: %w", err)
	}
	return toLogicalFiles(heads), nil
}

func (s *SQLiteDatabase) ListRevisions(ctx context.Context, fileID string) ([]*model.Revision, error) {
	rows, err := s.queries.ListRevisionsByFile(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("listing revisions: %w", err)
	}
	revs := make([]*model.Revision, len(rows))
	for i := range rows {
		revs[i] = toRevision(rows[i])
	}
	return revs, nil
}

func (s *SQLiteDatabase) FindRevision(ctx context.Context, fileID, revisionID string) (*model.Revision, error) {
	rev, err := s.queries.GetRevision(ctx, sqlc.GetRevisionParams{ID: revisionID, FileID: fileID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding revision: %w", err)
	}
	return toRevision(rev), nil
}

// PromoteRevision repoints the file's priority revision. A single UPDATE
// does the flip, so there is never a moment with zero or two priorities.
func (s *SQLiteDatabase) PromoteRevision(ctx context.Context, ownerID, fileID, revisionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	if _, err := qtx.GetRevision(ctx, sqlc.GetRevisionParams{ID: revisionID, FileID: fileID}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return drive.Errorf("PromoteRevision", drive.NotFound, "version %s of file %s", revisionID, fileID)
		}
		return fmt.Errorf("finding revision: %w", err)
	}

	n, err := qtx.UpdateFilePriority(ctx, sqlc.UpdateFilePriorityParams{
		PriorityRevisionID: revisionID,
		ID:                 fileID,
		OwnerID:            ownerID,
	})
	if err != nil {
		return fmt.Errorf("updating priority revision: %w", err)
	}
	if n == 0 {
		return drive.Errorf("PromoteRevision", drive.NotFound, "file %s", fileID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) IncrementDownloadCount(ctx context.Context, fileID string) error {
	if err := s.queries.IncrementDownloadCount(ctx, fileID); err != nil {
		return fmt.Errorf("incrementing download count: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) MoveFile(ctx context.Context, ownerID, fileID, directoryID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	if _, err := qtx.GetDirectoryByID(ctx, sqlc.GetDirectoryByIDParams{ID: directoryID, OwnerID: ownerID}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return drive.Errorf("MoveFile", drive.NotFound, "directory %s", directoryID)
		}
		return fmt.Errorf("finding directory: %w", err)
	}

	n, err := qtx.UpdateFileDirectory(ctx, sqlc.UpdateFileDirectoryParams{
		DirectoryID: directoryID,
		ID:          fileID,
		OwnerID:     ownerID,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return drive.Errorf("MoveFile", drive.Conflict, "destination already has a file with that name")
		}
		return fmt.Errorf("updating file directory: %w", err)
	}
	if n == 0 {
		return drive.Errorf("MoveFile", drive.NotFound, "file %s", fileID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) DeleteFiles(ctx context.Context, ownerID string, ids []string) ([]*model.DeletedFile, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	deleted := []*model.DeletedFile{}
	for _, id := range ids {
		head, err := qtx.GetFileHead(ctx, sqlc.GetFileHeadParams{ID: id, OwnerID: ownerID})
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("finding file %s: %w", id, err)
		}
		df, err := deleteFileTx(ctx, qtx, ownerID, head.ID, head.DisplayName)
		if err != nil {
			return nil, err
		}
		deleted = append(deleted, df)
	}
	if len(deleted) == 0 {
		return nil, drive.Errorf("DeleteFiles", drive.NotFound, "no matching files")
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return deleted, nil
}

// deleteFileTx removes one logical file and every row that depends on it.
// It must run inside a transaction.
func deleteFileTx(ctx context.Context, qtx *sqlc.Queries, ownerID, fileID, displayName string) (*model.DeletedFile, error) {
	revs, err := qtx.ListRevisionsByFile(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("listing revisions of %s: %w", fileID, err)
	}
	df := &model.DeletedFile{FileID: fileID, DisplayName: displayName}
	for _, r := range revs {
		df.StoragePaths = append(df.StoragePaths, r.StoragePath)
	}

	if err := qtx.DeleteMetadataByFile(ctx, fileID); err != nil {
		return nil, fmt.Errorf("deleting metadata of %s: %w", fileID, err)
	}
	if err := qtx.DeletePermissionShares(ctx, fileID); err != nil {
		return nil, fmt.Errorf("deleting shares of %s: %w", fileID, err)
	}
	if err := qtx.DeletePermission(ctx, fileID); err != nil {
		return nil, fmt.Errorf("deleting permission of %s: %w", fileID, err)
	}
	if err := qtx.DeleteRevisionsByFile(ctx, fileID); err != nil {
		return nil, fmt.Errorf("deleting revisions of %s: %w", fileID, err)
	}
	if _, err := qtx.DeleteFile(ctx, sqlc.DeleteFileParams{ID: fileID, OwnerID: ownerID}); err != nil {
		return nil, fmt.Errorf("deleting file %s: %w", fileID, err)
	}
	return df, nil
}
