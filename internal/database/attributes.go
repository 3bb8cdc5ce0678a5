package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"drive-go/internal/database/sqlc"
	"drive-go/internal/model"
)

// Search operations

func (s *SQLiteDatabase) SearchFilesByName(ctx context.Context, ownerID, keyword string) ([]*model.LogicalFile, error) {
	heads, err := s.queries.SearchFileHeadsByName(ctx, sqlc.SearchFileHeadsByNameParams{
		OwnerID: ownerID,
		Keyword: keyword,
	})
	if err != nil {
		return nil, fmt.Errorf("searching files by name: %w", err)
	}
	return toLogicalFiles(heads), nil
}

func (s *SQLiteDatabase) SearchFilesByMetadata(ctx context.Context, ownerID, keyword string) ([]*model.SearchResult, error) {
	rows, err := s.queries.SearchFileHeadsByMetadata(ctx, sqlc.SearchFileHeadsByMetadataParams{
		OwnerID: ownerID,
		Keyword: keyword,
	})
	if err != nil {
		return nil, fmt.Errorf("searching files by metadata: %w", err)
	}
	results := make([]*model.SearchResult, len(rows))
	for i := range rows {
		results[i] = toMetadataMatch(rows[i])
	}
	return results, nil
}

// Metadata operations

func (s *SQLiteDatabase) AddMetadata(ctx context.Context, fileID string, entries []model.MetadataEntry) ([]*model.MetadataEntry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	added := make([]*model.MetadataEntry, 0, len(entries))
	for _, e := range entries {
		row, err := qtx.InsertMetadata(ctx, sqlc.InsertMetadataParams{
			FileID: fileID,
			Key:    e.Key,
			Value:  e.Value,
		})
		if err != nil {
			return nil, fmt.Errorf("inserting metadata %q: %w", e.Key, err)
		}
		added = append(added, toMetadataEntry(row))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return added, nil
}

func (s *SQLiteDatabase) ListMetadata(ctx context.Context, fileID string) ([]*model.MetadataEntry, error) {
	rows, err := s.queries.ListMetadataByFile(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("listing metadata: %w", err)
	}
	entries := make([]*model.MetadataEntry, len(rows))
	for i := range rows {
		entries[i] = toMetadataEntry(rows[i])
	}
	return entries, nil
}

// Permission operations

func (s *SQLiteDatabase) GetPermission(ctx context.Context, fileID string) (*model.Permission, error) {
	perm, err := s.queries.GetPermission(ctx, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding permission: %w", err)
	}
	emails, err := s.queries.ListPermissionShares(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("listing permission shares: %w", err)
	}
	if emails == nil {
		emails = []string{}
	}
	return &model.Permission{
		FileID:     perm.FileID,
		Kind:       model.PermissionKind(perm.Kind),
		SharedWith: emails,
	}, nil
}

// SetPermission replaces the kind and the share list of a file together.
func (s *SQLiteDatabase) SetPermission(ctx context.Context, perm *model.Permission) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	err = qtx.UpsertPermission(ctx, sqlc.UpsertPermissionParams{
		FileID: perm.FileID,
		Kind:   string(perm.Kind),
	})
	if err != nil {
		return fmt.Errorf("writing permission: %w", err)
	}
	if err := qtx.DeletePermissionShares(ctx, perm.FileID); err != nil {
		return fmt.Errorf("clearing permission shares: %w", err)
	}
	if perm.Kind == model.PermissionShared {
		for _, email := range perm.SharedWith {
			err := qtx.InsertPermissionShare(ctx, sqlc.InsertPermissionShareParams{
				FileID: perm.FileID,
				Email:  email,
			})
			if err != nil {
				return fmt.Errorf("adding share %s: %w", email, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// UsageByOwner aggregates the priority revisions of an owner's files.
func (s *SQLiteDatabase) UsageByOwner(ctx context.Context, ownerID string) (*model.Usage, error) {
	total, err := s.queries.GetTotalBytes(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("summing sizes: %w", err)
	}
	byType, err := s.queries.CountFilesByMimeType(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("counting mime types: %w", err)
	}
	byName, err := s.queries.SumDownloadsByName(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("summing downloads: %w", err)
	}

	usage := &model.Usage{
		TotalBytes:      total,
		ByMimeType:      make(map[string]int64, len(byType)),
		DownloadsByName: make(map[string]int64, len(byName)),
	}
	for _, r := range byType {
		usage.ByMimeType[r.MimeType] = r.FileCount
	}
	for _, r := range byName {
		usage.DownloadsByName[r.DisplayName] = r.Downloads
	}
	return usage, nil
}
