package database

import (
	"drive-go/internal/database/sqlc"
	"drive-go/internal/model"
)

// Row conversions from the generated query layer to domain records.

func toUser(u sqlc.User) *model.User {
	return &model.User{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

func toDirectory(d sqlc.Directory) *model.Directory {
	return &model.Directory{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		ParentID:  stringPtr(d.ParentID),
		Name:      d.Name,
		FullPath:  d.FullPath,
		CreatedAt: d.CreatedAt,
	}
}

func toRevision(r sqlc.Revision) *model.Revision {
	return &model.Revision{
		ID:            r.ID,
		FileID:        r.FileID,
		VersionNumber: r.VersionNumber,
		StoragePath:   r.StoragePath,
		Size:          r.Size,
		MimeType:      r.MimeType,
		UploadedAt:    r.UploadedAt,
	}
}

func toLogicalFile(h sqlc.FileHead) *model.LogicalFile {
	return &model.LogicalFile{
		ID:            h.ID,
		OwnerID:       h.OwnerID,
		DirectoryID:   h.DirectoryID,
		DisplayName:   h.DisplayName,
		CreatedAt:     h.CreatedAt,
		DownloadCount: h.DownloadCount,
		Priority: model.Revision{
			ID:            h.RevisionID,
			FileID:        h.ID,
			VersionNumber: h.VersionNumber,
			StoragePath:   h.StoragePath,
			Size:          h.Size,
			MimeType:      h.MimeType,
			UploadedAt:    h.UploadedAt,
		},
	}
}

func toLogicalFiles(heads []sqlc.FileHead) []*model.LogicalFile {
	files := make([]*model.LogicalFile, len(heads))
	for i := range heads {
		files[i] = toLogicalFile(heads[i])
	}
	return files
}

func toMetadataMatch(r sqlc.SearchFileHeadsByMetadataRow) *model.SearchResult {
	file := toLogicalFile(sqlc.FileHead{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		DirectoryID:   r.DirectoryID,
		DisplayName:   r.DisplayName,
		CreatedAt:     r.CreatedAt,
		DownloadCount: r.DownloadCount,
		RevisionID:    r.RevisionID,
		VersionNumber: r.VersionNumber,
		StoragePath:   r.StoragePath,
		Size:          r.Size,
		MimeType:      r.MimeType,
		UploadedAt:    r.UploadedAt,
	})
	return &model.SearchResult{
		Kind: model.MetadataMatch,
		File: *file,
		Metadata: &model.MetadataEntry{
			ID:     r.MetadataID,
			FileID: r.ID,
			Key:    r.MetadataKey,
			Value:  r.MetadataValue,
		},
	}
}

func toMetadataEntry(m sqlc.FileMetadatum) *model.MetadataEntry {
	return &model.MetadataEntry{
		ID:     m.ID,
		FileID: m.FileID,
		Key:    m.Key,
		Value:  m.Value,
	}
}

func toOperation(op sqlc.Operation) *model.Operation {
	o := &model.Operation{
		ID:         op.ID,
		Operation:  op.Operation,
		Parameters: op.Parameters,
		StartedAt:  op.StartedAt,
		Status:     op.Status,
	}
	if op.FinishedAt.Valid {
		t := op.FinishedAt.Time
		o.FinishedAt = &t
	}
	return o
}
