package drive

import (
	"context"

	"drive-go/internal/model"
)

// UploadRecord is everything the record store needs to register one
// uploaded payload. FileID is used only when the upload creates a new
// logical file; Revision.VersionNumber is assigned by the store.
type UploadRecord struct {
	FileID      string
	OwnerID     string
	DirectoryID string
	DisplayName string
	Revision    model.Revision
}

// Database is the transactional record store behind the catalog.
// Single-row lookups return (nil, nil) when nothing matches. Methods that
// mutate more than one row run in one transaction and either fully apply or
// leave the store untouched.
type Database interface {
	UserDirectory

	// User operations

	// CreateUser registers an account. A duplicate email is a Conflict.
	CreateUser(ctx context.Context, user *model.User) error

	// FindUserByEmail returns the account with exactly this email.
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)

	// ListUsers returns all accounts ordered by email.
	ListUsers(ctx context.Context) ([]*model.User, error)

	// Directory operations

	// EnsureDirectory returns the owner's directory at candidate.FullPath,
	// creating it from candidate when absent. A new directory is attached to
	// the owner's directory at the parent path if one exists.
	EnsureDirectory(ctx context.Context, candidate *model.Directory) (*model.Directory, error)

	// CreateDirectory inserts a directory. A duplicate (owner, full path) is a
	// Conflict; a parent that does not exist or belongs to someone else is
	// NotFound.
	CreateDirectory(ctx context.Context, dir *model.Directory) error

	// FindDirectoryByID returns the owner's directory with the given id.
	FindDirectoryByID(ctx context.Context, ownerID, id string) (*model.Directory, error)

	// ListDirectories returns all of the owner's directories ordered by path.
	ListDirectories(ctx context.Context, ownerID string) ([]*model.Directory, error)

	// ListChildDirectories returns the direct children of a directory.
	ListChildDirectories(ctx context.Context, ownerID, parentID string) ([]*model.Directory, error)

	// MoveDirectory re-parents a directory. newParentID nil makes it a root.
	// Moves that would put a directory under itself are InvalidRequest.
	MoveDirectory(ctx context.Context, ownerID, id string, newParentID *string) error

	// DeleteDirectories removes the given directories, their direct children,
	// every logical file inside them and all revision, permission and
	// metadata records of those files. It returns the removed files so their
	// blobs can be deleted. None of ids existing is NotFound.
	DeleteDirectories(ctx context.Context, ownerID string, ids []string) ([]*model.DeletedFile, error)

	// Logical file and revision operations

	// RecordUpload appends a revision to the logical file identified by
	// (owner, directory, display name), creating the file with a Private
	// permission if it does not exist yet. The new revision gets the next
	// version number and becomes the priority revision.
	RecordUpload(ctx context.Context, rec *UploadRecord) (*model.LogicalFile, error)

	// FindFile returns the owner's logical file with the given id.
	FindFile(ctx context.Context, ownerID, fileID string) (*model.LogicalFile, error)

	// FindFileByID returns a logical file regardless of owner.
	FindFileByID(ctx context.Context, fileID string) (*model.LogicalFile, error)

	// ListFiles returns the owner's logical files ordered by display name.
	ListFiles(ctx context.Context, ownerID string) ([]*model.LogicalFile, error)

	// ListFilesInDirectory returns the logical files of one directory.
	ListFilesInDirectory(ctx context.Context, ownerID, directoryID string) ([]*model.LogicalFile, error)

	// ListRevisions returns a file's revisions, newest first.
	ListRevisions(ctx context.Context, fileID string) ([]*model.Revision, error)

	// FindRevision returns one revision of a file.
	FindRevision(ctx context.Context, fileID, revisionID string) (*model.Revision, error)

	// PromoteRevision makes revisionID the priority revision of the owner's
	// file. An unknown file or a revision of another file is NotFound.
	PromoteRevision(ctx context.Context, ownerID, fileID, revisionID string) error

	// IncrementDownloadCount adds one to a file's download counter.
	IncrementDownloadCount(ctx context.Context, fileID string) error

	// MoveFile moves the owner's file into another of the owner's
	// directories. A name clash in the destination is a Conflict.
	MoveFile(ctx context.Context, ownerID, fileID, directoryID string) error

	// DeleteFiles removes the owner's logical files with the given ids and
	// all of their dependent records. None of ids existing is NotFound.
	DeleteFiles(ctx context.Context, ownerID string, ids []string) ([]*model.DeletedFile, error)

	// Search operations

	// SearchFilesByName returns the owner's files whose display name
	// contains keyword.
	SearchFilesByName(ctx context.Context, ownerID, keyword string) ([]*model.LogicalFile, error)

	// SearchFilesByMetadata returns one MetadataMatch per metadata entry of
	// the owner's files whose value contains keyword.
	SearchFilesByMetadata(ctx context.Context, ownerID, keyword string) ([]*model.SearchResult, error)

	// Metadata operations

	// AddMetadata appends entries to a file in order.
	AddMetadata(ctx context.Context, fileID string, entries []model.MetadataEntry) ([]*model.MetadataEntry, error)

	// ListMetadata returns a file's entries in insertion order.
	ListMetadata(ctx context.Context, fileID string) ([]*model.MetadataEntry, error)

	// Permission operations

	// GetPermission returns the permission record of a file.
	GetPermission(ctx context.Context, fileID string) (*model.Permission, error)

	// SetPermission replaces the permission record of a file.
	SetPermission(ctx context.Context, perm *model.Permission) error

	// UsageByOwner aggregates the owner's priority revisions.
	UsageByOwner(ctx context.Context, ownerID string) (*model.Usage, error)

	// Operation tracking

	// CreateOperation records the start of a catalog command.
	CreateOperation(ctx context.Context, operation, parameters string) (*model.Operation, error)

	// FinishOperation stamps a recorded command with its outcome.
	FinishOperation(ctx context.Context, id int64, status string) error

	// ListOperations returns the most recent commands, newest first.
	ListOperations(ctx context.Context, limit int) ([]*model.Operation, error)

	// Maintenance

	// CheckMigrations verifies the schema is at the latest version.
	CheckMigrations() error

	// BackupTo writes a consistent copy of the store to destPath.
	BackupTo(ctx context.Context, destPath string) error

	// Close closes the database connection.
	Close() error
}
