package model

import "time"

// User is an account known to the user directory. Email is unique.
type User struct {
	ID        string // UUID
	Email     string
	Username  string
	CreatedAt time.Time
}

// Directory is a named node in one owner's directory forest.
// The last segment of FullPath always equals Name.
type Directory struct {
	ID        string  // UUID
	OwnerID   string  // Foreign key to User
	ParentID  *string // nil for root directories
	Name      string
	FullPath  string // unique per owner
	CreatedAt time.Time
}

// IsRoot reports whether the directory has no parent.
func (d *Directory) IsRoot() bool {
	return d.ParentID == nil
}

// Revision is one immutable uploaded payload of a logical file.
type Revision struct {
	ID            string // UUID
	FileID        string // Foreign key to LogicalFile
	VersionNumber int64  // 1, 2, 3, ... per logical file
	StoragePath   string // blob store path
	Size          int64
	MimeType      string
	UploadedAt    time.Time
}

// LogicalFile is a named file as its owner sees it: every revision uploaded
// under (OwnerID, DirectoryID, DisplayName), one of which is the priority
// revision served by default.
type LogicalFile struct {
	ID            string // UUID
	OwnerID       string
	DirectoryID   string
	DisplayName   string
	CreatedAt     time.Time
	DownloadCount int64

	// Priority is the revision currently served for this file.
	Priority Revision
}

// Size returns the size of the priority revision.
func (f *LogicalFile) Size() int64 { return f.Priority.Size }

// MimeType returns the MIME type of the priority revision.
func (f *LogicalFile) MimeType() string { return f.Priority.MimeType }

// PermissionKind is the access mode of a file.
type PermissionKind string

const (
	PermissionPrivate PermissionKind = "Private"
	PermissionPublic  PermissionKind = "Public"
	PermissionShared  PermissionKind = "Shared"
)

// Permission is the single access record of a file.
// SharedWith is empty unless Kind is PermissionShared.
type Permission struct {
	FileID     string
	Kind       PermissionKind
	SharedWith []string // emails, sorted
}

// MetadataEntry is one key/value pair attached to a file. Keys may repeat.
type MetadataEntry struct {
	ID     int64
	FileID string
	Key    string
	Value  string
}

// SearchKind tags a SearchResult.
type SearchKind string

const (
	FileMatch     SearchKind = "file"
	MetadataMatch SearchKind = "metadata"
)

// SearchResult is one search hit. File is always set; Metadata is set only
// when Kind is MetadataMatch and holds the entry whose value matched.
type SearchResult struct {
	Kind     SearchKind
	File     LogicalFile
	Metadata *MetadataEntry
}

// Usage aggregates an owner's priority revisions.
type Usage struct {
	TotalBytes      int64
	ByMimeType      map[string]int64 // MIME type -> number of files
	DownloadsByName map[string]int64 // display name -> download count
}

// DeletedFile describes a logical file removed from the catalog together
// with the blob paths of all of its revisions.
type DeletedFile struct {
	FileID       string
	DisplayName  string
	StoragePaths []string
}

// Operation is a recorded catalog command.
type Operation struct {
	ID         int64
	Operation  string
	Parameters string
	StartedAt  time.Time
	FinishedAt *time.Time
	Status     string
}
