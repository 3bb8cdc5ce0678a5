package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"drive-go/internal/model"
)

// DefaultMimeType is recorded for uploads that do not state a type.
const DefaultMimeType = "application/octet-stream"

// Catalog is the orchestration layer over the record store and the blob
// store. It holds no per-request state; every invariant is enforced by the
// Database transactions it calls.
type Catalog struct {
	database Database
	blobs    BlobStore
	users    UserDirectory
	logger   Logger
	clock    Clock
	idgen    IDGenerator
}

// NewCatalog creates a Catalog with the provided dependencies. users is
// usually the database itself.
func NewCatalog(database Database, blobs BlobStore, users UserDirectory, logger Logger, clock Clock, idgen IDGenerator) *Catalog {
	if logger == nil {
		logger = NewNopLogger()
	}
	if clock == nil {
		clock = RealClock{}
	}
	if idgen == nil {
		idgen = UUIDGenerator{}
	}
	if users == nil {
		users = database
	}
	return &Catalog{
		database: database,
		blobs:    blobs,
		users:    users,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
	}
}

// ownedFile loads one of owner's files or fails with NotFound.
func (c *Catalog) ownedFile(ctx context.Context, op string, owner Principal, fileID string) (*model.LogicalFile, error) {
	if fileID == "" {
		return nil, Errorf(op, InvalidRequest, "file id is required")
	}
	file, err := c.database.FindFile(ctx, owner.UserID, fileID)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	if file == nil {
		return nil, Errorf(op, NotFound, "file %s", fileID)
	}
	return file, nil
}

// UploadItem is one payload of an upload request.
type UploadItem struct {
	DisplayName string
	Content     io.Reader
	MimeType    string
}

// Upload stores every item as a new revision in the directory dir, creating
// the directory on first use. Items whose display name is new in dir start a
// logical file at version 1; the others get the next version number. Each
// new revision becomes its file's priority revision.
//
// The payloads are written to the blob store before the request is checked.
// When dir is inconsistent, or an item cannot be recorded, the blobs not yet
// recorded are deleted again.
func (c *Catalog) Upload(ctx context.Context, owner Principal, dir DirectoryRef, items ...UploadItem) ([]*model.LogicalFile, error) {
	const op = "Upload"
	if owner.UserID == "" {
		return nil, Errorf(op, InvalidRequest, "owner is required")
	}
	if len(items) == 0 {
		return nil, Errorf(op, InvalidRequest, "no files in request")
	}

	revs := make([]model.Revision, 0, len(items))
	for _, item := range items {
		rev, err := c.saveRevision(ctx, owner, item)
		if err != nil {
			c.discard(ctx, revs)
			return nil, E(op, Internal, err)
		}
		revs = append(revs, rev)
	}

	if err := validateUpload(dir, items); err != nil {
		c.discard(ctx, revs)
		return nil, E(op, Internal, err)
	}

	directory, err := c.ensureDirectory(ctx, owner, dir)
	if err != nil {
		c.discard(ctx, revs)
		return nil, E(op, Internal, err)
	}

	files := make([]*model.LogicalFile, 0, len(items))
	for i, item := range items {
		file, err := c.database.RecordUpload(ctx, &UploadRecord{
			FileID:      c.idgen.New(),
			OwnerID:     owner.UserID,
			DirectoryID: directory.ID,
			DisplayName: item.DisplayName,
			Revision:    revs[i],
		})
		if err != nil {
			c.discard(ctx, revs[i:])
			return files, E(op, Internal, fmt.Errorf("recording %s: %w", item.DisplayName, err))
		}
		c.logger.Info("file uploaded", "file_id", file.ID, "name", file.DisplayName,
			"version", file.Priority.VersionNumber, "size", file.Priority.Size)
		files = append(files, file)
	}
	return files, nil
}

func validateUpload(dir DirectoryRef, items []UploadItem) error {
	if err := ValidateDirectoryPath(dir.Name, dir.Path); err != nil {
		return err
	}
	for _, item := range items {
		name := strings.TrimSpace(item.DisplayName)
		if name == "" || name != item.DisplayName || strings.Contains(name, "/") {
			return Errorf("Upload", InvalidRequest, "invalid display name %q", item.DisplayName)
		}
	}
	return nil
}

// saveRevision writes one payload to the blob store under a fresh path.
func (c *Catalog) saveRevision(ctx context.Context, owner Principal, item UploadItem) (model.Revision, error) {
	rev := model.Revision{
		ID:         c.idgen.New(),
		MimeType:   item.MimeType,
		UploadedAt: c.clock.Now(),
	}
	if rev.MimeType == "" {
		rev.MimeType = DefaultMimeType
	}
	if item.Content == nil {
		return rev, fmt.Errorf("no content for %q", item.DisplayName)
	}
	counter := &countingReader{r: item.Content}
	stored, err := c.blobs.Save(ctx, RevisionPath(owner.UserID, rev.ID), counter)
	if err != nil {
		return rev, fmt.Errorf("saving %q: %w", item.DisplayName, err)
	}
	rev.StoragePath = stored
	rev.Size = counter.n
	return rev, nil
}

// discard deletes the blobs of revisions that never reached the record store.
// Failures only waste storage, so they are logged and swallowed.
func (c *Catalog) discard(ctx context.Context, revs []model.Revision) {
	for _, rev := range revs {
		c.deleteBlob(ctx, rev.StoragePath)
	}
}

func (c *Catalog) deleteBlob(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := c.blobs.Delete(ctx, path); err != nil {
		c.logger.Warn("failed to delete blob", "path", path, "error", err)
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

// DownloadTicket identifies the blob to serve for a download.
type DownloadTicket struct {
	FileID      string
	BlobPath    string
	DisplayName string
	MimeType    string
	Size        int64
}

// Download authorizes requester to read fileID. Owners are served directly
// and the download is counted. Anyone else needs a Public permission or a
// Shared permission listing their email; every other outcome, including a
// file that does not exist, is NotFoundOrForbidden.
func (c *Catalog) Download(ctx context.Context, requester Principal, fileID string) (*DownloadTicket, error) {
	const op = "Download"
	if fileID == "" {
		return nil, Errorf(op, InvalidRequest, "file id is required")
	}

	if requester.UserID != "" {
		own, err := c.database.FindFile(ctx, requester.UserID, fileID)
		if err != nil {
			return nil, E(op, Internal, err)
		}
		if own != nil {
			if err := c.database.IncrementDownloadCount(ctx, own.ID); err != nil {
				return nil, E(op, Internal, err)
			}
			return ticketFor(own), nil
		}
	}

	file, err := c.database.FindFileByID(ctx, fileID)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	if file == nil {
		return nil, &Error{Op: op, Kind: NotFoundOrForbidden}
	}
	perm, err := c.database.GetPermission(ctx, file.ID)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	if !CanRead(file, perm, requester) {
		c.logger.Debug("download denied", "file_id", fileID, "requester", requester.UserID)
		return nil, &Error{Op: op, Kind: NotFoundOrForbidden}
	}
	return ticketFor(file), nil
}

func ticketFor(f *model.LogicalFile) *DownloadTicket {
	return &DownloadTicket{
		FileID:      f.ID,
		BlobPath:    f.Priority.StoragePath,
		DisplayName: f.DisplayName,
		MimeType:    f.Priority.MimeType,
		Size:        f.Priority.Size,
	}
}

// OpenDownload authorizes the download like Download and streams the
// priority revision to w.
func (c *Catalog) OpenDownload(ctx context.Context, requester Principal, fileID string, w io.Writer) (*DownloadTicket, error) {
	ticket, err := c.Download(ctx, requester, fileID)
	if err != nil {
		return nil, err
	}
	if err := c.blobs.Get(ctx, ticket.BlobPath, w); err != nil {
		return nil, E("OpenDownload", Internal, fmt.Errorf("reading blob %s: %w", ticket.BlobPath, err))
	}
	return ticket, nil
}

// List returns owner's logical files, each with its priority revision.
func (c *Catalog) List(ctx context.Context, owner Principal) ([]*model.LogicalFile, error) {
	files, err := c.database.ListFiles(ctx, owner.UserID)
	if err != nil {
		return nil, E("List", Internal, err)
	}
	return files, nil
}

// Search returns owner's files whose name contains keyword, followed by one
// MetadataMatch per metadata value containing keyword. A file can appear in
// both parts.
func (c *Catalog) Search(ctx context.Context, owner Principal, keyword string) ([]*model.SearchResult, error) {
	const op = "Search"
	if keyword == "" {
		return nil, Errorf(op, InvalidRequest, "keyword is required")
	}
	byName, err := c.database.SearchFilesByName(ctx, owner.UserID, keyword)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	byMeta, err := c.database.SearchFilesByMetadata(ctx, owner.UserID, keyword)
	if err != nil {
		return nil, E(op, Internal, err)
	}

	results := make([]*model.SearchResult, 0, len(byName)+len(byMeta))
	for _, f := range byName {
		results = append(results, &model.SearchResult{Kind: model.FileMatch, File: *f})
	}
	results = append(results, byMeta...)
	return results, nil
}

// UsageAnalytics aggregates owner's files over their priority revisions.
func (c *Catalog) UsageAnalytics(ctx context.Context, owner Principal) (*model.Usage, error) {
	usage, err := c.database.UsageByOwner(ctx, owner.UserID)
	if err != nil {
		return nil, E("UsageAnalytics", Internal, err)
	}
	return usage, nil
}
