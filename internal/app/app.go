package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"drive-go/internal/blob"
	"drive-go/internal/config"
	"drive-go/internal/database"
	"drive-go/internal/drive"
	"drive-go/internal/encryption"
	"drive-go/internal/fs"
	"drive-go/internal/metrics"
	"drive-go/internal/model"
)

// DriveApp is the application layer between the CLI and the Catalog.
// It constructs all dependencies from config, resolves the acting user,
// reads local files for uploads and manages the database lifecycle on Close.
type DriveApp struct {
	cfg       *config.Config
	db        *database.SQLiteDatabase
	blobs     drive.BlobStore
	cipher    encryption.SnapshotCipher
	catalog   *drive.Catalog
	clock     drive.Clock
	logger    *slog.Logger
	op        *Operation
	principal drive.Principal
	logFile   *os.File
}

// NewDriveApp creates a fully wired DriveApp from the given config.
// operation identifies the CLI command being run (e.g. "Upload", "Restore")
// and args are recorded with it. The caller must call Close when done.
func NewDriveApp(ctx context.Context, cfg *config.Config, operation string, args ...string) (*DriveApp, error) {
	clock := drive.RealClock{}

	blobs, err := blob.NewBlobStoreFromConfig(ctx, cfg.BlobStore)
	if err != nil {
		return nil, fmt.Errorf("creating blob store: %w", err)
	}

	cipher, err := encryption.NewCipherFromConfig(cfg.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot cipher: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database, clock)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	if err := db.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date (run drive migrate): %w", err)
	}

	opID := clock.Now().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	catalog := drive.NewCatalog(db, blobs, db, &slogAdapter{l: logger}, clock, drive.UUIDGenerator{})

	return &DriveApp{
		cfg:     cfg,
		db:      db,
		blobs:   blobs,
		cipher:  cipher,
		catalog: catalog,
		clock:   clock,
		logger:  logger,
		op:      NewOperation(operation, args...),
		logFile: logFile,
	}, nil
}

// Migrate brings the database at cfg to the latest schema. It is the only
// entry point that works on an out-of-date database.
func Migrate(cfg *config.Config) error {
	db, err := database.NewDatabaseFromConfig(cfg.Database, nil)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	return nil
}

// persistOperation saves the operation to the database, giving it an auto-increment ID.
// This should only be called for mutating commands.
func (a *DriveApp) persistOperation(ctx context.Context) error {
	if a.op.Persisted() {
		return nil
	}
	dbOp, err := a.db.CreateOperation(ctx, a.op.Operation, a.op.Parameters)
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	a.op.ID = dbOp.ID
	return nil
}

// mutate persists the operation, runs fn and records a failure.
func (a *DriveApp) mutate(ctx context.Context, fn func() error) error {
	if err := a.persistOperation(ctx); err != nil {
		return err
	}
	if err := fn(); err != nil {
		a.op.Fail()
		return err
	}
	return nil
}

// As selects the acting user by email. Every catalog command acts on behalf
// of this user.
func (a *DriveApp) As(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("no user selected: pass --as EMAIL or set DRIVE_USER")
	}
	u, err := a.db.FindUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}
	if u == nil {
		return drive.Errorf("As", drive.NotFound, "no user with email %s", email)
	}
	a.principal = drive.Principal{UserID: u.ID, Email: u.Email}
	a.logger.Debug("acting as user", "user_id", u.ID, "email", u.Email)
	return nil
}

// Principal returns the acting user.
func (a *DriveApp) Principal() drive.Principal {
	return a.principal
}

// Users

// AddUser registers an account in the user directory.
func (a *DriveApp) AddUser(ctx context.Context, email, username string) (*model.User, error) {
	u := &model.User{
		ID:        drive.UUIDGenerator{}.New(),
		Email:     email,
		Username:  username,
		CreatedAt: a.clock.Now(),
	}
	if u.Username == "" {
		u.Username = email
	}
	err := a.mutate(ctx, func() error {
		if email == "" {
			return drive.Errorf("AddUser", drive.InvalidRequest, "email is required")
		}
		return a.db.CreateUser(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (a *DriveApp) ListUsers(ctx context.Context) ([]*model.User, error) {
	return a.db.ListUsers(ctx)
}

// Directories

func (a *DriveApp) CreateDirectory(ctx context.Context, name, fullPath, parentID string) (*model.Directory, error) {
	var dir *model.Directory
	err := a.mutate(ctx, func() error {
		var parent *string
		if parentID != "" {
			parent = &parentID
		}
		var err error
		dir, err = a.catalog.CreateDirectory(ctx, a.principal, name, fullPath, parent)
		return err
	})
	return dir, err
}

func (a *DriveApp) ListDirectories(ctx context.Context) ([]*model.Directory, error) {
	return a.catalog.ListDirectories(ctx, a.principal)
}

func (a *DriveApp) ListDirectoryFiles(ctx context.Context, id string) (*drive.DirectoryListing, error) {
	return a.catalog.ListDirectoryFiles(ctx, a.principal, id)
}

// Files

// Upload reads the local files at rawPaths and uploads them into the
// directory (dirName, dirPath). A directory argument uploads the regular
// files inside it, honoring its .driveignore; recursive descends into
// subdirectories. All files land in the one target directory.
func (a *DriveApp) Upload(ctx context.Context, dirName, dirPath string, rawPaths []string, recursive bool) ([]*model.LogicalFile, error) {
	var files []*model.LogicalFile
	err := a.mutate(ctx, func() error {
		sources, err := collectSources(rawPaths, recursive)
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			return drive.Errorf("Upload", drive.InvalidRequest, "no files to upload")
		}

		items := make([]drive.UploadItem, 0, len(sources))
		for _, src := range sources {
			rc, err := src.Open()
			if err != nil {
				return fmt.Errorf("opening %s: %w", src.Path, err)
			}
			defer rc.Close()
			items = append(items, drive.UploadItem{
				DisplayName: src.Name,
				Content:     rc,
				MimeType:    src.MimeType,
			})
		}

		files, err = a.catalog.Upload(ctx, a.principal, drive.DirectoryRef{Name: dirName, Path: dirPath}, items...)
		return err
	})
	return files, err
}

func collectSources(rawPaths []string, recursive bool) ([]*fs.Source, error) {
	var sources []*fs.Source
	for _, raw := range rawPaths {
		info, err := os.Stat(raw)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}
		if !info.IsDir() {
			src, err := fs.Resolve(raw)
			if err != nil {
				return nil, fmt.Errorf("resolving path: %w", err)
			}
			sources = append(sources, src)
			continue
		}
		ignore, err := fs.LoadIgnoreFile(raw)
		if err != nil {
			return nil, err
		}
		found, err := fs.Collect(raw, recursive, ignore)
		if err != nil {
			return nil, err
		}
		sources = append(sources, found...)
	}
	return sources, nil
}

// Download writes the priority revision of fileID to destPath. An empty
// destPath means the file's display name in the current directory; an
// existing directory receives the file under its display name. Existing
// files are never overwritten.
func (a *DriveApp) Download(ctx context.Context, fileID, destPath string) (string, *drive.DownloadTicket, error) {
	ticket, err := a.catalog.Download(ctx, a.principal, fileID)
	if err != nil {
		return "", nil, err
	}

	target := destPath
	if target == "" {
		target = ticket.DisplayName
	} else if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, ticket.DisplayName)
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", nil, fmt.Errorf("creating %s: %w", target, err)
	}
	if err := a.blobs.Get(ctx, ticket.BlobPath, f); err != nil {
		f.Close()
		os.Remove(target)
		return "", nil, fmt.Errorf("reading blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", nil, fmt.Errorf("closing %s: %w", target, err)
	}
	return target, ticket, nil
}

func (a *DriveApp) List(ctx context.Context) ([]*model.LogicalFile, error) {
	return a.catalog.List(ctx, a.principal)
}

func (a *DriveApp) Search(ctx context.Context, keyword string) ([]*model.SearchResult, error) {
	return a.catalog.Search(ctx, a.principal, keyword)
}

// Versions

func (a *DriveApp) ListVersions(ctx context.Context, fileID string) ([]*model.Revision, error) {
	return a.catalog.ListVersions(ctx, a.principal, fileID)
}

func (a *DriveApp) GetVersion(ctx context.Context, fileID, versionID string) (*model.Revision, error) {
	return a.catalog.GetVersion(ctx, a.principal, fileID, versionID)
}

func (a *DriveApp) Restore(ctx context.Context, fileID, versionID string) (*model.LogicalFile, error) {
	var file *model.LogicalFile
	err := a.mutate(ctx, func() error {
		var err error
		file, err = a.catalog.Restore(ctx, a.principal, fileID, versionID)
		return err
	})
	return file, err
}

// Permissions

func (a *DriveApp) Share(ctx context.Context, fileID, kind string, emails []string) (*drive.PermissionChange, error) {
	var change *drive.PermissionChange
	err := a.mutate(ctx, func() error {
		var err error
		change, err = a.catalog.SetPermission(ctx, a.principal, fileID, kind, emails)
		return err
	})
	return change, err
}

func (a *DriveApp) Permission(ctx context.Context, fileID string) (*model.Permission, error) {
	return a.catalog.GetPermission(ctx, a.principal, fileID)
}

// Metadata

func (a *DriveApp) AddMetadata(ctx context.Context, fileID string, entries []model.MetadataEntry) ([]*model.MetadataEntry, error) {
	var added []*model.MetadataEntry
	err := a.mutate(ctx, func() error {
		var err error
		added, err = a.catalog.AddMetadata(ctx, a.principal, fileID, entries)
		return err
	})
	return added, err
}

func (a *DriveApp) ListMetadata(ctx context.Context, fileID string) ([]*model.MetadataEntry, error) {
	return a.catalog.ListMetadata(ctx, a.principal, fileID)
}

// Delete and move

func (a *DriveApp) Delete(ctx context.Context, kind string, ids []string) ([]*model.DeletedFile, error) {
	var deleted []*model.DeletedFile
	err := a.mutate(ctx, func() error {
		var err error
		deleted, err = a.catalog.Delete(ctx, a.principal, kind, ids)
		return err
	})
	return deleted, err
}

func (a *DriveApp) Move(ctx context.Context, kind, itemID, destID string) error {
	return a.mutate(ctx, func() error {
		return a.catalog.Move(ctx, a.principal, kind, itemID, destID)
	})
}

// Reporting

func (a *DriveApp) Usage(ctx context.Context) (*model.Usage, error) {
	return a.catalog.UsageAnalytics(ctx, a.principal)
}

// GetHistory returns the most recent recorded operations.
func (a *DriveApp) GetHistory(ctx context.Context, limit int) ([]*model.Operation, error) {
	return a.db.ListOperations(ctx, limit)
}

// ExportMetrics writes every user's usage to path in the Prometheus text
// format.
func (a *DriveApp) ExportMetrics(ctx context.Context, path string) error {
	exporter := metrics.NewUsageExporter()
	if err := exporter.Collect(ctx, a.db, a.catalog); err != nil {
		return err
	}
	return exporter.WriteTextfile(path)
}

// Close finalizes the operation and closes all resources.
func (a *DriveApp) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.db.FinishOperation(context.Background(), a.op.ID, a.op.Status); err != nil {
			firstErr = fmt.Errorf("finishing operation: %w", err)
		}
		a.logger.Info("operation finished", "operation", a.op.String(), "status", a.op.Status)
	}

	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
