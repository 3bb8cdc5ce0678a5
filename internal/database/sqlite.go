package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"drive-go/internal/database/migrations"
	"drive-go/internal/database/sqlc"
	"drive-go/internal/drive"
	"drive-go/internal/model"
)

// connParams are applied to every connection through the DSN so that each
// pooled connection gets them, not just the first one.
// _txlock=immediate makes BeginTx take the write lock up front, which
// serializes read-modify-write transactions such as version allocation.
const connParams = "_foreign_keys=on&_txlock=immediate&_busy_timeout=5000"

// SQLiteDatabase implements drive.Database using SQLite.
type SQLiteDatabase struct {
	db      *sql.DB
	queries *sqlc.Queries
	path    string
	clock   drive.Clock
}

// NewSQLiteDatabase opens a SQLite database.
// path can be a file path or ":memory:" for an in-memory database.
// clock stamps operation records; nil means the real clock.
func NewSQLiteDatabase(path string, clock drive.Clock) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	s := NewSQLiteDatabaseFromDB(db, clock)
	s.path = path
	return s, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB, clock drive.Clock) *SQLiteDatabase {
	if clock == nil {
		clock = drive.RealClock{}
	}
	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		clock:   clock,
	}
}

// OpenConnection opens and configures a SQLite database connection.
// This is exported for use in tools and tests that need a properly configured SQLite connection.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	var dsn string
	if path == ":memory:" {
		dsn = "file::memory:?" + connParams
	} else {
		dsn = "file:" + path + "?" + connParams + "&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY failure.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// isForeignKeyViolation reports whether err is a FOREIGN KEY failure.
func isForeignKeyViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// User operations

func (s *SQLiteDatabase) CreateUser(ctx context.Context, user *model.User) error {
	_, err := s.queries.InsertUser(ctx, sqlc.InsertUserParams{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return drive.Errorf("CreateUser", drive.Conflict, "user %s already exists", user.Email)
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding user by email: %w", err)
	}
	return toUser(u), nil
}

func (s *SQLiteDatabase) ListUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := s.queries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	users := make([]*model.User, len(rows))
	for i := range rows {
		users[i] = toUser(rows[i])
	}
	return users, nil
}

// ResolveEmails implements drive.UserDirectory.
func (s *SQLiteDatabase) ResolveEmails(ctx context.Context, emails []string) ([]*model.User, error) {
	if len(emails) == 0 {
		return []*model.User{}, nil
	}
	rows, err := s.queries.GetUsersByEmails(ctx, emails)
	if err != nil {
		return nil, fmt.Errorf("resolving emails: %w", err)
	}
	users := make([]*model.User, len(rows))
	for i := range rows {
		users[i] = toUser(rows[i])
	}
	return users, nil
}

// Operation tracking

func (s *SQLiteDatabase) CreateOperation(ctx context.Context, operation, parameters string) (*model.Operation, error) {
	op, err := s.queries.InsertOperation(ctx, sqlc.InsertOperationParams{
		StartedAt:  s.clock.Now(),
		Operation:  operation,
		Parameters: parameters,
	})
	if err != nil {
		return nil, fmt.Errorf("creating operation: %w", err)
	}
	return toOperation(op), nil
}

func (s *SQLiteDatabase) FinishOperation(ctx context.Context, id int64, status string) error {
	err := s.queries.UpdateOperationFinished(ctx, sqlc.UpdateOperationFinishedParams{
		FinishedAt: sql.NullTime{Time: s.clock.Now(), Valid: true},
		Status:     status,
		ID:         id,
	})
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) ListOperations(ctx context.Context, limit int) ([]*model.Operation, error) {
	ops, err := s.queries.ListOperations(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	result := make([]*model.Operation, len(ops))
	for i := range ops {
		result[i] = toOperation(ops[i])
	}
	return result, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// Migrate brings the schema to the latest version.
func (s *SQLiteDatabase) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// BackupTo creates a complete copy of the database at destPath using VACUUM INTO.
// destPath must not exist yet.
func (s *SQLiteDatabase) BackupTo(ctx context.Context, destPath string) error {
	if strings.TrimSpace(destPath) == "" {
		return fmt.Errorf("backup destination is required")
	}
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", destPath); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements drive.Database.
var _ drive.Database = (*SQLiteDatabase)(nil)
