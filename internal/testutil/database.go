package testutil

import (
	"context"
	"testing"

	"drive-go/internal/database"
	"drive-go/internal/model"
)

// NewTestDatabase creates an in-memory SQLite database migrated to the latest
// schema. Operation records are stamped with FixedClock. The database is
// closed when the test completes.
func NewTestDatabase(t *testing.T) *database.SQLiteDatabase {
	t.Helper()

	db, err := database.NewSQLiteDatabase(":memory:", FixedClock())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

// CreateUser registers a user with id "user-<email>" and fails the test on
// error.
func CreateUser(t *testing.T, db *database.SQLiteDatabase, email string) *model.User {
	t.Helper()

	u := &model.User{
		ID:        "user-" + email,
		Email:     email,
		Username:  email,
		CreatedAt: FixedClock().Now(),
	}
	if err := db.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return u
}
