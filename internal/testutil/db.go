// Package testutil provides an in-memory SQLite database with the production schema
package testutil

import (
	"context"
	"testing"

	"swmanager/internal/database"
	"swmanager/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory database with foreign keys enforced and the schema migrated.
// The pool is pinned to one connection so the in-memory database outlives individual queries.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open("file::memory:?_foreign_keys=1"), database.Options{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Scoped returns a context bound to db, as the auth middleware does for a request
func Scoped(db *gorm.DB) context.Context {
	return repository.WithScope(context.Background(), db)
}

// Count returns the number of rows in table
func Count(t testing.TB, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	if err := db.Table(table).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
