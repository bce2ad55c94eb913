package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/focuslog/internal/db"
)

// NewTestDB opens a migrated in-memory focuslog database that is closed when
// the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// CountRows returns the number of rows in one of the focuslog tables.
func CountRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	switch table {
	case "tasks", "focus_sessions", "session_records":
	default:
		t.Fatalf("unknown table %q", table)
	}
	var n int
	if err := database.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}
