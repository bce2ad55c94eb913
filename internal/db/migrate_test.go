package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time; should succeed without error.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"tasks", "focus_sessions", "session_records"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_tasks_name", "idx_focus_sessions_started", "idx_focus_sessions_task"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_RejectsUnknownRecordKind(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO tasks (id, name, created_at) VALUES ('t1', 'Read', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO focus_sessions (id, task_id, started_at, started_at_utc, duration_value, created_at)
		VALUES ('s1', 't1', '2026-01-01T09:00:00Z', '2026-01-01T09:00:00Z', 1500, '2026-01-01T09:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO session_records (session_id, seq, kind, duration_value) VALUES ('s1', 0, 'nap', 10)`)
	assert.Error(t, err)
}

func TestMigrate_UpgradeAddsOverTimeColumn(t *testing.T) {
	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { raw.Close() })

	// First-release schema without over_time_value.
	legacy := []string{
		`CREATE TABLE tasks (id TEXT PRIMARY KEY, name TEXT NOT NULL, created_at TEXT NOT NULL)`,
		`CREATE TABLE focus_sessions (
			id TEXT PRIMARY KEY, task_id TEXT NOT NULL, started_at TEXT NOT NULL,
			started_at_utc TEXT NOT NULL, duration_value REAL NOT NULL DEFAULT 0, created_at TEXT NOT NULL)`,
		`CREATE TABLE session_records (
			session_id TEXT NOT NULL, seq INTEGER NOT NULL, kind TEXT NOT NULL,
			duration_value REAL NOT NULL DEFAULT 0, PRIMARY KEY (session_id, seq))`,
		`INSERT INTO session_records (session_id, seq, kind, duration_value) VALUES ('s1', 0, 'focus', 1500)`,
	}
	for _, stmt := range legacy {
		_, err := raw.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(raw))

	var overTime float64
	require.NoError(t, raw.QueryRow(`SELECT over_time_value FROM session_records WHERE session_id = 's1'`).Scan(&overTime))
	assert.Zero(t, overTime)
}
