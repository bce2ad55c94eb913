package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_name ON tasks(name)`,

	`CREATE TABLE IF NOT EXISTS focus_sessions (
		id             TEXT PRIMARY KEY,
		task_id        TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		started_at     TEXT NOT NULL,
		started_at_utc TEXT NOT NULL,
		duration_value REAL NOT NULL DEFAULT 0 CHECK(duration_value >= 0),
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_focus_sessions_started ON focus_sessions(started_at_utc)`,
	`CREATE INDEX IF NOT EXISTS idx_focus_sessions_task ON focus_sessions(task_id)`,

	`CREATE TABLE IF NOT EXISTS session_records (
		session_id     TEXT NOT NULL REFERENCES focus_sessions(id) ON DELETE CASCADE,
		seq            INTEGER NOT NULL,
		kind           TEXT NOT NULL CHECK(kind IN ('focus','break')),
		duration_value REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (session_id, seq)
	)`,

	// Added after the first release; older databases lack the column.
	`ALTER TABLE session_records ADD COLUMN over_time_value REAL NOT NULL DEFAULT 0`,
}
