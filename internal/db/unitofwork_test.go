package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/focuslog/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func count(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func insertTask(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO tasks (id, name, created_at) VALUES (?, ?, ?)`,
		id, "task-"+id, "2026-03-02T00:00:00Z")
	return err
}

func insertSession(ctx context.Context, tx db.DBTX, id, taskID string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO focus_sessions (id, task_id, started_at, started_at_utc, duration_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, taskID, "2026-03-02T09:00:00+09:00", "2026-03-02T00:00:00.000Z", 1500, "2026-03-02T00:00:00Z")
	return err
}

func insertRecord(ctx context.Context, tx db.DBTX, sessionID string, seq int, kind string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO session_records (session_id, seq, kind, duration_value) VALUES (?, ?, ?, ?)`,
		sessionID, seq, kind, 300)
	return err
}

func TestWithinTx_CommitsSessionWithRecords(t *testing.T) {
	database, uow := openTestDB(t)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := insertTask(ctx, tx, "t1"); err != nil {
			return err
		}
		if err := insertSession(ctx, tx, "s1", "t1"); err != nil {
			return err
		}
		if err := insertRecord(ctx, tx, "s1", 0, "focus"); err != nil {
			return err
		}
		return insertRecord(ctx, tx, "s1", 1, "break")
	})
	require.NoError(t, err)

	assert.Equal(t, 1, count(t, database, "focus_sessions"))
	assert.Equal(t, 2, count(t, database, "session_records"))
}

func TestWithinTx_RollsBackSessionWhenRecordViolatesCheck(t *testing.T) {
	database, uow := openTestDB(t)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := insertTask(ctx, tx, "t1"); err != nil {
			return err
		}
		if err := insertSession(ctx, tx, "s1", "t1"); err != nil {
			return err
		}
		if err := insertRecord(ctx, tx, "s1", 0, "focus"); err != nil {
			return err
		}
		return insertRecord(ctx, tx, "s1", 1, "nap")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHECK")

	assert.Zero(t, count(t, database, "tasks"))
	assert.Zero(t, count(t, database, "focus_sessions"))
	assert.Zero(t, count(t, database, "session_records"))
}

func TestWithinTx_RollsBackOnCallerError(t *testing.T) {
	database, uow := openTestDB(t)
	ctx := context.Background()
	errStop := errors.New("stop")

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := insertTask(ctx, tx, "t1"); err != nil {
			return err
		}
		return errStop
	})
	assert.ErrorIs(t, err, errStop)
	assert.Zero(t, count(t, database, "tasks"))
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	database, uow := openTestDB(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertTask(ctx, tx, "t1")
			panic("boom")
		})
	})

	assert.Zero(t, count(t, database, "tasks"))
}

func TestWithinTx_ForeignKeysEnforced(t *testing.T) {
	database, uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertSession(ctx, tx, "orphan", "missing-task")
	})
	require.Error(t, err)
	assert.Zero(t, count(t, database, "focus_sessions"))
}
