package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/focuslog/internal/db"
	"github.com/alexanderramin/focuslog/internal/domain"
)

// SQLiteFocusSessionRepo implements FocusSessionRepo using a SQLite database.
type SQLiteFocusSessionRepo struct {
	db db.DBTX
}

// NewSQLiteFocusSessionRepo creates a new SQLiteFocusSessionRepo.
func NewSQLiteFocusSessionRepo(conn db.DBTX) *SQLiteFocusSessionRepo {
	return &SQLiteFocusSessionRepo{db: conn}
}

const sessionColumns = `s.id, s.started_at, s.duration_value, s.created_at, t.id, t.name, t.created_at`

func (r *SQLiteFocusSessionRepo) Create(ctx context.Context, s *domain.FocusSession) error {
	query := `INSERT INTO focus_sessions (id, task_id, started_at, started_at_utc, duration_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Task.ID,
		s.StartTime.Format(time.RFC3339Nano),
		utcKey(s.StartTime),
		s.DurationValue,
		formatCreatedAt(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting focus session: %w", err)
	}

	for i, rec := range s.Records {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO session_records (session_id, seq, kind, duration_value, over_time_value)
			VALUES (?, ?, ?, ?, ?)`,
			s.ID, i, string(rec.Kind), rec.DurationValue, rec.OverTimeValue,
		)
		if err != nil {
			return fmt.Errorf("inserting session record %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteFocusSessionRepo) GetByID(ctx context.Context, id string) (*domain.FocusSession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM focus_sessions s JOIN tasks t ON s.task_id = t.id
		WHERE s.id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := r.scanSession(row)
	if err != nil {
		return nil, err
	}

	records, err := r.loadRecords(ctx,
		`SELECT session_id, kind, duration_value, over_time_value
		FROM session_records WHERE session_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	s.Records = records[s.ID]
	return s, nil
}

func (r *SQLiteFocusSessionRepo) ListBetween(ctx context.Context, start, end time.Time) ([]*domain.FocusSession, error) {
	from, to := utcKey(start), utcKey(end)

	query := `SELECT ` + sessionColumns + `
		FROM focus_sessions s JOIN tasks t ON s.task_id = t.id
		WHERE s.started_at_utc >= ? AND s.started_at_utc <= ?
		ORDER BY s.started_at_utc, s.id`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing focus sessions: %w", err)
	}
	sessions, err := r.scanSessions(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return sessions, nil
	}

	// Records are read after the session cursor is closed so a single
	// connection is enough.
	records, err := r.loadRecords(ctx,
		`SELECT r.session_id, r.kind, r.duration_value, r.over_time_value
		FROM session_records r JOIN focus_sessions s ON r.session_id = s.id
		WHERE s.started_at_utc >= ? AND s.started_at_utc <= ?
		ORDER BY r.session_id, r.seq`, from, to)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		s.Records = records[s.ID]
	}
	return sessions, nil
}

func (r *SQLiteFocusSessionRepo) Delete(ctx context.Context, id string) error {
	// Foreign keys are only enabled on the connection OpenDB configured,
	// so records are removed explicitly rather than relying on the cascade.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_records WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("deleting session records: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM focus_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting focus session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("focus session %s: %w", id, ErrNotFound)
	}
	return nil
}

// loadRecords runs a records query and groups the rows by session ID,
// keeping seq order.
func (r *SQLiteFocusSessionRepo) loadRecords(ctx context.Context, query string, args ...any) (map[string][]domain.SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing session records: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.SessionRecord)
	for rows.Next() {
		var sessionID, kind string
		var rec domain.SessionRecord
		if err := rows.Scan(&sessionID, &kind, &rec.DurationValue, &rec.OverTimeValue); err != nil {
			return nil, fmt.Errorf("scanning session record: %w", err)
		}
		rec.Kind = domain.RecordKind(kind)
		out[sessionID] = append(out[sessionID], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session records: %w", err)
	}
	return out, nil
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteFocusSessionRepo) scanSession(row *sql.Row) (*domain.FocusSession, error) {
	var s domain.FocusSession
	var startedAtStr, createdAtStr, taskCreatedAtStr string

	err := row.Scan(&s.ID, &startedAtStr, &s.DurationValue, &createdAtStr,
		&s.Task.ID, &s.Task.Name, &taskCreatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("focus session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning focus session: %w", err)
	}
	return r.populateSession(&s, startedAtStr, createdAtStr, taskCreatedAtStr)
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteFocusSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.FocusSession, error) {
	sessions := []*domain.FocusSession{}
	for rows.Next() {
		var s domain.FocusSession
		var startedAtStr, createdAtStr, taskCreatedAtStr string

		err := rows.Scan(&s.ID, &startedAtStr, &s.DurationValue, &createdAtStr,
			&s.Task.ID, &s.Task.Name, &taskCreatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning focus session row: %w", err)
		}

		session, parseErr := r.populateSession(&s, startedAtStr, createdAtStr, taskCreatedAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating focus sessions: %w", err)
	}
	return sessions, nil
}

// populateSession fills in parsed time fields after scanning raw strings.
func (r *SQLiteFocusSessionRepo) populateSession(s *domain.FocusSession, startedAtStr, createdAtStr, taskCreatedAtStr string) (*domain.FocusSession, error) {
	var parseErr error
	s.StartTime, parseErr = time.Parse(time.RFC3339Nano, startedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing started_at: %w", parseErr)
	}
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.Task.CreatedAt, parseErr = time.Parse(time.RFC3339, taskCreatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing task created_at: %w", parseErr)
	}
	return s, nil
}
