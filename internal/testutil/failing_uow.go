package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/focuslog/internal/db"
)

// FailingUoW runs each transaction against DB but makes one write fail, so
// rollback of multi-row writes (a session and its records) can be observed.
//
// FailOn picks the Nth ExecContext of the transaction, counting from 1.
// FailOnQuery picks the first ExecContext whose SQL contains the substring.
// Reads are never intercepted.
type FailingUoW struct {
	DB          *sql.DB
	FailOn      int32
	FailOnQuery string
	Err         error

	execs atomic.Int32
}

// Execs reports how many writes the last transaction attempted.
func (u *FailingUoW) Execs() int {
	return int(u.execs.Load())
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	u.execs.Store(0)
	wrapped := &failingTx{DBTX: tx, uow: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow    *FailingUoW
	failed bool
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.uow.execs.Add(1)
	if !f.failed && f.matches(n, query) {
		f.failed = true
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

func (f *failingTx) matches(n int32, query string) bool {
	if f.uow.FailOnQuery != "" {
		return strings.Contains(query, f.uow.FailOnQuery)
	}
	return n == f.uow.FailOn
}
