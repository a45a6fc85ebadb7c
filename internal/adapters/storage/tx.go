package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Transactor runs a unit of work inside a single database transaction.
type Transactor struct {
	db   SQLDB
	opts *sql.TxOptions
}

// NewTransactor creates a Transactor. opts may be nil for the driver default.
// On SQLite the DSN should carry _txlock=immediate so the write lock is taken at BEGIN.
func NewTransactor(db SQLDB, opts *sql.TxOptions) *Transactor {
	return &Transactor{db: db, opts: opts}
}

// WithinTx calls fn with a transaction and commits if fn returns nil.
// PRE: fn uses only q for database access
// POST: committed on success; rolled back on error or panic
func (t *Transactor) WithinTx(ctx context.Context, fn func(q Querier) error) (err error) {
	tx, err := t.db.BeginTx(ctx, t.opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				slog.Error("tx_rollback_failed", "error", rbErr)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
