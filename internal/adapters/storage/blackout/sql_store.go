package blackout

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"kaitori/internal/adapters/storage"
	"kaitori/internal/domain/calendar"
	domain "kaitori/internal/domain/blackout"
)

// SQLStore implements Store over database/sql for either dialect.
type SQLStore struct {
	db      storage.SQLDB
	dialect storage.Dialect
}

// NewSQLStore creates a new blackout store.
func NewSQLStore(db storage.SQLDB, dialect storage.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// Exists reports whether date is blacked out.
// PRE: q is the admission transaction or the pool
// POST: Returns true iff a row for date exists
func (s *SQLStore) Exists(ctx context.Context, q storage.Querier, date string) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, s.dialect.Rebind("SELECT COUNT(*) FROM unavailable_dates WHERE date = ?"), date).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check unavailable date: %w", err)
	}
	return n > 0, nil
}

// Save marks a date unavailable. Saving an existing date replaces its reason.
// PRE: entity has been validated
// POST: Exactly one row for entity.Date exists
func (s *SQLStore) Save(ctx context.Context, entity domain.Blackout, createdAt string) error {
	_, err := s.db.ExecContext(ctx,
		s.dialect.Rebind("INSERT INTO unavailable_dates (date, reason, created_at) VALUES (?, ?, ?) ON CONFLICT(date) DO UPDATE SET reason=excluded.reason"),
		entity.Date, entity.Reason, createdAt,
	)
	if err != nil {
		return fmt.Errorf("save unavailable date %s: %w", entity.Date, err)
	}
	return nil
}

// Delete clears a blackout. Clearing a date that is not blacked out is not an error.
// PRE: none
// POST: No row for date exists
func (s *SQLStore) Delete(ctx context.Context, date string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.Rebind("DELETE FROM unavailable_dates WHERE date = ?"), date); err != nil {
		return fmt.Errorf("delete unavailable date %s: %w", date, err)
	}
	return nil
}

// ListRange returns blackouts with From <= date < To, ordered by date.
// PRE: r.From < r.To
// POST: Returns a non-nil slice
func (s *SQLStore) ListRange(ctx context.Context, r calendar.Range) ([]domain.Blackout, error) {
	rows, err := s.db.QueryContext(ctx,
		s.dialect.Rebind("SELECT date, COALESCE(reason, '') AS reason FROM unavailable_dates WHERE date >= ? AND date < ? ORDER BY date"),
		r.From, r.To,
	)
	if err != nil {
		return nil, fmt.Errorf("list unavailable dates: %w", err)
	}
	defer rows.Close()

	results := []domain.Blackout{}
	if err := sqlx.StructScan(rows, &results); err != nil {
		return nil, fmt.Errorf("scan unavailable dates: %w", err)
	}
	return results, nil
}
