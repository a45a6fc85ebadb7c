package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kaitori/internal/adapters/storage"
	domain "kaitori/internal/domain/admin"
)

// SQLStore implements Store over database/sql for either dialect.
type SQLStore struct {
	db      storage.SQLDB
	dialect storage.Dialect
}

// NewSQLStore creates a new admin store.
func NewSQLStore(db storage.SQLDB, dialect storage.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// GetByUsername retrieves an Admin by username.
// PRE: username is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLStore) GetByUsername(ctx context.Context, username string) (domain.Admin, error) {
	var a domain.Admin
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind("SELECT id, username, password_hash, created_at FROM admins WHERE username = ?"),
		username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Admin{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Admin{}, fmt.Errorf("get admin: %w", err)
	}
	return a, nil
}

// UpdatePasswordHash replaces the stored secret for id.
// PRE: hash is a bcrypt hash
// POST: domain.ErrNotFound if no row matched
func (s *SQLStore) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := s.db.ExecContext(ctx, s.dialect.Rebind("UPDATE admins SET password_hash = ? WHERE id = ?"), hash, id)
	if err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
