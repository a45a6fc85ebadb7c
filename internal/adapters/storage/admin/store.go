package admin

import (
	"context"

	domain "kaitori/internal/domain/admin"
)

// Store persists Admin credentials.
type Store interface {
	GetByUsername(ctx context.Context, username string) (domain.Admin, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}
