package blackout

import (
	"context"

	"kaitori/internal/adapters/storage"
	"kaitori/internal/domain/calendar"
	domain "kaitori/internal/domain/blackout"
)

// Store persists Blackout state.
type Store interface {
	Exists(ctx context.Context, q storage.Querier, date string) (bool, error)
	Save(ctx context.Context, value domain.Blackout, createdAt string) error
	Delete(ctx context.Context, date string) error
	ListRange(ctx context.Context, r calendar.Range) ([]domain.Blackout, error)
}
