package reservation

import (
	"context"
	"time"

	"kaitori/internal/adapters/storage"
	"kaitori/internal/domain/calendar"
	domain "kaitori/internal/domain/reservation"
)

// Store persists Reservation state.
// Methods taking a Querier run against the caller's transaction.
type Store interface {
	Insert(ctx context.Context, q storage.Querier, r domain.Reservation) (int64, error)
	CountActiveInSlot(ctx context.Context, q storage.Querier, date, slot string) (int, error)
	CountActiveOnDate(ctx context.Context, q storage.Querier, date string) (int, error)
	GetByID(ctx context.Context, id int64) (domain.Reservation, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Reservation, error)
	Update(ctx context.Context, id int64, patch domain.Patch, now time.Time) error
	Delete(ctx context.Context, id int64) error
	SlotCounts(ctx context.Context, r calendar.Range) ([]calendar.SlotCount, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Status string
	Date   string
	Limit  int
	Offset int
}
