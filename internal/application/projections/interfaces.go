package projections

import (
	"context"

	"kaitori/internal/adapters/storage/reservation"
	"kaitori/internal/domain/blackout"
	"kaitori/internal/domain/calendar"
	domainReservation "kaitori/internal/domain/reservation"
)

// ReservationStore interface for reservation queries.
type ReservationStore interface {
	GetByID(ctx context.Context, id int64) (domainReservation.Reservation, error)
	List(ctx context.Context, filter reservation.ListFilter) ([]domainReservation.Reservation, error)
}

// SlotCountStore interface for calendar aggregates.
type SlotCountStore interface {
	SlotCounts(ctx context.Context, r calendar.Range) ([]calendar.SlotCount, error)
}

// BlackoutStore interface for blackout queries.
type BlackoutStore interface {
	ListRange(ctx context.Context, r calendar.Range) ([]blackout.Blackout, error)
}
