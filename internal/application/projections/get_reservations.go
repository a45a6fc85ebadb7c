package projections

import (
	"context"

	"kaitori/internal/adapters/storage/reservation"
	"kaitori/internal/application/listutil"
	domainReservation "kaitori/internal/domain/reservation"
)

// ListReservationsQuery carries query parameters.
type ListReservationsQuery struct {
	listutil.ListParams
}

// ListReservationsResult carries the query result.
type ListReservationsResult struct {
	Reservations []domainReservation.Reservation
	Count        int
}

// ListReservationsDeps holds dependencies for QueryListReservations.
type ListReservationsDeps struct {
	ReservationStore ReservationStore
}

// QueryListReservations lists reservations for the back office, newest slot first.
// Count is the length of the returned page.
// PRE: query came from listutil.ParseListParams
// POST: Reservations is non-nil
func QueryListReservations(ctx context.Context, query ListReservationsQuery, deps ListReservationsDeps) (ListReservationsResult, error) {
	limit := query.Limit
	if limit < 1 {
		limit = listutil.DefaultLimit
	}
	rows, err := deps.ReservationStore.List(ctx, reservation.ListFilter{
		Status: query.Filters["status"],
		Date:   query.Filters["date"],
		Limit:  limit,
		Offset: query.Offset,
	})
	if err != nil {
		return ListReservationsResult{}, err
	}
	if rows == nil {
		rows = []domainReservation.Reservation{}
	}
	return ListReservationsResult{Reservations: rows, Count: len(rows)}, nil
}

// GetReservationQuery carries query parameters.
type GetReservationQuery struct {
	ID int64
}

// GetReservationDeps holds dependencies for QueryGetReservation.
type GetReservationDeps struct {
	ReservationStore ReservationStore
}

// QueryGetReservation loads one reservation.
// PRE: none
// POST: Returns domainReservation.ErrNotFound for unknown ids
func QueryGetReservation(ctx context.Context, query GetReservationQuery, deps GetReservationDeps) (domainReservation.Reservation, error) {
	if query.ID < 1 {
		return domainReservation.Reservation{}, domainReservation.ErrNotFound
	}
	return deps.ReservationStore.GetByID(ctx, query.ID)
}
