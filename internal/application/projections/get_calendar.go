package projections

import (
	"context"

	"kaitori/internal/domain/blackout"
	"kaitori/internal/domain/calendar"
)

// PublicMonthQuery carries query parameters.
type PublicMonthQuery struct {
	Range calendar.Range
}

// PublicMonthDeps holds dependencies for QueryPublicMonth.
type PublicMonthDeps struct {
	SlotCountStore SlotCountStore
}

// QueryPublicMonth returns per-date occupancy for the customer calendar.
// PRE: query.Range is valid
// POST: Ordered by date; cancelled reservations are excluded
func QueryPublicMonth(ctx context.Context, query PublicMonthQuery, deps PublicMonthDeps) ([]calendar.DayCount, error) {
	counts, err := deps.SlotCountStore.SlotCounts(ctx, query.Range)
	if err != nil {
		return nil, err
	}
	return calendar.FoldDays(counts), nil
}

// AdminMonthQuery carries query parameters.
type AdminMonthQuery struct {
	Range calendar.Range
}

// AdminMonthResult carries the query result.
type AdminMonthResult struct {
	Reservations     []calendar.SlotCount `json:"reservations"`
	UnavailableDates []blackout.Blackout  `json:"unavailableDates"`
}

// AdminMonthDeps holds dependencies for QueryAdminMonth.
type AdminMonthDeps struct {
	SlotCountStore SlotCountStore
	BlackoutStore  BlackoutStore
}

// QueryAdminMonth returns per-slot occupancy and blackouts for the back office.
// PRE: query.Range is valid
// POST: Both lists are non-nil and ordered by date
func QueryAdminMonth(ctx context.Context, query AdminMonthQuery, deps AdminMonthDeps) (AdminMonthResult, error) {
	counts, err := deps.SlotCountStore.SlotCounts(ctx, query.Range)
	if err != nil {
		return AdminMonthResult{}, err
	}
	dates, err := deps.BlackoutStore.ListRange(ctx, query.Range)
	if err != nil {
		return AdminMonthResult{}, err
	}
	if counts == nil {
		counts = []calendar.SlotCount{}
	}
	if dates == nil {
		dates = []blackout.Blackout{}
	}
	return AdminMonthResult{Reservations: counts, UnavailableDates: dates}, nil
}
