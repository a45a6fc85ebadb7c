package projections

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"kaitori/internal/adapters/storage/reservation"
	"kaitori/internal/application/listutil"
	"kaitori/internal/domain/blackout"
	"kaitori/internal/domain/calendar"
	domainReservation "kaitori/internal/domain/reservation"
)

type mockCalendarStore struct {
	counts    []calendar.SlotCount
	blackouts []blackout.Blackout
	gotRange  calendar.Range
	err       error
}

// SlotCounts returns the seeded counts.
// PRE: r is valid
// POST: Records the requested range
func (m *mockCalendarStore) SlotCounts(_ context.Context, r calendar.Range) ([]calendar.SlotCount, error) {
	m.gotRange = r
	return m.counts, m.err
}

// ListRange returns the seeded blackouts.
// PRE: r is valid
// POST: Returns seeded blackouts unchanged
func (m *mockCalendarStore) ListRange(_ context.Context, _ calendar.Range) ([]blackout.Blackout, error) {
	return m.blackouts, nil
}

type mockReservationStore struct {
	rows      []domainReservation.Reservation
	gotFilter reservation.ListFilter
}

// GetByID returns a seeded reservation.
// PRE: none
// POST: Returns ErrNotFound for unknown ids
func (m *mockReservationStore) GetByID(_ context.Context, id int64) (domainReservation.Reservation, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return domainReservation.Reservation{}, domainReservation.ErrNotFound
}

// List returns the seeded reservations.
// PRE: filter is valid
// POST: Records the filter
func (m *mockReservationStore) List(_ context.Context, filter reservation.ListFilter) ([]domainReservation.Reservation, error) {
	m.gotFilter = filter
	return m.rows, nil
}

func marchRange(t *testing.T) calendar.Range {
	t.Helper()
	r, err := calendar.MonthRange(2025, 3)
	if err != nil {
		t.Fatalf("MonthRange: %v", err)
	}
	return r
}

// TestQueryPublicMonth folds slots into per-day counts.
func TestQueryPublicMonth(t *testing.T) {
	store := &mockCalendarStore{counts: []calendar.SlotCount{
		{ReservationDate: "2025-03-10", ReservationTime: "10:00", Count: 1},
		{ReservationDate: "2025-03-10", ReservationTime: "14:00", Count: 1},
		{ReservationDate: "2025-03-12", ReservationTime: "12:00", Count: 1},
	}}
	r := marchRange(t)
	days, err := QueryPublicMonth(context.Background(), PublicMonthQuery{Range: r}, PublicMonthDeps{SlotCountStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.gotRange != r {
		t.Errorf("range = %+v, want %+v", store.gotRange, r)
	}
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2", len(days))
	}
	if days[0].Count != 2 || days[0].Times != "10:00,14:00" {
		t.Errorf("day[0] = %+v", days[0])
	}
}

// TestQueryAdminMonth returns both lists, never nil.
func TestQueryAdminMonth(t *testing.T) {
	store := &mockCalendarStore{}
	res, err := QueryAdminMonth(context.Background(), AdminMonthQuery{Range: marchRange(t)},
		AdminMonthDeps{SlotCountStore: store, BlackoutStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reservations == nil || res.UnavailableDates == nil {
		t.Errorf("lists should be empty, not nil: %+v", res)
	}

	store.blackouts = []blackout.Blackout{{Date: "2025-03-20", Reason: "棚卸し"}}
	res, _ = QueryAdminMonth(context.Background(), AdminMonthQuery{Range: marchRange(t)},
		AdminMonthDeps{SlotCountStore: store, BlackoutStore: store})
	if len(res.UnavailableDates) != 1 || res.UnavailableDates[0].Reason != "棚卸し" {
		t.Errorf("UnavailableDates = %+v", res.UnavailableDates)
	}
}

// TestQueryAdminMonth_StoreError propagates failures.
func TestQueryAdminMonth_StoreError(t *testing.T) {
	boom := errors.New("db down")
	store := &mockCalendarStore{err: boom}
	_, err := QueryAdminMonth(context.Background(), AdminMonthQuery{Range: marchRange(t)},
		AdminMonthDeps{SlotCountStore: store, BlackoutStore: store})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

// TestQueryListReservations maps parsed params onto the store filter.
func TestQueryListReservations(t *testing.T) {
	store := &mockReservationStore{rows: []domainReservation.Reservation{{ID: 1}, {ID: 2}}}
	params := listutil.ParseListParams(url.Values{"status": {"pending"}, "offset": {"10"}}, []string{"status", "date"})

	res, err := QueryListReservations(context.Background(), ListReservationsQuery{ListParams: params},
		ListReservationsDeps{ReservationStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := reservation.ListFilter{Status: "pending", Limit: listutil.DefaultLimit, Offset: 10}
	if store.gotFilter != want {
		t.Errorf("filter = %+v, want %+v", store.gotFilter, want)
	}
	if res.Count != 2 {
		t.Errorf("Count = %d, want 2", res.Count)
	}
}

// TestQueryListReservations_Empty returns a non-nil slice.
func TestQueryListReservations_Empty(t *testing.T) {
	res, err := QueryListReservations(context.Background(), ListReservationsQuery{},
		ListReservationsDeps{ReservationStore: &mockReservationStore{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reservations == nil || res.Count != 0 {
		t.Errorf("got %+v", res)
	}
}

// TestQueryGetReservation covers hits, misses and invalid ids.
func TestQueryGetReservation(t *testing.T) {
	store := &mockReservationStore{rows: []domainReservation.Reservation{{ID: 5, CustomerName: "山田"}}}
	deps := GetReservationDeps{ReservationStore: store}

	r, err := QueryGetReservation(context.Background(), GetReservationQuery{ID: 5}, deps)
	if err != nil || r.CustomerName != "山田" {
		t.Errorf("got %+v, %v", r, err)
	}
	for _, id := range []int64{0, -1, 99} {
		if _, err := QueryGetReservation(context.Background(), GetReservationQuery{ID: id}, deps); !errors.Is(err, domainReservation.ErrNotFound) {
			t.Errorf("id %d: err = %v, want ErrNotFound", id, err)
		}
	}
}
