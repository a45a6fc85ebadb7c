package web

import (
	"net/http"

	"kaitori/internal/application/projections"
	"kaitori/internal/domain/calendar"
)

// handlePublicCalendar handles GET /api/calendar?year=&month=.
func (s *server) handlePublicCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := calendar.ParseMonth(q.Get("year"), q.Get("month"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	days, err := projections.QueryPublicMonth(r.Context(), projections.PublicMonthQuery{Range: rng},
		projections.PublicMonthDeps{SlotCountStore: s.deps.Reservations})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, days)
}

// handleAdminCalendar handles GET /api/admin/calendar with year/month or from/to.
func (s *server) handleAdminCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		rng calendar.Range
		err error
	)
	if q.Get("from") != "" || q.Get("to") != "" {
		rng, err = calendar.NewRange(q.Get("from"), q.Get("to"))
	} else {
		rng, err = calendar.ParseMonth(q.Get("year"), q.Get("month"))
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := projections.QueryAdminMonth(r.Context(), projections.AdminMonthQuery{Range: rng},
		projections.AdminMonthDeps{SlotCountStore: s.deps.Reservations, BlackoutStore: s.deps.Blackouts})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, result)
}
