package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"kaitori/internal/application/orchestrators"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type blackoutRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// handleLogin handles POST /api/admin/login.
func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Username: req.Username,
		Password: req.Password,
	}, orchestrators.LoginDeps{AdminStore: s.deps.Admins})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

// handleSetBlackout handles POST /api/admin/unavailable-dates.
func (s *server) handleSetBlackout(w http.ResponseWriter, r *http.Request) {
	var req blackoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	err := orchestrators.ExecuteSetBlackout(r.Context(), orchestrators.SetBlackoutInput{Date: req.Date, Reason: req.Reason},
		orchestrators.SetBlackoutDeps{BlackoutStore: s.deps.Blackouts, Now: s.deps.Now})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "出張不可日を設定しました")
}

// handleClearBlackout handles DELETE /api/admin/unavailable-dates/{date}.
func (s *server) handleClearBlackout(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteClearBlackout(r.Context(), orchestrators.ClearBlackoutInput{Date: chi.URLParam(r, "date")},
		orchestrators.ClearBlackoutDeps{BlackoutStore: s.deps.Blackouts})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "出張不可日を削除しました")
}

// handlePerf handles GET /api/admin/perf?minutes=&top=.
func (s *server) handlePerf(w http.ResponseWriter, r *http.Request) {
	minutes, err := strconv.Atoi(r.URL.Query().Get("minutes"))
	if err != nil || minutes < 1 {
		minutes = 60
	}
	top, err := strconv.Atoi(r.URL.Query().Get("top"))
	if err != nil || top < 1 || top > 100 {
		top = 10
	}
	if s.deps.Collector == nil {
		writeData(w, http.StatusOK, nil)
		return
	}
	since := s.deps.Now().Add(-time.Duration(minutes) * time.Minute)
	writeData(w, http.StatusOK, s.deps.Collector.Snapshot(since, top))
}
