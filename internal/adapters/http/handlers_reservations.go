package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kaitori/internal/application/listutil"
	"kaitori/internal/application/orchestrators"
	"kaitori/internal/application/projections"
	"kaitori/internal/domain/reservation"
)

// createReservationRequest is the booking form body.
type createReservationRequest struct {
	CustomerName       string     `json:"customer_name"`
	CustomerEmail      string     `json:"customer_email"`
	CustomerPhone      string     `json:"customer_phone"`
	CustomerPostalCode string     `json:"customer_postal_code"`
	CustomerAddress    string     `json:"customer_address"`
	ReservationDate    string     `json:"reservation_date"`
	ReservationTime    string     `json:"reservation_time"`
	ItemCategory       flexString `json:"item_category"`
	ItemDescription    string     `json:"item_description"`
	EstimatedQuantity  flexString `json:"estimated_quantity"`
	CustomerNotes      string     `json:"customer_notes"`
	HasParking         string     `json:"has_parking"`
	HasElevator        string     `json:"has_elevator"`
}

func (req createReservationRequest) candidate() reservation.Candidate {
	return reservation.Candidate{
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		CustomerPostalCode: req.CustomerPostalCode,
		CustomerAddress:    req.CustomerAddress,
		ReservationDate:    req.ReservationDate,
		ReservationTime:    req.ReservationTime,
		ItemCategory:       string(req.ItemCategory),
		ItemDescription:    req.ItemDescription,
		EstimatedQuantity:  string(req.EstimatedQuantity),
		CustomerNotes:      req.CustomerNotes,
		HasParking:         req.HasParking,
		HasElevator:        req.HasElevator,
	}
}

// updateReservationRequest is the admin edit body. Absent and null fields are nil,
// except notes, where null clears the stored value.
type updateReservationRequest struct {
	Status          *string        `json:"status"`
	Notes           optionalString `json:"notes"`
	ReservationDate *string        `json:"reservation_date"`
	ReservationTime *string        `json:"reservation_time"`
}

// handleListReservations handles GET /api/reservations.
func (s *server) handleListReservations(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), []string{"status", "date"})
	result, err := projections.QueryListReservations(r.Context(), projections.ListReservationsQuery{ListParams: params},
		projections.ListReservationsDeps{ReservationStore: s.deps.Reservations})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    result.Reservations,
		"count":   result.Count,
	})
}

// handleGetReservation handles GET /api/reservations/{id}.
func (s *server) handleGetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, reservation.ErrNotFound)
		return
	}
	res, err := projections.QueryGetReservation(r.Context(), projections.GetReservationQuery{ID: id},
		projections.GetReservationDeps{ReservationStore: s.deps.Reservations})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

// handleCreateReservation handles POST /api/reservations.
func (s *server) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := orchestrators.ExecuteCreateReservation(r.Context(), orchestrators.CreateReservationInput{
		Candidate: req.candidate(),
	}, orchestrators.CreateReservationDeps{
		Tx:               s.deps.Tx,
		ReservationStore: s.deps.Reservations,
		BlackoutStore:    s.deps.Blackouts,
		Notify:           s.deps.Notify,
		Now:              s.deps.Now,
		Location:         s.deps.Location,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, res)
}

// handleUpdateReservation handles PUT /api/reservations/{id}.
func (s *server) handleUpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, reservation.ErrNotFound)
		return
	}
	var req updateReservationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	err := orchestrators.ExecuteUpdateReservation(r.Context(), orchestrators.UpdateReservationInput{
		ID: id,
		Patch: reservation.Patch{
			Status:          req.Status,
			Notes:           req.Notes.ptr(),
			ReservationDate: req.ReservationDate,
			ReservationTime: req.ReservationTime,
		},
	}, orchestrators.UpdateReservationDeps{ReservationStore: s.deps.Reservations, Now: s.deps.Now})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "予約を更新しました")
}

// handleDeleteReservation handles DELETE /api/reservations/{id}.
func (s *server) handleDeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, reservation.ErrNotFound)
		return
	}
	err := orchestrators.ExecuteDeleteReservation(r.Context(), orchestrators.DeleteReservationInput{ID: id},
		orchestrators.DeleteReservationDeps{ReservationStore: s.deps.Reservations})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "予約を削除しました")
}
