package web

import (
	"net/http"

	"kaitori/internal/domain/area"
)

type checkAreaRequest struct {
	PostalCode string `json:"postal_code"`
	Address    string `json:"address"`
}

// handleCheckArea handles POST /api/check-area.
// An address outside the area is a successful check with isValid=false.
func (s *server) handleCheckArea(w http.ResponseWriter, r *http.Request) {
	var req checkAreaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	valid := area.IsServiceable(req.PostalCode, req.Address)
	msg := area.MessageServiceable
	if !valid {
		msg = area.ErrOutsideArea.Error()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"isValid": valid,
		"message": msg,
	})
}
