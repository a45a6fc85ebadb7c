package orchestrators

import (
	"context"
	"log/slog"
)

// DeleteReservationInput carries input for the delete orchestrator.
type DeleteReservationInput struct {
	ID int64
}

// DeleteReservationDeps holds dependencies for DeleteReservation.
type DeleteReservationDeps struct {
	ReservationStore ReservationStoreForAdmin
}

// ExecuteDeleteReservation hard-deletes a reservation.
// PRE: none
// POST: No reservation with input.ID exists; deleting a missing id succeeds
func ExecuteDeleteReservation(ctx context.Context, input DeleteReservationInput, deps DeleteReservationDeps) error {
	if err := deps.ReservationStore.Delete(ctx, input.ID); err != nil {
		return err
	}
	slog.Info("reservation_deleted", "id", input.ID)
	return nil
}
