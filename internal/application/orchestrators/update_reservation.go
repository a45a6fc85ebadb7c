package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"kaitori/internal/domain/reservation"
)

// ReservationStoreForAdmin defines the store interface needed by admin edits.
type ReservationStoreForAdmin interface {
	Update(ctx context.Context, id int64, patch reservation.Patch, now time.Time) error
	Delete(ctx context.Context, id int64) error
}

// UpdateReservationInput carries input for the update orchestrator.
type UpdateReservationInput struct {
	ID    int64
	Patch reservation.Patch
}

// UpdateReservationDeps holds dependencies for UpdateReservation.
type UpdateReservationDeps struct {
	ReservationStore ReservationStoreForAdmin
	Now              func() time.Time
}

// ExecuteUpdateReservation applies an admin patch.
// The past-date cutoff does not apply; staff may move bookings freely.
// PRE: input.ID > 0
// POST: Only supplied fields change; ErrNotFound for unknown ids, ErrSlotFull on collision
func ExecuteUpdateReservation(ctx context.Context, input UpdateReservationInput, deps UpdateReservationDeps) error {
	patch := input.Patch.Normalize()
	if err := patch.Validate(); err != nil {
		return err
	}
	if err := deps.ReservationStore.Update(ctx, input.ID, patch, deps.Now()); err != nil {
		return err
	}

	attrs := []any{"id", input.ID}
	if patch.Status != nil {
		attrs = append(attrs, "status", *patch.Status)
	}
	if patch.ReservationDate != nil || patch.ReservationTime != nil {
		attrs = append(attrs, "moved", true)
	}
	slog.Info("reservation_updated", attrs...)
	return nil
}
