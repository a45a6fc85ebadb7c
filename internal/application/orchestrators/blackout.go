package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"kaitori/internal/domain/blackout"
	"kaitori/internal/domain/reservation"
)

// BlackoutStoreForAdmin defines the store interface needed by blackout orchestrators.
type BlackoutStoreForAdmin interface {
	Save(ctx context.Context, b blackout.Blackout, createdAt string) error
	Delete(ctx context.Context, date string) error
}

// --- Set Blackout ---

// SetBlackoutInput carries input for marking a date unavailable.
type SetBlackoutInput struct {
	Date   string
	Reason string
}

// SetBlackoutDeps holds dependencies for SetBlackout.
type SetBlackoutDeps struct {
	BlackoutStore BlackoutStoreForAdmin
	Now           func() time.Time
}

// ExecuteSetBlackout marks a date unavailable, replacing any earlier reason.
// Existing reservations on the date are left as they are.
// PRE: none
// POST: The date blocks new bookings
func ExecuteSetBlackout(ctx context.Context, input SetBlackoutInput, deps SetBlackoutDeps) error {
	b := blackout.Blackout{Date: strings.TrimSpace(input.Date), Reason: input.Reason}
	if err := b.Validate(); err != nil {
		return err
	}
	if err := deps.BlackoutStore.Save(ctx, b, deps.Now().UTC().Format(reservation.TimestampFormat)); err != nil {
		return err
	}
	slog.Info("blackout_set", "date", b.Date)
	return nil
}

// --- Clear Blackout ---

// ClearBlackoutInput carries input for reopening a date.
type ClearBlackoutInput struct {
	Date string
}

// ClearBlackoutDeps holds dependencies for ClearBlackout.
type ClearBlackoutDeps struct {
	BlackoutStore BlackoutStoreForAdmin
}

// ExecuteClearBlackout reopens a date. Clearing an open date succeeds.
// PRE: none
// POST: The date no longer blocks bookings
func ExecuteClearBlackout(ctx context.Context, input ClearBlackoutInput, deps ClearBlackoutDeps) error {
	date := strings.TrimSpace(input.Date)
	if date == "" {
		return blackout.ErrEmptyDate
	}
	if err := deps.BlackoutStore.Delete(ctx, date); err != nil {
		return err
	}
	slog.Info("blackout_cleared", "date", date)
	return nil
}
