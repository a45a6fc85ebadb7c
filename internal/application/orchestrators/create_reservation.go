package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kaitori/internal/adapters/storage"
	"kaitori/internal/domain/area"
	"kaitori/internal/domain/calendar"
	"kaitori/internal/domain/reservation"
)

// Transactor runs fn inside one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(q storage.Querier) error) error
}

// ReservationStoreForCreate defines the store interface needed by CreateReservation.
type ReservationStoreForCreate interface {
	Insert(ctx context.Context, q storage.Querier, r reservation.Reservation) (int64, error)
	CountActiveInSlot(ctx context.Context, q storage.Querier, date, slot string) (int, error)
	CountActiveOnDate(ctx context.Context, q storage.Querier, date string) (int, error)
}

// BlackoutChecker reports whether a date is closed for visits.
type BlackoutChecker interface {
	Exists(ctx context.Context, q storage.Querier, date string) (bool, error)
}

// CreateReservationInput carries input for the create orchestrator.
type CreateReservationInput struct {
	Candidate reservation.Candidate
}

// CreateReservationDeps holds dependencies for CreateReservation.
type CreateReservationDeps struct {
	Tx               Transactor
	ReservationStore ReservationStoreForCreate
	BlackoutStore    BlackoutChecker
	// Notify is called after commit. Nil disables confirmations.
	Notify   func(ctx context.Context, r reservation.Reservation) error
	Now      func() time.Time
	Location *time.Location
}

// ExecuteCreateReservation admits or denies a booking request.
// Checks run in order and the first failure is returned: fields and format,
// past date, service area, blackout, slot capacity, day capacity.
// PRE: deps are non-nil except Notify
// POST: On success the stored pending reservation is returned with its ID
// INVARIANT: At most one active reservation per slot and MaxPerDay per date
func ExecuteCreateReservation(ctx context.Context, input CreateReservationInput, deps CreateReservationDeps) (reservation.Reservation, error) {
	c := input.Candidate
	now := deps.Now()

	if err := c.Validate(calendar.Today(now, deps.Location)); err != nil {
		return reservation.Reservation{}, deny(c, err)
	}
	if err := c.CheckArea(); err != nil {
		return reservation.Reservation{}, deny(c, err)
	}

	r := reservation.NewReservation(c, now)
	err := deps.Tx.WithinTx(ctx, func(q storage.Querier) error {
		blocked, err := deps.BlackoutStore.Exists(ctx, q, r.ReservationDate)
		if err != nil {
			return err
		}
		if blocked {
			return reservation.ErrDateUnavailable
		}

		slotCount, err := deps.ReservationStore.CountActiveInSlot(ctx, q, r.ReservationDate, r.ReservationTime)
		if err != nil {
			return err
		}
		dayCount, err := deps.ReservationStore.CountActiveOnDate(ctx, q, r.ReservationDate)
		if err != nil {
			return err
		}
		if err := reservation.CheckCapacity(slotCount, dayCount); err != nil {
			return err
		}

		id, err := deps.ReservationStore.Insert(ctx, q, r)
		if err != nil {
			return err
		}
		r.ID = id
		return nil
	})
	if err != nil {
		if denialReason(err) != "" {
			return reservation.Reservation{}, deny(c, err)
		}
		return reservation.Reservation{}, fmt.Errorf("create reservation: %w", err)
	}

	slog.Info("reservation_created", "id", r.ID, "date", r.ReservationDate, "time", r.ReservationTime)

	if deps.Notify != nil {
		if err := deps.Notify(ctx, r); err != nil {
			slog.Warn("confirmation_failed", "id", r.ID, "error", err)
		}
	}
	return r, nil
}

// deny logs a rejected candidate and returns err unchanged.
func deny(c reservation.Candidate, err error) error {
	slog.Info("admission_denied",
		"reason", denialReason(err),
		"date", c.ReservationDate,
		"time", c.ReservationTime,
	)
	return err
}

var denialReasons = []struct {
	err    error
	reason string
}{
	{reservation.ErrMissingFields, "missing_fields"},
	{reservation.ErrInvalidDate, "invalid_date"},
	{reservation.ErrInvalidSlot, "invalid_slot"},
	{reservation.ErrInvalidLogistics, "invalid_logistics"},
	{reservation.ErrPastDate, "past_date"},
	{area.ErrOutsideArea, "outside_area"},
	{reservation.ErrDateUnavailable, "date_unavailable"},
	{reservation.ErrSlotFull, "slot_full"},
	{reservation.ErrDayFull, "day_full"},
}

// denialReason returns a log code for admission errors, or "" for anything else.
func denialReason(err error) string {
	for _, d := range denialReasons {
		if errors.Is(err, d.err) {
			return d.reason
		}
	}
	return ""
}
