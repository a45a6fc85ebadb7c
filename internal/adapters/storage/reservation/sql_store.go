package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"kaitori/internal/adapters/storage"
	"kaitori/internal/domain/calendar"
	domain "kaitori/internal/domain/reservation"
)

// selectColumns maps nullable columns to empty strings for struct scanning.
const selectColumns = `id, customer_name, customer_email, customer_phone,
	COALESCE(customer_postal_code, '') AS customer_postal_code, customer_address,
	reservation_date, reservation_time, item_category,
	COALESCE(item_description, '') AS item_description,
	COALESCE(estimated_quantity, '') AS estimated_quantity,
	COALESCE(has_parking, '') AS has_parking,
	COALESCE(has_elevator, '') AS has_elevator,
	status, COALESCE(notes, '') AS notes, COALESCE(customer_notes, '') AS customer_notes,
	created_at, updated_at`

// SQLStore implements Store over database/sql for either dialect.
type SQLStore struct {
	db      storage.SQLDB
	dialect storage.Dialect
}

// NewSQLStore creates a new reservation store.
func NewSQLStore(db storage.SQLDB, dialect storage.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// Insert stores a new reservation and returns its assigned ID.
// PRE: r has been admitted
// POST: Returns domain.ErrSlotFull if the active slot index rejects the row
func (s *SQLStore) Insert(ctx context.Context, q storage.Querier, r domain.Reservation) (int64, error) {
	query := s.dialect.Rebind(`INSERT INTO reservations (
		customer_name, customer_email, customer_phone, customer_postal_code, customer_address,
		reservation_date, reservation_time, item_category, item_description, estimated_quantity,
		customer_notes, has_parking, has_elevator, status, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)

	var id int64
	err := q.QueryRowContext(ctx, query,
		r.CustomerName, r.CustomerEmail, r.CustomerPhone, nullable(r.CustomerPostalCode), r.CustomerAddress,
		r.ReservationDate, r.ReservationTime, r.ItemCategory, r.ItemDescription, r.EstimatedQuantity,
		nullable(r.CustomerNotes), r.HasParking, r.HasElevator, r.Status, r.CreatedAt, r.UpdatedAt,
	).Scan(&id)
	if storage.IsUniqueViolation(err) {
		return 0, fmt.Errorf("insert reservation: %w", domain.ErrSlotFull)
	}
	if err != nil {
		return 0, fmt.Errorf("insert reservation: %w", err)
	}
	return id, nil
}

// CountActiveInSlot counts non-cancelled reservations for (date, slot).
// PRE: q is the admission transaction or the pool
// POST: Returns count >= 0
func (s *SQLStore) CountActiveInSlot(ctx context.Context, q storage.Querier, date, slot string) (int, error) {
	var n int
	err := q.QueryRowContext(ctx,
		s.dialect.Rebind("SELECT COUNT(*) FROM reservations WHERE reservation_date = ? AND reservation_time = ? AND status != 'cancelled'"),
		date, slot,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count slot reservations: %w", err)
	}
	return n, nil
}

// CountActiveOnDate counts non-cancelled reservations for date.
// PRE: q is the admission transaction or the pool
// POST: Returns count >= 0
func (s *SQLStore) CountActiveOnDate(ctx context.Context, q storage.Querier, date string) (int, error) {
	var n int
	err := q.QueryRowContext(ctx,
		s.dialect.Rebind("SELECT COUNT(*) FROM reservations WHERE reservation_date = ? AND status != 'cancelled'"),
		date,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count date reservations: %w", err)
	}
	return n, nil
}

// GetByID retrieves a Reservation by its ID.
// PRE: id > 0
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLStore) GetByID(ctx context.Context, id int64) (domain.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind("SELECT "+selectColumns+" FROM reservations WHERE id = ?"), id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	defer rows.Close()

	var found []domain.Reservation
	if err := sqlx.StructScan(rows, &found); err != nil {
		return domain.Reservation{}, fmt.Errorf("scan reservation: %w", err)
	}
	if len(found) == 0 {
		return domain.Reservation{}, fmt.Errorf("reservation %d: %w", id, domain.ErrNotFound)
	}
	return found[0], nil
}

// List retrieves reservations, newest slot first.
// Rows sharing a slot keep insertion order.
// PRE: filter.Limit > 0, filter.Offset >= 0
// POST: Returns at most filter.Limit entities
func (s *SQLStore) List(ctx context.Context, filter ListFilter) ([]domain.Reservation, error) {
	query := "SELECT " + selectColumns + " FROM reservations WHERE 1=1"
	var args []any
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Date != "" {
		query += " AND reservation_date = ?"
		args = append(args, filter.Date)
	}
	query += " ORDER BY reservation_date DESC, reservation_time DESC, id ASC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	results := []domain.Reservation{}
	if err := sqlx.StructScan(rows, &results); err != nil {
		return nil, fmt.Errorf("scan reservations: %w", err)
	}
	return results, nil
}

// Update applies a partial patch and refreshes updated_at.
// PRE: patch has been normalized and validated
// POST: domain.ErrNotFound if no row matched; domain.ErrSlotFull if the target slot is taken
func (s *SQLStore) Update(ctx context.Context, id int64, patch domain.Patch, now time.Time) error {
	sets := []string{"updated_at = ?"}
	args := []any{now.UTC().Format(domain.TimestampFormat)}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, nullable(*patch.Notes))
	}
	if patch.ReservationDate != nil {
		sets = append(sets, "reservation_date = ?")
		args = append(args, *patch.ReservationDate)
	}
	if patch.ReservationTime != nil {
		sets = append(sets, "reservation_time = ?")
		args = append(args, *patch.ReservationTime)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE reservations SET %s WHERE id = ?", strings.Join(sets, ", "))
	res, err := s.db.ExecContext(ctx, s.dialect.Rebind(query), args...)
	if storage.IsUniqueViolation(err) {
		return fmt.Errorf("update reservation %d: %w", id, domain.ErrSlotFull)
	}
	if err != nil {
		return fmt.Errorf("update reservation %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reservation %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("reservation %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a Reservation. Deleting a missing id is not an error.
// PRE: none
// POST: No row with id exists
func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.Rebind("DELETE FROM reservations WHERE id = ?"), id); err != nil {
		return fmt.Errorf("delete reservation %d: %w", id, err)
	}
	return nil
}

// SlotCounts aggregates non-cancelled reservations per (date, time) in r.
// PRE: r.From < r.To
// POST: Ordered by date then time
func (s *SQLStore) SlotCounts(ctx context.Context, r calendar.Range) ([]calendar.SlotCount, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(`
		SELECT reservation_date, reservation_time, COUNT(*) AS count
		FROM reservations
		WHERE reservation_date >= ? AND reservation_date < ? AND status != 'cancelled'
		GROUP BY reservation_date, reservation_time
		ORDER BY reservation_date, reservation_time`),
		r.From, r.To,
	)
	if err != nil {
		return nil, fmt.Errorf("slot counts: %w", err)
	}
	defer rows.Close()

	counts := []calendar.SlotCount{}
	if err := sqlx.StructScan(rows, &counts); err != nil {
		return nil, fmt.Errorf("scan slot counts: %w", err)
	}
	return counts, nil
}

// nullable stores empty optional text as NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

