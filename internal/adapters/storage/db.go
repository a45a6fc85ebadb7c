package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"kaitori/internal/domain/admin"
)

// schemaStatements returns the idempotent DDL for the dialect, in execution order.
func schemaStatements(d Dialect) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS reservations (
		id %s,
		customer_name TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		customer_phone TEXT NOT NULL,
		customer_postal_code TEXT,
		customer_address TEXT NOT NULL,
		reservation_date TEXT NOT NULL,
		reservation_time TEXT NOT NULL,
		item_category TEXT NOT NULL,
		item_description TEXT,
		estimated_quantity TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		notes TEXT,
		customer_notes TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`, d.primaryKey),
		`CREATE INDEX IF NOT EXISTS idx_reservation_date ON reservations(reservation_date)`,
		`CREATE INDEX IF NOT EXISTS idx_customer_email ON reservations(customer_email)`,
		`CREATE INDEX IF NOT EXISTS idx_status ON reservations(status)`,
		`CREATE INDEX IF NOT EXISTS idx_created_at ON reservations(created_at)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS admins (
		id %s,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`, d.primaryKey),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS unavailable_dates (
		id %s,
		date TEXT UNIQUE NOT NULL,
		reason TEXT,
		created_at TEXT NOT NULL
	)`, d.primaryKey),
		`CREATE INDEX IF NOT EXISTS idx_unavailable_dates ON unavailable_dates(date)`,
	}
}

// activeSlotIndex allows one active booking per slot. Cancelled rows are outside the index.
const activeSlotIndex = `CREATE UNIQUE INDEX IF NOT EXISTS ux_reservations_active_slot
	ON reservations(reservation_date, reservation_time) WHERE status != 'cancelled'`

// additiveColumns are columns added after the first release.
var additiveColumns = []struct {
	table  string
	column string
	def    string
}{
	{"reservations", "has_parking", "TEXT"},
	{"reservations", "has_elevator", "TEXT"},
}

// EnsureSchema creates tables and indexes, then applies additive column migrations.
// PRE: db is a valid database connection
// POST: Schema is current; repeat calls are no-ops
func EnsureSchema(ctx context.Context, db Querier, d Dialect) error {
	for _, stmt := range schemaStatements(d) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	for _, c := range additiveColumns {
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.table, c.column, c.def)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if IsDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("failed to add column %s.%s: %w", c.table, c.column, err)
		}
		slog.Info("schema_migration", "table", c.table, "column", c.column)
	}
	return ensureActiveSlotIndex(ctx, db)
}

// ensureActiveSlotIndex creates the active-slot index unless legacy rows already
// hold two active bookings for one slot. In that case the index is skipped with a
// warning and admission relies on the transactional count check until staff
// cancel the duplicates; the next startup then creates the index.
func ensureActiveSlotIndex(ctx context.Context, db Querier) error {
	dups, err := duplicateActiveSlots(ctx, db)
	if err != nil {
		return err
	}
	if len(dups) > 0 {
		slog.Warn("schema_duplicate_slots",
			"index", "ux_reservations_active_slot",
			"count", len(dups),
			"slots", dups,
		)
		return nil
	}
	if _, err := db.ExecContext(ctx, activeSlotIndex); err != nil {
		return fmt.Errorf("failed to create active slot index: %w", err)
	}
	return nil
}

// duplicateActiveSlots lists "date time" pairs held by more than one non-cancelled row.
func duplicateActiveSlots(ctx context.Context, db Querier) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT reservation_date, reservation_time
		FROM reservations
		WHERE status != 'cancelled'
		GROUP BY reservation_date, reservation_time
		HAVING COUNT(*) > 1
		ORDER BY reservation_date, reservation_time`)
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicate slots: %w", err)
	}
	defer rows.Close()

	var dups []string
	for rows.Next() {
		var date, slot string
		if err := rows.Scan(&date, &slot); err != nil {
			return nil, fmt.Errorf("failed to scan duplicate slot: %w", err)
		}
		dups = append(dups, date+" "+slot)
	}
	return dups, rows.Err()
}

// AdminSeed is the default back-office credential written on first run.
type AdminSeed struct {
	Username string
	Password string
}

// SeedAdmin inserts the default admin unless the username already exists.
// An existing row keeps its stored hash.
// PRE: schema exists
// POST: Exactly one admin row with seed.Username exists
func SeedAdmin(ctx context.Context, db Querier, d Dialect, seed AdminSeed, now time.Time) error {
	a := admin.Admin{Username: seed.Username}
	if err := a.Validate(); err != nil {
		return err
	}
	if err := a.SetPassword(seed.Password); err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	_, err := db.ExecContext(ctx,
		d.Rebind("INSERT INTO admins (username, password_hash, created_at) VALUES (?, ?, ?) ON CONFLICT(username) DO NOTHING"),
		a.Username, a.PasswordHash, now.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	return nil
}

// Initializer runs schema setup and seeding once per process.
type Initializer struct {
	db      Querier
	dialect Dialect
	seed    AdminSeed
	now     func() time.Time

	once sync.Once
	err  error
}

// NewInitializer creates an Initializer for db.
// PRE: db is a valid database connection
// POST: nothing is executed until Ensure is called
func NewInitializer(db Querier, d Dialect, seed AdminSeed) *Initializer {
	return &Initializer{db: db, dialect: d, seed: seed, now: time.Now}
}

// Ensure runs EnsureSchema and SeedAdmin on first call.
// Later calls return the first result without touching the database.
// PRE: ctx is valid
// POST: returns nil once the schema is ready
func (i *Initializer) Ensure(ctx context.Context) error {
	i.once.Do(func() {
		start := time.Now()
		if err := EnsureSchema(ctx, i.db, i.dialect); err != nil {
			i.err = err
			return
		}
		if err := SeedAdmin(ctx, i.db, i.dialect, i.seed, i.now()); err != nil {
			i.err = err
			return
		}
		slog.Info("schema_ready", "driver", i.dialect.Driver, "duration_ms", time.Since(start).Milliseconds())
	})
	return i.err
}
