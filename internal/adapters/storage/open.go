package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// sqlitePragmas are applied to every pooled SQLite connection.
// _txlock=immediate makes BEGIN take the write lock, serialising admission transactions.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)&_txlock=immediate"

// SQLiteDSN appends the connection pragmas unless dsn already has a query string.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?" + sqlitePragmas
}

// Open opens and pings a database for the dialect.
// PRE: dsn is a driver-specific connection string
// POST: Returns a live pool limited to maxOpen connections
func Open(ctx context.Context, d Dialect, dsn string, maxOpen int) (*sql.DB, error) {
	if d.Driver == SQLite.Driver {
		dsn = SQLiteDSN(dsn)
	}
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxOpen)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return db, nil
}
