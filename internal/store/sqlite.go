package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-readsync/migrations"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps *sql.DB so repositories can embed it and expose query methods
// directly.
type DB struct {
	*sql.DB
}

// NewSQLiteDB opens the local cache database at dsn, verifies the
// connection, and applies the embedded goose migrations.
//
// SQLite allows only one writer; the pool is capped at a single connection
// so concurrent readers never trip over a write lock.
func NewSQLiteDB(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local cache db: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("ping local cache db: %w", err)
	}

	if err = migrations.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate local cache db: %w", err)
	}

	return &DB{DB: db}, nil
}
