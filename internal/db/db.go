// Package db provides PostgreSQL access for saved CV snapshots.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoRows is returned when a key has no stored value.
var ErrNoRows = errors.New("no value stored for key")

// DefaultTable stores key/value pairs.
const DefaultTable = "cv_store"

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool  *pgxpool.Pool
	table string
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool, table: DefaultTable}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the key/value table when it does not exist.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, pgx.Identifier{db.table}.Sanitize()))
	if err != nil {
		return fmt.Errorf("failed to migrate %s: %w", db.table, err)
	}
	return nil
}

// GetValue returns the JSON stored under key, or ErrNoRows.
func (db *DB) GetValue(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := db.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, pgx.Identifier{db.table}.Sanitize()),
		key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

// PutValue upserts the JSON value for key.
func (db *DB) PutValue(ctx context.Context, key string, value []byte) error {
	_, err := db.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`, pgx.Identifier{db.table}.Sanitize()),
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

// DeleteValue removes key. Deleting a missing key is not an error.
func (db *DB) DeleteValue(ctx context.Context, key string) error {
	_, err := db.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, pgx.Identifier{db.table}.Sanitize()),
		key,
	)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
