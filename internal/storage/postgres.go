package storage

import (
	"context"
	"errors"

	"github.com/jonathan/cv-builder/internal/db"
)

// PostgresStore keeps values in a PostgreSQL key/value table.
type PostgresStore struct {
	db *db.DB
}

// NewPostgresStore wraps a connected database.
func NewPostgresStore(database *db.DB) *PostgresStore {
	return &PostgresStore{db: database}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.db.GetValue(ctx, key)
	if errors.Is(err, db.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	return s.db.PutValue(ctx, key, value)
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	return s.db.DeleteValue(ctx, key)
}
