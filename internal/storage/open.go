package storage

import (
	"context"
	"fmt"

	"github.com/jonathan/cv-builder/internal/db"
)

// Backend names a Store implementation.
type Backend string

const (
	BackendFile     Backend = "file"
	BackendMemory   Backend = "memory"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Backend     Backend
	Dir         string
	RedisURL    string
	RedisPrefix string
	DatabaseURL string
}

// Open connects to the configured backend. The returned close function
// releases any connection and is never nil.
func Open(ctx context.Context, opts Options) (Store, func(), error) {
	noop := func() {}
	switch opts.Backend {
	case BackendFile, "":
		s, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case BackendMemory:
		return NewMemoryStore(), noop, nil
	case BackendRedis:
		client, err := DialRedis(ctx, opts.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return NewRedisStore(client, opts.RedisPrefix), func() { _ = client.Close() }, nil
	case BackendPostgres:
		database, err := db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, noop, err
		}
		return NewPostgresStore(database), database.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend: %q", opts.Backend)
	}
}
