// Package store holds the post storage backends.
package store

import (
	"context"
	"errors"
	"fmt"

	"blog/domain"
)

// ErrNoMigrations is returned by Migrate for backends without a schema.
var ErrNoMigrations = errors.New("backend has no migrations")

// Open connects to the backend named by cfg.DBDriver. Any failure here
// should stop the process from serving.
func Open(ctx context.Context, cfg domain.Config) (domain.PostStore, error) {
	switch cfg.DBDriver {
	case domain.DriverMongo:
		s, err := NewMongoStore(ctx, cfg.DBURL, cfg.DBName)
		if err != nil {
			return nil, err
		}
		return s, nil
	case domain.DriverSQLite:
		s, err := NewSQLiteStore(ctx, cfg.DBURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case domain.DriverPostgres:
		s, err := NewPostgresStore(ctx, cfg.DBURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case domain.DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
}

// Migrate applies the schema migrations of SQL backends and returns.
func Migrate(ctx context.Context, cfg domain.Config) error {
	switch cfg.DBDriver {
	case domain.DriverSQLite:
		s, err := NewSQLiteStore(ctx, cfg.DBURL)
		if err != nil {
			return err
		}
		return s.Close(ctx)
	case domain.DriverPostgres:
		return migratePostgres(cfg.DBURL)
	case domain.DriverMongo, domain.DriverMemory:
		return fmt.Errorf("%s: %w", cfg.DBDriver, ErrNoMigrations)
	default:
		return fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
}
