package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

// MigrationsDir is the on-disk location of the embedded migrations,
// relative to the repository root. New migrations are created here.
const MigrationsDir = "internal/platform/database/migrations"

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrations returns the embedded migration files.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewProvider returns a goose provider over the embedded migrations.
func NewProvider(db *sql.DB, dialect goose.Dialect) (*goose.Provider, error) {
	provider, err := goose.NewProvider(dialect, db, Migrations())
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, d *DB, logger zerolog.Logger) error {
	provider, err := NewProvider(d.SQL, d.Dialect())
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, res := range results {
		logger.Info().
			Int64("version", res.Source.Version).
			Str("file", res.Source.Path).
			Dur("duration", res.Duration).
			Msg("migration applied")
	}
	if len(results) == 0 {
		logger.Debug().Msg("database schema is up to date")
	}
	return nil
}
