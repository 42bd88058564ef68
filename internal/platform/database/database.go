// Package database opens the configured SQL backend and applies its migrations.
//
// PostgreSQL runs on a pgx pool; SQLite runs on the pure-Go modernc driver.
// Both expose a *sql.DB so goose can migrate either one.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"bookstore/internal/config"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	pingTimeout = 2 * time.Second
)

// DB is an open database handle.
type DB struct {
	Driver string
	// SQL is always set. For PostgreSQL it shares the pgx pool.
	SQL *sql.DB
	// Pool is nil unless Driver is DriverPostgres.
	Pool *pgxpool.Pool
}

// Open connects to the backend selected by cfg.Driver and verifies it with a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig, logCfg config.LogConfig, logger zerolog.Logger) (*DB, error) {
	switch cfg.Driver {
	case DriverPostgres:
		return OpenPostgres(ctx, cfg, logCfg, logger)
	case DriverSQLite:
		return OpenSQLite(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Dialect returns the goose dialect for the handle's driver.
func (d *DB) Dialect() goose.Dialect {
	if d.Driver == DriverSQLite {
		return goose.DialectSQLite3
	}
	return goose.DialectPostgres
}

// Ping reports whether the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	if d.Pool != nil {
		return d.Pool.Ping(ctx)
	}
	return d.SQL.PingContext(ctx)
}

// Close releases every connection held by the handle.
func (d *DB) Close() {
	if d == nil {
		return
	}
	if d.SQL != nil {
		_ = d.SQL.Close()
	}
	if d.Pool != nil {
		d.Pool.Close()
	}
}
