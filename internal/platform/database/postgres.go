package database

import (
	"context"
	"fmt"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"bookstore/internal/config"
	"bookstore/internal/logger"
)

// OpenPostgres creates a pgx pool for cfg.DSN. When logCfg.SQL is set every
// statement is traced through the application logger.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig, logCfg config.LogConfig, log zerolog.Logger) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}
	poolConfig.MaxConns = cfg.MaxConns

	if logCfg.SQL {
		sqlLogger := log.With().Str("component", "pgx").Logger()
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(sqlLogger),
			LogLevel: logger.PgxTraceLogLevel(log.GetLevel()),
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database (%s): %w", config.RedactDSN(cfg.DSN), err)
	}

	return &DB{
		Driver: DriverPostgres,
		SQL:    stdlib.OpenDBFromPool(pool),
		Pool:   pool,
	}, nil
}
