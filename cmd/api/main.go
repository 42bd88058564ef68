package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"bookstore/internal/config"
	"bookstore/internal/logger"
	"bookstore/internal/platform/database"
	"bookstore/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, err := database.Open(ctx, cfg.Database, cfg.Log, log)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info().
		Str("driver", cfg.Database.Driver).
		Str("dsn", config.RedactDSN(cfg.Database.DSN)).
		Msg("database connection OK")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, log); err != nil {
			return err
		}
	}

	repo := server.NewBookRepository(db, cfg.Database.QueryTimeout)
	router := server.NewRouter(cfg.Server, log, db, repo)
	defer router.Close()

	return server.New(cfg.Server, router, log).Run(ctx)
}
