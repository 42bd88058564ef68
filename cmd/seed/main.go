package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"bookstore/internal/book"
	"bookstore/internal/config"
	"bookstore/internal/logger"
	"bookstore/internal/platform/database"
	"bookstore/internal/server"
)

var sampleBooks = []book.Book{
	{
		ISBN:      "9781484249666",
		AmazonURL: "https://a.co/d/5MYO6uT",
		Author:    "Francesco Strazzullo",
		Language:  "English",
		Pages:     265,
		Publisher: "Apress",
		Title:     "Frameworkless Front-End Development",
		Year:      2019,
	},
	{
		ISBN:      "9781803234502",
		AmazonURL: "https://a.co/d/4xhy6Hv",
		Author:    "Maximilian Schwarzmuller",
		Language:  "English",
		Pages:     590,
		Publisher: "Packt Publishing",
		Title:     "React Key Concepts",
		Year:      2022,
	},
	{
		ISBN:      "9780134190440",
		AmazonURL: "https://a.co/d/0bmgxuP",
		Author:    "Alan A. A. Donovan",
		Language:  "English",
		Pages:     380,
		Publisher: "Addison-Wesley",
		Title:     "The Go Programming Language",
		Year:      2015,
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg)
	ctx := context.Background()

	db, err := database.Open(ctx, cfg.Database, cfg.Log, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, log); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	repo := server.NewBookRepository(db, cfg.Database.QueryTimeout)
	inserted, err := seed(ctx, repo, sampleBooks, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed books")
	}
	log.Info().Int("inserted", inserted).Int("total", len(sampleBooks)).Msg("seed complete")
}

// seed inserts books, skipping any isbn that is already stored.
func seed(ctx context.Context, repo book.Repository, books []book.Book, log zerolog.Logger) (int, error) {
	inserted := 0
	for _, b := range books {
		if _, err := repo.Create(ctx, b); err != nil {
			if errors.Is(err, book.ErrAlreadyExists) {
				log.Debug().Str("isbn", b.ISBN).Msg("book already exists, skipping")
				continue
			}
			return inserted, fmt.Errorf("insert %s: %w", b.ISBN, err)
		}
		inserted++
	}
	return inserted, nil
}
