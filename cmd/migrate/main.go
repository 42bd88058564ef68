package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"bookstore/internal/config"
	"bookstore/internal/logger"
	"bookstore/internal/platform/database"
)

// CLI is the migrate command tree.
type CLI struct {
	Up     UpCmd     `cmd:"" default:"1" help:"Apply every pending migration"`
	Down   DownCmd   `cmd:"" help:"Roll back the most recent migration"`
	Status StatusCmd `cmd:"" help:"Show the state of every migration"`
	Create CreateCmd `cmd:"" help:"Create a new sequential SQL migration"`
}

// env carries what every command needs at run time.
type env struct {
	ctx context.Context
	log zerolog.Logger
	out io.Writer
}

type UpCmd struct{}

func (c *UpCmd) Run(e *env) error {
	return withProvider(e, func(p *goose.Provider) error {
		results, err := p.Up(e.ctx)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		for _, res := range results {
			fmt.Fprintf(e.out, "OK   %s (%s)\n", res.Source.Path, res.Duration)
		}
		fmt.Fprintln(e.out, "Migrations applied successfully")
		return nil
	})
}

type DownCmd struct{}

func (c *DownCmd) Run(e *env) error {
	return withProvider(e, func(p *goose.Provider) error {
		res, err := p.Down(e.ctx)
		if err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		fmt.Fprintf(e.out, "OK   %s (%s)\n", res.Source.Path, res.Duration)
		fmt.Fprintln(e.out, "Migration rolled back successfully")
		return nil
	})
}

type StatusCmd struct{}

func (c *StatusCmd) Run(e *env) error {
	return withProvider(e, func(p *goose.Provider) error {
		statuses, err := p.Status(e.ctx)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		for _, st := range statuses {
			applied := "Pending"
			if !st.AppliedAt.IsZero() {
				applied = st.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(e.out, "%-20s %-8s %s\n", applied, st.State, st.Source.Path)
		}
		return nil
	})
}

type CreateCmd struct {
	Name string `arg:"" help:"Migration name, e.g. add_books_subtitle"`
	Dir  string `help:"Directory the migration is written to" default:"${migrations_dir}" env:"MIGRATIONS_DIR"`
}

func (c *CreateCmd) Run(e *env) error {
	goose.SetSequential(true)
	if err := goose.Create(nil, c.Dir, c.Name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}
	fmt.Fprintf(e.out, "Migration created: %s\n", c.Name)
	return nil
}

// withProvider opens the configured database and hands fn a goose provider
// over the embedded migrations.
func withProvider(e *env, fn func(*goose.Provider) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.Open(e.ctx, cfg.Database, cfg.Log, e.log)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := database.NewProvider(db.SQL, db.Dialect())
	if err != nil {
		return err
	}
	return fn(provider)
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("migrate"),
		kong.Description("Manage the bookstore database schema."),
		kong.UsageOnError(),
		kong.Vars{"migrations_dir": database.MigrationsDir},
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	config.LoadEnvFiles()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &CLI{}
	parser, err := newParser(cli)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	log := logger.NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr}, "info")
	err = kctx.Run(&env{ctx: ctx, log: log, out: os.Stdout})
	if err != nil {
		log.Error().Err(err).Msg("migrate failed")
		os.Exit(1)
	}
}
