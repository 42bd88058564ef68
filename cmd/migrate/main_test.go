package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore/internal/platform/database"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cli := &CLI{}
	parser, err := newParser(cli)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	err = kctx.Run(&env{ctx: context.Background(), log: zerolog.Nop(), out: &out})
	return out.String(), err
}

func useMemoryDatabase(t *testing.T) {
	t.Setenv("BOOKSTORE_DATABASE_DRIVER", "sqlite")
	t.Setenv("BOOKSTORE_DATABASE_DSN", ":memory:")
}

func TestCreate_DefaultsToEmbeddedMigrationsDir(t *testing.T) {
	cli := &CLI{}
	parser, err := newParser(cli)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"create", "add_books_subtitle"})
	require.NoError(t, err)

	assert.Equal(t, database.MigrationsDir, cli.Create.Dir)
	assert.Equal(t, "add_books_subtitle", cli.Create.Name)
}

func TestCreate_MigrationsDirEnvOverride(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "/custom/migrations")
	cli := &CLI{}
	parser, err := newParser(cli)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"create", "add_books_subtitle"})
	require.NoError(t, err)

	assert.Equal(t, "/custom/migrations", cli.Create.Dir)
}

func TestCreate_WritesSequentialGooseFile(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, "create", "add_books_subtitle", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Migration created: add_books_subtitle")

	matches, err := filepath.Glob(filepath.Join(dir, "*_add_books_subtitle.sql"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.True(t, strings.HasPrefix(filepath.Base(matches[0]), "00001_"))

	b, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), "-- +goose Up")
	assert.Contains(t, string(b), "-- +goose Down")
}

func TestUp_AppliesEmbeddedMigrations(t *testing.T) {
	useMemoryDatabase(t)

	out, err := runCLI(t, "up")

	require.NoError(t, err)
	assert.Contains(t, out, "00001_create_books.sql")
	assert.Contains(t, out, "Migrations applied successfully")
}

func TestStatus_ListsPendingMigrations(t *testing.T) {
	useMemoryDatabase(t)

	out, err := runCLI(t, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "00001_create_books.sql")
}

func TestUp_RejectsInvalidConfig(t *testing.T) {
	t.Setenv("BOOKSTORE_DATABASE_DRIVER", "mysql")

	_, err := runCLI(t, "up")

	assert.ErrorContains(t, err, "invalid config")
}
