package server

import (
	"time"

	"bookstore/internal/book"
	"bookstore/internal/platform/database"
)

// NewBookRepository picks the book store matching the database driver.
func NewBookRepository(db *database.DB, queryTimeout time.Duration) book.Repository {
	if db.Driver == database.DriverSQLite {
		return book.NewSQLiteRepo(db.SQL, queryTimeout)
	}
	return book.NewPostgresRepo(db.Pool, queryTimeout)
}
