package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepo stores books in an embedded SQLite database.
type SQLiteRepo struct {
	db      *sql.DB
	timeout time.Duration
}

func NewSQLiteRepo(db *sql.DB, timeout time.Duration) *SQLiteRepo {
	return &SQLiteRepo{db: db, timeout: timeout}
}

func (r *SQLiteRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLiteRepo) List(ctx context.Context) ([]Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books ORDER BY title, isbn`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.QueryContext(timeoutCtx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		b, err := scanSQL(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE isbn = ?`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanSQL(r.db.QueryRowContext(timeoutCtx, query, isbn))
}

func (r *SQLiteRepo) Create(ctx context.Context, b Book) (Book, error) {
	const query = `
		INSERT INTO books (isbn, amazon_url, author, language, pages, publisher, title, year)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	created, err := scanSQL(r.db.QueryRowContext(timeoutCtx, query,
		b.ISBN, b.AmazonURL, b.Author, b.Language, b.Pages, b.Publisher, b.Title, b.Year,
	))
	if err != nil {
		if isSQLiteDuplicate(err) {
			return Book{}, ErrAlreadyExists
		}
		return Book{}, fmt.Errorf("insert book: %w", err)
	}
	return created, nil
}

func (r *SQLiteRepo) Update(ctx context.Context, isbn string, b Book) (Book, error) {
	const query = `
		UPDATE books SET
			amazon_url = ?,
			author = ?,
			language = ?,
			pages = ?,
			publisher = ?,
			title = ?,
			year = ?
		WHERE isbn = ?
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	updated, err := scanSQL(r.db.QueryRowContext(timeoutCtx, query,
		b.AmazonURL, b.Author, b.Language, b.Pages, b.Publisher, b.Title, b.Year, isbn,
	))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Book{}, fmt.Errorf("update book: %w", err)
	}
	return updated, err
}

func (r *SQLiteRepo) Delete(ctx context.Context, isbn string) error {
	const query = `DELETE FROM books WHERE isbn = ?`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.db.ExecContext(timeoutCtx, query, isbn)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// isSQLiteDuplicate reports a primary key or unique violation. The driver
// may report either the extended or the primary result code.
func isSQLiteDuplicate(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT:
		return true
	}
	return false
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQL(row rowScanner) (Book, error) {
	var b Book
	err := row.Scan(&b.ISBN, &b.AmazonURL, &b.Author, &b.Language, &b.Pages, &b.Publisher, &b.Title, &b.Year)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}
