package book

import (
	"context"
)

// Repository defines the contract for book data storage.
//
//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	Create(ctx context.Context, b Book) (Book, error)
	Update(ctx context.Context, isbn string, b Book) (Book, error)
	Delete(ctx context.Context, isbn string) error
}
