package book

import (
	"context"
)

// Service validates writes before handing them to the repository.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every stored book.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// GetByISBN returns a book by its ISBN.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

// Create validates p and inserts the book it describes.
func (s *Service) Create(ctx context.Context, p Payload) (Book, error) {
	b, err := ParseCreate(p)
	if err != nil {
		return Book{}, err
	}
	return s.repo.Create(ctx, b)
}

// Update validates p and replaces every mutable field of the book at isbn.
func (s *Service) Update(ctx context.Context, isbn string, p Payload) (Book, error) {
	b, err := ParseUpdate(isbn, p)
	if err != nil {
		return Book{}, err
	}
	return s.repo.Update(ctx, isbn, b)
}

// Delete removes the book at isbn.
func (s *Service) Delete(ctx context.Context, isbn string) error {
	return s.repo.Delete(ctx, isbn)
}
