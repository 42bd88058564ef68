package book

import (
	"errors"
)

// ErrNotFound is returned when no book matches an isbn.
var ErrNotFound = errors.New("book not found")

// ErrAlreadyExists is returned when inserting an isbn that is already stored.
var ErrAlreadyExists = errors.New("book already exists")

// Book represents a row of the books table. Integer columns are 32-bit.
type Book struct {
	ISBN      string `json:"isbn" validate:"required,isbn"`
	AmazonURL string `json:"amazon_url" validate:"required,url"`
	Author    string `json:"author" validate:"required"`
	Language  string `json:"language" validate:"required"`
	Pages     int    `json:"pages" validate:"gte=1,lte=2147483647"`
	Publisher string `json:"publisher" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Year      int    `json:"year" validate:"gte=-2147483648,lte=2147483647"`
}
