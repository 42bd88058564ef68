package main

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore/internal/book"
)

func TestSampleBooksAreValid(t *testing.T) {
	for _, b := range sampleBooks {
		p := book.Payload{
			"isbn":       b.ISBN,
			"amazon_url": b.AmazonURL,
			"author":     b.Author,
			"language":   b.Language,
			"pages":      b.Pages,
			"publisher":  b.Publisher,
			"title":      b.Title,
			"year":       b.Year,
		}
		got, err := book.ParseCreate(p)
		require.NoError(t, err, b.ISBN)
		assert.Equal(t, b, got)
	}
}

func TestSeed_SkipsExistingBooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := book.NewMockRepository(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockRepo.EXPECT().Create(ctx, sampleBooks[0]).Return(book.Book{}, book.ErrAlreadyExists),
		mockRepo.EXPECT().Create(ctx, sampleBooks[1]).Return(sampleBooks[1], nil),
		mockRepo.EXPECT().Create(ctx, sampleBooks[2]).Return(sampleBooks[2], nil),
	)

	inserted, err := seed(ctx, mockRepo, sampleBooks, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
}

func TestSeed_StopsOnStorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := book.NewMockRepository(ctrl)
	ctx := context.Background()
	dbErr := errors.New("disk full")

	mockRepo.EXPECT().Create(ctx, sampleBooks[0]).Return(book.Book{}, dbErr)

	inserted, err := seed(ctx, mockRepo, sampleBooks, zerolog.Nop())

	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, 0, inserted)
}
