package book

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.EXPECT().List(ctx).Return(nil, nil)
	books, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Book{}, books)

	dbErr := errors.New("connection refused")
	mockRepo.EXPECT().List(ctx).Return(nil, dbErr)
	_, err = service.List(ctx)
	assert.ErrorIs(t, err, dbErr)
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	t.Run("valid payload is stored", func(t *testing.T) {
		want := Book{
			ISBN:      "9781803234502",
			AmazonURL: "https://a.co/d/4xhy6Hv",
			Author:    "Maximilian Schwarzmuller",
			Language:  "English",
			Pages:     590,
			Publisher: "Packt Publishing",
			Title:     "React Key Concepts",
			Year:      2022,
		}
		mockRepo.EXPECT().Create(ctx, want).Return(want, nil)

		got, err := service.Create(ctx, mustPayload(t, reactKeyConcepts))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("invalid payload never reaches the repository", func(t *testing.T) {
		_, err := service.Create(ctx, Payload{})

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	p := mustPayload(t, `{
		"amazon_url": "https://a.co/d/5MYO6uT",
		"author": "Francesco Strazzullo",
		"language": "English",
		"pages": 265,
		"publisher": "Apress",
		"title": "Frameworkless Front-End Development",
		"year": 2019
	}`)

	mockRepo.EXPECT().Update(ctx, frameworkless.ISBN, frameworkless).Return(frameworkless, nil)
	got, err := service.Update(ctx, frameworkless.ISBN, p)
	require.NoError(t, err)
	assert.Equal(t, frameworkless, got)

	mockRepo.EXPECT().Update(ctx, "9780000000000", gomock.Any()).Return(Book{}, ErrNotFound)
	_, err = service.Update(ctx, "9780000000000", p)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_GetAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.EXPECT().GetByISBN(ctx, frameworkless.ISBN).Return(frameworkless, nil)
	got, err := service.GetByISBN(ctx, frameworkless.ISBN)
	require.NoError(t, err)
	assert.Equal(t, frameworkless, got)

	mockRepo.EXPECT().Delete(ctx, frameworkless.ISBN).Return(ErrNotFound)
	assert.ErrorIs(t, service.Delete(ctx, frameworkless.ISBN), ErrNotFound)
}
