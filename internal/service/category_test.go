package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dkulagin/notable/internal/mocks"
	"github.com/dkulagin/notable/internal/model"
)

func TestCategory_List(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.CategoryStore)
	s := NewCategory(store)

	categories := []model.Category{
		{ID: uuid.New(), Name: "Ideas"},
		{ID: uuid.New(), Name: "Work"},
	}
	store.On("GetAll", ctx).Return(categories, nil)

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, categories, got)
}

func TestCategory_List_StoreError(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.CategoryStore)
	s := NewCategory(store)

	store.On("GetAll", ctx).Return(nil, errors.New("db down"))

	_, err := s.List(ctx)
	require.Error(t, err)
}
