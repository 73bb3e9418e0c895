package service

import (
	"context"
	"fmt"

	"github.com/dkulagin/notable/internal/model"
)

// Category exposes the read-only shared category list.
type Category struct {
	store model.CategoryStore
}

func NewCategory(store model.CategoryStore) *Category {
	return &Category{store: store}
}

// List returns all categories sorted by name ascending.
func (s *Category) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
