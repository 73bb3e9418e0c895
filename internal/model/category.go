package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CategoryStore defines read operations for the shared category list.
// Categories are global and read-only from the API surface.
type CategoryStore interface {
	GetAll(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (Category, error)
}

// Category represents a shared lookup category referenced by notes.
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
