package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NoteStore defines persistence operations for notes. Listing is always
// scoped to an owner; cross-user reads go through GetByID and the service
// layer enforces ownership.
type NoteStore interface {
	Create(ctx context.Context, note Note) (Note, error)
	GetByID(ctx context.Context, id uuid.UUID) (Note, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Note, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int, error)
	Update(ctx context.Context, note Note) (Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Note represents a stored note entity. Every note is owned by exactly one
// user; the category reference is optional and cleared when the category is
// deleted.
type Note struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	CategoryID *uuid.UUID
	Title      string
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Category is populated by joins for read paths; nil when the note has
	// no category.
	Category *Category
}

// CreateNoteParams contains parameters to create a note. The owner is always
// the authenticated user, never client input.
type CreateNoteParams struct {
	UserID     uuid.UUID
	Title      string
	Content    string
	CategoryID uuid.UUID
}

// UpdateNoteParams contains a partial update: nil fields are left unchanged.
type UpdateNoteParams struct {
	UserID     uuid.UUID
	NoteID     uuid.UUID
	Title      *string
	Content    *string
	CategoryID *uuid.UUID
}

// NotePage is one page of a user's notes, newest-created-first.
type NotePage struct {
	Notes      []Note
	TotalCount int
}
