package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dkulagin/notable/internal/logger"
	"github.com/dkulagin/notable/internal/model"
)

// Note implements the ownership-filtered note operations. Every call takes
// the authenticated user ID; a note owned by someone else is reported as
// ErrNotFound, never as a distinct forbidden signal.
type Note struct {
	noteStore     model.NoteStore
	categoryStore model.CategoryStore
	logger        *logger.Logger
}

func NewNote(noteStore model.NoteStore, categoryStore model.CategoryStore, logger *logger.Logger) *Note {
	return &Note{
		noteStore:     noteStore,
		categoryStore: categoryStore,
		logger:        logger,
	}
}

// List returns one page of the user's notes, newest-created-first.
func (s *Note) List(ctx context.Context, userID uuid.UUID, limit, offset int) (model.NotePage, error) {
	count, err := s.noteStore.CountByUserID(ctx, userID)
	if err != nil {
		return model.NotePage{}, fmt.Errorf("failed to count notes: %w", err)
	}

	notes, err := s.noteStore.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return model.NotePage{}, fmt.Errorf("failed to list notes: %w", err)
	}

	return model.NotePage{Notes: notes, TotalCount: count}, nil
}

// Get returns the note only when it is owned by userID.
func (s *Note) Get(ctx context.Context, userID, noteID uuid.UUID) (model.Note, error) {
	note, err := s.noteStore.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Note{}, model.ErrNotFound
		}
		return model.Note{}, fmt.Errorf("failed to get note by id: %w", err)
	}

	if !isOwner(userID, note) {
		return model.Note{}, model.ErrNotFound
	}

	return note, nil
}

// Create stores a new note owned by the authenticated user. The category is
// mandatory at the API surface and must exist.
func (s *Note) Create(ctx context.Context, params model.CreateNoteParams) (model.Note, error) {
	if params.Title == "" {
		return model.Note{}, fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if params.CategoryID == uuid.Nil {
		return model.Note{}, fmt.Errorf("%w: category_id is required", model.ErrValidation)
	}

	if _, err := s.categoryStore.GetByID(ctx, params.CategoryID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Note{}, fmt.Errorf("%w: category does not exist", model.ErrValidation)
		}
		return model.Note{}, fmt.Errorf("failed to get category by id: %w", err)
	}

	categoryID := params.CategoryID
	note := model.Note{
		ID:         uuid.New(),
		OwnerID:    params.UserID,
		CategoryID: &categoryID,
		Title:      params.Title,
		Content:    params.Content,
	}

	saved, err := s.noteStore.Create(ctx, note)
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	s.logger.Info("Note service: note created", "note_id", saved.ID, "user_id", params.UserID)

	return saved, nil
}

// Update applies a partial update; nil fields are left unchanged. Ownership
// is checked the same way as Get.
func (s *Note) Update(ctx context.Context, params model.UpdateNoteParams) (model.Note, error) {
	note, err := s.Get(ctx, params.UserID, params.NoteID)
	if err != nil {
		return model.Note{}, err
	}

	if params.Title != nil {
		if *params.Title == "" {
			return model.Note{}, fmt.Errorf("%w: title may not be blank", model.ErrValidation)
		}
		note.Title = *params.Title
	}
	if params.Content != nil {
		note.Content = *params.Content
	}
	if params.CategoryID != nil {
		if _, err := s.categoryStore.GetByID(ctx, *params.CategoryID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.Note{}, fmt.Errorf("%w: category does not exist", model.ErrValidation)
			}
			return model.Note{}, fmt.Errorf("failed to get category by id: %w", err)
		}
		note.CategoryID = params.CategoryID
	}

	updated, err := s.noteStore.Update(ctx, note)
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to update note: %w", err)
	}

	return updated, nil
}

// Delete removes the note when it is owned by userID. Irreversible.
func (s *Note) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, noteID); err != nil {
		return err
	}

	if err := s.noteStore.Delete(ctx, noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	s.logger.Info("Note service: note deleted", "note_id", noteID, "user_id", userID)

	return nil
}

// isOwner is the ownership predicate shared by every note operation.
func isOwner(userID uuid.UUID, note model.Note) bool {
	return note.OwnerID == userID
}
