package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dkulagin/notable/internal/logger"
	"github.com/dkulagin/notable/internal/model"
)

// NoteService defines the ownership-filtered note operations.
type NoteService interface {
	List(ctx context.Context, userID uuid.UUID, limit, offset int) (model.NotePage, error)
	Get(ctx context.Context, userID, noteID uuid.UUID) (model.Note, error)
	Create(ctx context.Context, params model.CreateNoteParams) (model.Note, error)
	Update(ctx context.Context, params model.UpdateNoteParams) (model.Note, error)
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
}

// Note handles the notes endpoints.
type Note struct {
	service        NoteService
	contextManager model.ContextManager
	pageSize       int
	logger         *logger.Logger
}

// NewNote creates a new Note handler.
func NewNote(service NoteService, contextManager model.ContextManager, pageSize int, logger *logger.Logger) *Note {
	return &Note{
		service:        service,
		contextManager: contextManager,
		pageSize:       pageSize,
		logger:         logger,
	}
}

type createNoteRequest struct {
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CategoryID uuid.UUID `json:"category_id"`
}

type updateNoteRequest struct {
	Title      *string    `json:"title"`
	Content    *string    `json:"content"`
	CategoryID *uuid.UUID `json:"category_id"`
}

// notePageResponse is the page-number pagination envelope.
type notePageResponse struct {
	Count    int            `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []noteResponse `json:"results"`
}

// List returns one page of the caller's notes, newest first.
func (h *Note) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusNotFound, "Invalid page.")
			return
		}
		page = parsed
	}

	offset := (page - 1) * h.pageSize
	result, err := h.service.List(r.Context(), userID, h.pageSize, offset)
	if err != nil {
		h.logger.Error("Note handler: list failed", "user_id", userID, "error", err.Error())
		handleError(w, err)
		return
	}

	// Pages past the end do not exist; page 1 of an empty list does.
	if page > 1 && offset >= result.TotalCount {
		writeError(w, http.StatusNotFound, "Invalid page.")
		return
	}

	writeJSON(w, http.StatusOK, notePageResponse{
		Count:    result.TotalCount,
		Next:     pageLink(r, page+1, offset+h.pageSize < result.TotalCount),
		Previous: pageLink(r, page-1, page > 1),
		Results:  toNoteResponses(result.Notes),
	})
}

// Get returns a single note owned by the caller.
func (h *Note) Get(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	note, err := h.service.Get(r.Context(), userID, noteID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

// Create stores a new note owned by the caller.
func (h *Note) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	note, err := h.service.Create(r.Context(), model.CreateNoteParams{
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNoteResponse(note))
}

// Update applies a partial update to a note owned by the caller.
func (h *Note) Update(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	note, err := h.service.Update(r.Context(), model.UpdateNoteParams{
		UserID:     userID,
		NoteID:     noteID,
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

// Delete removes a note owned by the caller.
func (h *Note) Delete(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, noteID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requestIDs extracts the authenticated user and the note ID from the
// request, writing the error response itself when either is missing.
func (h *Note) requestIDs(w http.ResponseWriter, r *http.Request) (userID, noteID uuid.UUID, ok bool) {
	userID, authed := h.contextManager.GetUserIDFromContext(r.Context())
	if !authed {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return uuid.Nil, uuid.Nil, false
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// An unparseable ID can never name an existing note.
		writeError(w, http.StatusNotFound, "Not found.")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, noteID, true
}

// pageLink builds an absolute URL for the neighboring page, or nil when the
// page does not exist.
func pageLink(r *http.Request, page int, exists bool) *string {
	if !exists {
		return nil
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path}
	if page > 1 {
		q := u.Query()
		q.Set("page", strconv.Itoa(page))
		u.RawQuery = q.Encode()
	}

	link := u.String()
	return &link
}
