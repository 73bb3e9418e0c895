package handler

import (
	"context"
	"net/http"

	"github.com/dkulagin/notable/internal/logger"
	"github.com/dkulagin/notable/internal/model"
)

// CategoryService defines the read-only category listing.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
}

// Category handles the categories endpoint.
type Category struct {
	service CategoryService
	logger  *logger.Logger
}

// NewCategory creates a new Category handler.
func NewCategory(service CategoryService, logger *logger.Logger) *Category {
	return &Category{service: service, logger: logger}
}

// List returns every category, name ascending, without pagination.
func (h *Category) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("Category handler: list failed", "error", err.Error())
		handleError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}

	writeJSON(w, http.StatusOK, out)
}
