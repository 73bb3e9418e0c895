package handler

import (
	"errors"
	"net/http"

	"github.com/dkulagin/notable/internal/model"
)

// handleError translates service errors into a status code and detail body.
// Ownership failures arrive here as model.ErrNotFound and stay 404.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrWeakPassword):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "A user with this email already exists.")
	case errors.Is(err, model.ErrTokenMalformed):
		writeError(w, http.StatusBadRequest, "Invalid token.")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials.")
	case errors.Is(err, model.ErrTokenInvalid),
		errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenMismatch):
		writeError(w, http.StatusUnauthorized, "Invalid or expired refresh token.")
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found.")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error.")
	}
}
