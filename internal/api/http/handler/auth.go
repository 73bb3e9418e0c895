package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dkulagin/notable/internal/logger"
	"github.com/dkulagin/notable/internal/model"
	"github.com/dkulagin/notable/internal/service"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, model.TokenPair, error)
	Login(ctx context.Context, email, password string) (model.User, model.TokenPair, error)
}

// TokenService defines token refresh and revoke operations.
type TokenService interface {
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	RevokeByToken(ctx context.Context, refreshToken string) error
}

// Auth handles the authentication endpoints.
type Auth struct {
	authService  AuthService
	tokenService TokenService
	logger       *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, tokenService TokenService, logger *logger.Logger) *Auth {
	return &Auth{
		authService:  authService,
		tokenService: tokenService,
		logger:       logger,
	}
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type authResponse struct {
	User   userResponse      `json:"user"`
	Tokens tokenPairResponse `json:"tokens"`
}

// Register creates a new user and returns it along with a token pair.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, pair, err := h.authService.Register(r.Context(), service.RegisterParams{
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		h.logger.Debug("Auth handler: registration failed", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		User:   toUserResponse(user),
		Tokens: toTokenPairResponse(pair),
	})
}

// Login authenticates with email and password and returns a token pair.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	user, pair, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		User:   toUserResponse(user),
		Tokens: toTokenPairResponse(pair),
	})
}

// Refresh rotates the presented refresh token and returns a new pair.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Refresh == "" {
		writeError(w, http.StatusBadRequest, "Refresh token is required.")
		return
	}

	pair, err := h.tokenService.Refresh(r.Context(), req.Refresh)
	if err != nil {
		h.logger.Debug("Auth handler: refresh failed", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTokenPairResponse(pair))
}

// Logout blacklists the presented refresh token. Requires an authenticated
// request; the response carries no body.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Refresh == "" {
		writeError(w, http.StatusBadRequest, "Refresh token is required.")
		return
	}

	if err := h.tokenService.RevokeByToken(r.Context(), req.Refresh); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
