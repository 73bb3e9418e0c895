package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkulagin/notable/internal/logger"
	"github.com/dkulagin/notable/internal/model"
	"github.com/dkulagin/notable/internal/password"
)

// Auth implements registration and credential authentication.
type Auth struct {
	userStore    model.UserStore
	hasher       password.Hasher
	policy       password.Policy
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher password.Hasher,
	policy password.Policy,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		policy:       policy,
		tokenService: tokenService,
		logger:       logger,
	}
}

// RegisterParams carries the registration input.
type RegisterParams struct {
	Email           string
	Password        string
	PasswordConfirm string
}

// Register creates an account and issues the first token pair. The email is
// normalized to lower case before any lookup or store.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.User, model.TokenPair, error) {
	email, err := normalizeEmail(params.Email)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}

	if params.Password != params.PasswordConfirm {
		return model.User{}, model.TokenPair{}, fmt.Errorf("%w: passwords do not match", model.ErrValidation)
	}

	if err := a.policy.Validate(params.Password); err != nil {
		return model.User{}, model.TokenPair{}, err
	}

	existing, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.TokenPair{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: registration with taken email", "email", email)
		return model.User{}, model.TokenPair{}, model.ErrEmailTaken
	}

	hashed, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, model.TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
		IsStaff:      false,
		IsSuperuser:  false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := a.userStore.Create(ctx, user)
	if err != nil {
		return model.User{}, model.TokenPair{}, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := a.tokenService.Issue(ctx, saved.ID)
	if err != nil {
		return model.User{}, model.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("Auth service: user registered", "user_id", saved.ID)

	return saved, pair, nil
}

// Login authenticates email+password and issues a token pair. Unknown email,
// wrong password and inactive account all yield ErrInvalidCredentials so the
// caller cannot probe for accounts.
func (a *Auth) Login(ctx context.Context, email, plainPassword string) (model.User, model.TokenPair, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	user, err := a.userStore.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.TokenPair{}, model.ErrInvalidCredentials
		}
		return model.User{}, model.TokenPair{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !user.IsActive {
		return model.User{}, model.TokenPair{}, model.ErrInvalidCredentials
	}

	if !a.hasher.Verify(plainPassword, user.PasswordHash) {
		return model.User{}, model.TokenPair{}, model.ErrInvalidCredentials
	}

	pair, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		return model.User{}, model.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("Auth service: user logged in", "user_id", user.ID)

	return user, pair, nil
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", fmt.Errorf("%w: email is required", model.ErrValidation)
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", fmt.Errorf("%w: invalid email format", model.ErrValidation)
	}
	return strings.ToLower(trimmed), nil
}
