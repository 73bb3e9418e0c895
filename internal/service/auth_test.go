package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkulagin/notable/internal/mocks"
	"github.com/dkulagin/notable/internal/model"
	"github.com/dkulagin/notable/internal/password"
	"github.com/dkulagin/notable/internal/testutil"
)

type authFixture struct {
	userStore *mocks.UserStore
	manager   *mocks.TokenManager
	rtStore   *mocks.RefreshTokenStore
	auth      *Auth
}

func newAuthFixture() *authFixture {
	userStore := new(mocks.UserStore)
	manager := new(mocks.TokenManager)
	rtStore := new(mocks.RefreshTokenStore)

	tokenService := NewTokenService(manager, rtStore, 30*24*time.Hour, testutil.MakeNoopLogger())
	auth := NewAuth(
		userStore,
		password.NewBcryptHasher(bcrypt.MinCost),
		password.NewDefaultPolicy(8),
		tokenService,
		testutil.MakeNoopLogger(),
	)

	return &authFixture{userStore: userStore, manager: manager, rtStore: rtStore, auth: auth}
}

func (f *authFixture) expectIssue() {
	f.manager.On("GenerateAccessToken", mock.AnythingOfType("uuid.UUID")).Return("access-token", nil)
	f.manager.On("GenerateRefreshToken", mock.AnythingOfType("uuid.UUID")).Return("refresh-token", "jti-1", nil)
	f.rtStore.On("Create", mock.Anything, mock.AnythingOfType("model.RefreshToken")).Return(nil)
}

func TestAuth_Register(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	created := model.User{ID: uuid.New(), Email: "user@example.com", IsActive: true}
	f.userStore.On("GetByEmail", ctx, "user@example.com").Return(model.User{}, model.ErrNotFound)
	f.userStore.On("Create", ctx, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "user@example.com" && u.IsActive && !u.IsStaff && !u.IsSuperuser
	})).Return(created, nil)
	f.expectIssue()

	user, pair, err := f.auth.Register(ctx, RegisterParams{
		Email:           "User@Example.COM",
		Password:        "correct horse",
		PasswordConfirm: "correct horse",
	})
	require.NoError(t, err)
	require.Equal(t, "user@example.com", user.Email)
	require.Equal(t, "access-token", pair.Access)
	require.Equal(t, "refresh-token", pair.Refresh)

	f.userStore.AssertExpectations(t)
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	existing := model.User{ID: uuid.New(), Email: "user@example.com"}
	f.userStore.On("GetByEmail", ctx, "user@example.com").Return(existing, nil)

	_, _, err := f.auth.Register(ctx, RegisterParams{
		Email:           "user@example.com",
		Password:        "correct horse",
		PasswordConfirm: "correct horse",
	})
	require.ErrorIs(t, err, model.ErrEmailTaken)
	f.userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuth_Register_PasswordMismatch(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	_, _, err := f.auth.Register(ctx, RegisterParams{
		Email:           "user@example.com",
		Password:        "correct horse",
		PasswordConfirm: "wrong horse",
	})
	require.ErrorIs(t, err, model.ErrValidation)
	f.userStore.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestAuth_Register_InvalidEmail(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	for _, email := range []string{"", "   ", "not-an-email", "user@"} {
		_, _, err := f.auth.Register(ctx, RegisterParams{
			Email:           email,
			Password:        "correct horse",
			PasswordConfirm: "correct horse",
		})
		require.ErrorIs(t, err, model.ErrValidation, "email %q", email)
	}
}

func TestAuth_Register_WeakPassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	for _, pw := range []string{"short", "123456789", "password123"} {
		_, _, err := f.auth.Register(ctx, RegisterParams{
			Email:           "user@example.com",
			Password:        pw,
			PasswordConfirm: pw,
		})
		require.ErrorIs(t, err, model.ErrWeakPassword, "password %q", pw)
	}
	f.userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	userID := uuid.New()

	hashed, err := password.NewBcryptHasher(bcrypt.MinCost).Hash("correct horse")
	require.NoError(t, err)

	f.userStore.On("GetByEmail", ctx, "user@example.com").Return(model.User{
		ID:           userID,
		Email:        "user@example.com",
		PasswordHash: hashed,
		IsActive:     true,
	}, nil)
	f.expectIssue()

	user, pair, err := f.auth.Login(ctx, "User@Example.com ", "correct horse")
	require.NoError(t, err)
	require.Equal(t, userID, user.ID)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
}

func TestAuth_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	f.userStore.On("GetByEmail", ctx, "ghost@example.com").Return(model.User{}, model.ErrNotFound)

	_, _, err := f.auth.Login(ctx, "ghost@example.com", "whatever password")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	hashed, err := password.NewBcryptHasher(bcrypt.MinCost).Hash("correct horse")
	require.NoError(t, err)

	f.userStore.On("GetByEmail", ctx, "user@example.com").Return(model.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: hashed,
		IsActive:     true,
	}, nil)

	_, _, err = f.auth.Login(ctx, "user@example.com", "wrong horse")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Login_InactiveUser(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	hashed, err := password.NewBcryptHasher(bcrypt.MinCost).Hash("correct horse")
	require.NoError(t, err)

	f.userStore.On("GetByEmail", ctx, "user@example.com").Return(model.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: hashed,
		IsActive:     false,
	}, nil)

	_, _, err = f.auth.Login(ctx, "user@example.com", "correct horse")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}
