package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dkulagin/notable/internal/model"
	"github.com/dkulagin/notable/internal/service"
	"github.com/dkulagin/notable/internal/testutil"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, params service.RegisterParams) (model.User, model.TokenPair, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.User), args.Get(1).(model.TokenPair), args.Error(2)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (model.User, model.TokenPair, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.User), args.Get(1).(model.TokenPair), args.Error(2)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(model.TokenPair), args.Error(1)
}

func (m *mockTokenService) RevokeByToken(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func newAuthHandler() (*mockAuthService, *mockTokenService, *Auth) {
	authService := new(mockAuthService)
	tokenService := new(mockTokenService)
	return authService, tokenService, NewAuth(authService, tokenService, testutil.MakeNoopLogger())
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["detail"]
}

func TestAuthHandler_Register(t *testing.T) {
	authService, _, h := newAuthHandler()

	user := model.User{ID: uuid.New(), Email: "user@example.com", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	pair := model.TokenPair{Access: "access-token", Refresh: "refresh-token"}
	authService.On("Register", mock.Anything, service.RegisterParams{
		Email:           "user@example.com",
		Password:        "correct horse",
		PasswordConfirm: "correct horse",
	}).Return(user, pair, nil)

	body := `{"email":"user@example.com","password":"correct horse","password_confirm":"correct horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User struct {
			ID    uuid.UUID `json:"id"`
			Email string    `json:"email"`
		} `json:"user"`
		Tokens struct {
			Access  string `json:"access"`
			Refresh string `json:"refresh"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, user.ID, resp.User.ID)
	require.Equal(t, "user@example.com", resp.User.Email)
	require.Equal(t, "access-token", resp.Tokens.Access)
	require.Equal(t, "refresh-token", resp.Tokens.Refresh)
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	_, _, h := newAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid request body.", decodeDetail(t, rec))
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	authService, _, h := newAuthHandler()

	authService.On("Register", mock.Anything, mock.Anything).
		Return(model.User{}, model.TokenPair{}, model.ErrEmailTaken)

	body := `{"email":"user@example.com","password":"correct horse","password_confirm":"correct horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "A user with this email already exists.", decodeDetail(t, rec))
}

func TestAuthHandler_Login(t *testing.T) {
	authService, _, h := newAuthHandler()

	user := model.User{ID: uuid.New(), Email: "user@example.com"}
	pair := model.TokenPair{Access: "access-token", Refresh: "refresh-token"}
	authService.On("Login", mock.Anything, "user@example.com", "correct horse").Return(user, pair, nil)

	body := `{"email":"user@example.com","password":"correct horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "access-token")
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	_, _, h := newAuthHandler()

	for _, body := range []string{`{}`, `{"email":"user@example.com"}`, `{"password":"correct horse"}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Login(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		require.Equal(t, "Email and password are required.", decodeDetail(t, rec))
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	authService, _, h := newAuthHandler()

	authService.On("Login", mock.Anything, "user@example.com", "wrong horse").
		Return(model.User{}, model.TokenPair{}, model.ErrInvalidCredentials)

	body := `{"email":"user@example.com","password":"wrong horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid credentials.", decodeDetail(t, rec))
}

func TestAuthHandler_Refresh(t *testing.T) {
	_, tokenService, h := newAuthHandler()

	tokenService.On("Refresh", mock.Anything, "old-refresh").
		Return(model.TokenPair{Access: "new-access", Refresh: "new-refresh"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/refresh", strings.NewReader(`{"refresh":"old-refresh"}`))
	rec := httptest.NewRecorder()

	h.Refresh(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "new-access", resp["access"])
	require.Equal(t, "new-refresh", resp["refresh"])
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	_, _, h := newAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/refresh", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Refresh(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Refresh token is required.", decodeDetail(t, rec))
}

func TestAuthHandler_Refresh_Replayed(t *testing.T) {
	_, tokenService, h := newAuthHandler()

	tokenService.On("Refresh", mock.Anything, "replayed").
		Return(model.TokenPair{}, model.ErrTokenRevoked)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/refresh", strings.NewReader(`{"refresh":"replayed"}`))
	rec := httptest.NewRecorder()

	h.Refresh(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid or expired refresh token.", decodeDetail(t, rec))
}

func TestAuthHandler_Logout(t *testing.T) {
	_, tokenService, h := newAuthHandler()

	tokenService.On("RevokeByToken", mock.Anything, "refresh-token").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", strings.NewReader(`{"refresh":"refresh-token"}`))
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestAuthHandler_Logout_MalformedToken(t *testing.T) {
	_, tokenService, h := newAuthHandler()

	tokenService.On("RevokeByToken", mock.Anything, "garbage").Return(model.ErrTokenMalformed)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", strings.NewReader(`{"refresh":"garbage"}`))
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid token.", decodeDetail(t, rec))
}
