package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/barkeeper/internal/server/storage"
	"github.com/iudanet/barkeeper/internal/server/storage/sqlite"
	"github.com/iudanet/barkeeper/pkg/api"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:          []byte("test-secret-key"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
	}
}

func newTestAuthHandler(t *testing.T) (*AuthHandler, *sqlite.Storage) {
	t.Helper()
	s := setupTestStorage(t)
	h := NewAuthHandler(testLogger(), s, s, testJWTConfig())
	h.hashCost = bcrypt.MinCost
	return h, s
}

func signup(t *testing.T, h *AuthHandler, email, password string) api.TokenResponse {
	t.Helper()
	w := serve(h.Signup, newRequest(t, http.MethodPost, "/auth/v1/signup", "", api.RegisterRequest{
		Email:    email,
		Password: password,
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[api.TokenResponse](t, w)
}

func TestAuthHandler_Signup(t *testing.T) {
	h, s := newTestAuthHandler(t)

	resp := signup(t, h, "ann@example.com", "correct-horse")

	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "ann@example.com", resp.User.Email)
	assert.Equal(t, "ann", resp.User.DisplayName, "display name defaults to the local part")
	assert.Equal(t, "owner", resp.User.Role)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(15*60), resp.ExpiresIn)

	claims, err := ValidateAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "owner", claims.Role)

	stored, err := s.GetRefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, stored.UserID)

	user, err := s.GetUserByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")))
}

func TestAuthHandler_Signup_Errors(t *testing.T) {
	h, _ := newTestAuthHandler(t)
	signup(t, h, "taken@example.com", "correct-horse")

	tests := []struct {
		body       any
		name       string
		wantCode   string
		wantStatus int
	}{
		{
			name:       "invalid email",
			body:       api.RegisterRequest{Email: "not-an-email", Password: "correct-horse"},
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeInvalidRequest,
		},
		{
			name:       "short password",
			body:       api.RegisterRequest{Email: "bob@example.com", Password: "short"},
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeInvalidRequest,
		},
		{
			name:       "password longer than bcrypt accepts",
			body:       api.RegisterRequest{Email: "bob@example.com", Password: strings.Repeat("p", 80)},
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeInvalidRequest,
		},
		{
			name:       "duplicate email",
			body:       api.RegisterRequest{Email: "taken@example.com", Password: "correct-horse"},
			wantStatus: http.StatusConflict,
			wantCode:   api.CodeConflict,
		},
		{
			name:       "malformed body",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h.Signup, newRequest(t, http.MethodPost, "/auth/v1/signup", "", tt.body))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	h, s := newTestAuthHandler(t)
	registered := signup(t, h, "ann@example.com", "correct-horse")

	t.Run("valid credentials", func(t *testing.T) {
		w := serve(h.Login, newRequest(t, http.MethodPost, "/auth/v1/login", "", api.LoginRequest{
			Email:    "ann@example.com",
			Password: "correct-horse",
		}))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decodeBody[api.TokenResponse](t, w)
		assert.Equal(t, registered.User.ID, resp.User.ID)
		assert.NotEqual(t, registered.RefreshToken, resp.RefreshToken)

		_, err := s.GetRefreshToken(context.Background(), resp.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := serve(h.Login, newRequest(t, http.MethodPost, "/auth/v1/login", "", api.LoginRequest{
			Email:    "ann@example.com",
			Password: "wrong-horse",
		}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, api.CodeUnauthorized, errorCode(t, w))
	})

	t.Run("unknown user looks like a wrong password", func(t *testing.T) {
		w := serve(h.Login, newRequest(t, http.MethodPost, "/auth/v1/login", "", api.LoginRequest{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid credentials")
	})

	t.Run("missing fields", func(t *testing.T) {
		w := serve(h.Login, newRequest(t, http.MethodPost, "/auth/v1/login", "", api.LoginRequest{Email: "ann@example.com"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	h, s := newTestAuthHandler(t)
	registered := signup(t, h, "ann@example.com", "correct-horse")

	w := serve(h.Refresh, newRequest(t, http.MethodPost, "/auth/v1/refresh", "", api.RefreshRequest{
		RefreshToken: registered.RefreshToken,
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	refreshed := decodeBody[api.TokenResponse](t, w)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	t.Run("old token is single use", func(t *testing.T) {
		w := serve(h.Refresh, newRequest(t, http.MethodPost, "/auth/v1/refresh", "", api.RefreshRequest{
			RefreshToken: registered.RefreshToken,
		}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		require.NoError(t, s.SaveRefreshToken(context.Background(), &storage.RefreshToken{
			Token:     "expired-token",
			UserID:    registered.User.ID,
			ExpiresAt: time.Now().Add(-time.Hour),
			CreatedAt: time.Now().Add(-2 * time.Hour),
		}))

		w := serve(h.Refresh, newRequest(t, http.MethodPost, "/auth/v1/refresh", "", api.RefreshRequest{
			RefreshToken: "expired-token",
		}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "expired")

		_, err := s.GetRefreshToken(context.Background(), "expired-token")
		assert.ErrorIs(t, err, storage.ErrTokenNotFound, "expired token is removed")
	})

	t.Run("missing token", func(t *testing.T) {
		w := serve(h.Refresh, newRequest(t, http.MethodPost, "/auth/v1/refresh", "", api.RefreshRequest{}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	h, s := newTestAuthHandler(t)
	registered := signup(t, h, "ann@example.com", "correct-horse")

	w := serve(h.Logout, newRequest(t, http.MethodPost, "/auth/v1/logout", registered.User.ID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err := s.GetRefreshToken(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)

	t.Run("requires authentication", func(t *testing.T) {
		w := serve(h.Logout, newRequest(t, http.MethodPost, "/auth/v1/logout", "", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestJWT_RejectsForeignTokens(t *testing.T) {
	token, _, err := GenerateAccessToken(testJWTConfig(), "user-1", "ann@example.com", "owner")
	require.NoError(t, err)

	other := testJWTConfig()
	other.Secret = []byte("another-secret")
	_, err = ValidateAccessToken(other, token)
	assert.Error(t, err)

	claims, err := ValidateAccessToken(testJWTConfig(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}
