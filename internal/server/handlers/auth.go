package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/internal/server/storage"
	"github.com/iudanet/barkeeper/internal/validation"
	"github.com/iudanet/barkeeper/pkg/api"
)

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger       *slog.Logger
	userStorage  storage.UserStorage
	tokenStorage storage.TokenStorage
	jwtConfig    JWTConfig
	hashCost     int
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, tokenStorage storage.TokenStorage, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		jwtConfig:    jwtConfig,
		hashCost:     bcrypt.DefaultCost,
	}
}

// Signup обрабатывает POST /auth/v1/signup
// Регистрирует пользователя и сразу выдаёт токены
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode signup request", slog.Any("error", err))
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := validation.ValidateEmail(req.Email); err != nil {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, err.Error())
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.hashCost)
	if err != nil {
		// bcrypt отвергает пароли длиннее 72 байт
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "password is too long")
			return
		}
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		SendError(h.logger, w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	now := time.Now()
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = req.Email[:strings.Index(req.Email, "@")]
	}
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		Role:         models.RoleOwner,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("email", req.Email))
			SendError(h.logger, w, http.StatusConflict, api.CodeConflict, "email already registered")
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		SendError(h.logger, w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	resp, err := h.issueTokens(ctx, user)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue tokens", slog.Any("error", err))
		SendError(h.logger, w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully", slog.String("user_id", user.ID))
	SendJSON(h.logger, w, resp, http.StatusCreated)
}

// Login обрабатывает POST /auth/v1/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "email and password are required")
		return
	}

	user, err := h.userStorage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found")
			SendError(h.logger, w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid credentials")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		SendError(h.logger, w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("user_id", user.ID))
		SendError(h.logger, w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid credentials")
		return
	}

	resp, err := h.issueTokens(ctx, user)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue tokens", slog.Any("error", err))
		SendError(h.logger, w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	// Не критичная ошибка, логируем но не прерываем
	if err := h.userStorage.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "user logged in successfully", slog.String("user_id", user.ID))
	SendJSON(h.logger, w, resp, http.StatusOK)
}

// Refresh обрабатывает POST /auth/v1/refresh
// Меняет refresh token на новую пару токенов, старый отзывается
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RefreshRequest
	if err := decodeJSON(w, r, &req); err != nil || req.RefreshToken == "" {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "refresh_token is required")
		return
	}

	stored, err := h.tokenStorage.GetRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.WarnContext(ctx, "refresh token not found")
			SendError(h.logger, w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid refresh token")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get refresh token", slog.Any("error", err))
		SendError(h.logger, w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	// Токен одноразовый: удаляем до выдачи нового, чтобы повтор запроса не сработал
	if err := h.tokenStorage.DeleteRefreshToken(ctx, req.RefreshToken); err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			SendError(h.logger, w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid refresh token")
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete refresh token", slog.Any("error", err))
		SendError(h.logger, w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	if time.Now().After(stored.ExpiresAt) {
		h.logger.WarnContext(ctx, "refresh token expired", slog.String("user_id", stored.UserID))
		SendError(h.logger, w, http.StatusUnauthorized, api.CodeUnauthorized, "refresh token expired")
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			SendError(h.logger, w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid refresh token")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		SendError(h.logger, w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	resp, err := h.issueTokens(ctx, user)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue tokens", slog.Any("error", err))
		SendError(h.logger, w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "tokens refreshed successfully", slog.String("user_id", user.ID))
	SendJSON(h.logger, w, resp, http.StatusOK)
}

// Logout обрабатывает POST /auth/v1/logout
// Отзывает все refresh токены пользователя, выданные access токены живут до истечения
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requireUser(h.logger, w, r)
	if !ok {
		return
	}

	deletedCount, err := h.tokenStorage.DeleteUserTokens(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete user tokens", slog.Any("error", err))
		SendError(h.logger, w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "user logged out successfully",
		slog.String("user_id", userID),
		slog.Int("tokens_deleted", deletedCount))

	w.WriteHeader(http.StatusNoContent)
}

// issueTokens выдаёт access и refresh токены пользователю
func (h *AuthHandler) issueTokens(ctx context.Context, user *models.User) (*api.TokenResponse, error) {
	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, expiresAt, err := GenerateRefreshToken(h.jwtConfig)
	if err != nil {
		return nil, err
	}

	if err := h.tokenStorage.SaveRefreshToken(ctx, &storage.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}

	return &api.TokenResponse{
		User: api.User{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Role:        string(user.Role),
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}
