// Package auth signs the user in against the server and keeps a sealed copy
// of the session on the device for offline unlock.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/barkeeper/internal/client/storage"
	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/internal/validation"
	"github.com/iudanet/barkeeper/pkg/api"
)

// Remote is the part of the API client used for authentication.
type Remote interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.TokenResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)
}

// Service предоставляет функции авторизации
type Service struct {
	remote Remote
	vault  *Vault
	logger *slog.Logger
	now    func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(remote Remote, vault *Vault, logger *slog.Logger) *Service {
	return &Service{
		remote: remote,
		vault:  vault,
		logger: logger,
		now:    time.Now,
	}
}

// Register регистрирует нового пользователя и сохраняет сессию на устройстве
func (s *Service) Register(ctx context.Context, email, password, displayName string) (*models.Session, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.remote.Register(ctx, api.RegisterRequest{
		Email:       normalizeEmail(email),
		Password:    password,
		DisplayName: displayName,
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	session := s.sessionFrom(resp)
	s.seal(ctx, session, password)
	return session, nil
}

// Login выполняет аутентификацию на сервере.
// Сессия запечатывается паролем для последующего входа без сети.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.remote.Login(ctx, api.LoginRequest{
		Email:    normalizeEmail(email),
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	session := s.sessionFrom(resp)
	s.seal(ctx, session, password)
	return session, nil
}

// Unlock opens the session stored on this device without contacting the server.
func (s *Service) Unlock(ctx context.Context, email, password string) (*models.Session, error) {
	session, err := s.vault.Unlock(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("offline unlock failed: %w", err)
	}
	return session, nil
}

// Stored returns the account sealed on this device.
func (s *Service) Stored(ctx context.Context) (*storage.SealedSession, error) {
	return s.vault.Stored(ctx)
}

// Logout удаляет локальную сессию
func (s *Service) Logout(ctx context.Context) error {
	if err := s.vault.Forget(ctx); err != nil {
		return fmt.Errorf("failed to delete local session: %w", err)
	}
	return nil
}

func (s *Service) sessionFrom(resp *api.TokenResponse) *models.Session {
	session := &models.Session{
		User: models.User{
			ID:          resp.User.ID,
			Email:       resp.User.Email,
			DisplayName: resp.User.DisplayName,
			Role:        models.Role(resp.User.Role),
		},
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	if resp.ExpiresIn > 0 {
		session.ExpiresAt = s.now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()
	}
	return session
}

// seal не прерывает вход при ошибке: без неё недоступен только офлайн вход
func (s *Service) seal(ctx context.Context, session *models.Session, password string) {
	if err := s.vault.Save(ctx, session, password); err != nil {
		s.logger.Warn("Failed to save session for offline unlock", "user_id", session.User.ID, "error", err)
	}
}
