package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	httpClient "github.com/iudanet/barkeeper/internal/client/api"
	"github.com/iudanet/barkeeper/internal/client/cache"
	"github.com/iudanet/barkeeper/internal/client/network"
	"github.com/iudanet/barkeeper/internal/client/storage"
	"github.com/iudanet/barkeeper/internal/models"
)

//go:generate moq -out auth_service_mock.go . AuthService

// ErrSessionExpired is returned by AccessToken once the token lifetime ended.
var ErrSessionExpired = errors.New("session expired, sign in again")

// AuthService is the authentication service used by AuthState.
type AuthService interface {
	Register(ctx context.Context, email, password, displayName string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Unlock(ctx context.Context, email, password string) (*models.Session, error)
	Stored(ctx context.Context) (*storage.SealedSession, error)
	Logout(ctx context.Context) error
}

// Decider reports whether remote calls should be attempted.
type Decider interface {
	Decision() network.Decision
}

// AuthState is the session provider. It also serves as the token source of
// the API client and the actor of queued operations.
type AuthState struct {
	svc       AuthService
	net       Decider
	cache     *cache.Store
	logger    *slog.Logger
	listeners *listeners
	now       func() time.Time
	session   *models.Session
	offline   bool
	mu        sync.RWMutex
}

// NewAuthState creates the session provider
func NewAuthState(svc AuthService, net Decider, store *cache.Store, logger *slog.Logger) *AuthState {
	return &AuthState{
		svc:       svc,
		net:       net,
		cache:     store,
		logger:    logger,
		listeners: newListeners(logger),
		now:       time.Now,
	}
}

// Subscribe registers fn to be called after sign-in and sign-out.
func (s *AuthState) Subscribe(fn func()) (unsubscribe func()) {
	return s.listeners.add(fn)
}

// Register creates an account on the server and signs in.
func (s *AuthState) Register(ctx context.Context, email, password, displayName string) (models.User, error) {
	session, err := s.svc.Register(ctx, email, password, displayName)
	if err != nil {
		return models.User{}, err
	}
	s.setSession(session, false)
	return session.User, nil
}

// Login signs in against the server. While the network is blocked, or when
// the server cannot be reached, the session stored on this device is
// unlocked with the password instead.
func (s *AuthState) Login(ctx context.Context, email, password string) (models.User, error) {
	if s.net.Decision().ShouldBlock {
		return s.unlock(ctx, email, password)
	}

	session, err := s.svc.Login(ctx, email, password)
	if err != nil {
		if !httpClient.IsTransient(err) {
			return models.User{}, err
		}
		s.logger.Warn("Server unreachable, unlocking stored session", "error", err)
		return s.unlock(ctx, email, password)
	}

	s.setSession(session, false)
	return session.User, nil
}

// Resume signs the account stored on this device back in. A still valid
// token is used as is; an expired one is renewed through Login.
func (s *AuthState) Resume(ctx context.Context, password string) (models.User, error) {
	stored, err := s.svc.Stored(ctx)
	if err != nil {
		return models.User{}, err
	}

	session, err := s.svc.Unlock(ctx, stored.Email, password)
	if err != nil {
		return models.User{}, err
	}
	if !session.Expired(s.now()) {
		s.setSession(session, false)
		return session.User, nil
	}
	return s.Login(ctx, stored.Email, password)
}

// StoredAccount returns the account sealed on this device, if any.
func (s *AuthState) StoredAccount(ctx context.Context) (*storage.SealedSession, error) {
	return s.svc.Stored(ctx)
}

func (s *AuthState) unlock(ctx context.Context, email, password string) (models.User, error) {
	session, err := s.svc.Unlock(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}
	s.setSession(session, true)
	s.logger.Info("Signed in offline", "user_id", session.User.ID)
	return session.User, nil
}

// Logout signs out and clears every cached snapshot of the previous user.
func (s *AuthState) Logout(ctx context.Context) error {
	if err := s.svc.Logout(ctx); err != nil {
		return err
	}
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	s.mu.Lock()
	s.session = nil
	s.offline = false
	s.mu.Unlock()

	s.listeners.notify()
	return nil
}

// CurrentUser returns the signed-in user.
func (s *AuthState) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return models.User{}, false
	}
	return s.session.User, true
}

// UserID returns the id of the signed-in user or "".
func (s *AuthState) UserID() string {
	user, _ := s.CurrentUser()
	return user.ID
}

// SignedInOffline reports whether the session was unlocked without the server.
func (s *AuthState) SignedInOffline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offline
}

// AccessToken implements api.TokenSource.
func (s *AuthState) AccessToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil || s.session.AccessToken == "" {
		return "", httpClient.ErrNoCredentials
	}
	if s.session.Expired(s.now()) {
		return "", fmt.Errorf("%w: %w", httpClient.ErrNoCredentials, ErrSessionExpired)
	}
	return s.session.AccessToken, nil
}

func (s *AuthState) setSession(session *models.Session, offline bool) {
	s.mu.Lock()
	s.session = session
	s.offline = offline
	s.mu.Unlock()

	s.listeners.notify()
}
