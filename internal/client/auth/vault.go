package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/barkeeper/internal/client/storage"
	"github.com/iudanet/barkeeper/internal/crypto"
	"github.com/iudanet/barkeeper/internal/models"
)

// ErrOtherUser is returned when the device holds a session of a different account.
var ErrOtherUser = errors.New("stored session belongs to another user")

// Vault keeps the last session sealed with a key derived from the user's
// password, so the same user can unlock it without the server.
type Vault struct {
	storage storage.SessionStorage
}

// NewVault creates a vault on top of the session storage
func NewVault(storage storage.SessionStorage) *Vault {
	return &Vault{storage: storage}
}

// Save seals session with password and replaces the stored one.
// A fresh salt is generated on every save.
func (v *Vault) Save(ctx context.Context, session *models.Session, password string) error {
	if session == nil {
		return fmt.Errorf("session is nil")
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	keys, err := crypto.DeriveKeys(password, normalizeEmail(session.User.Email), salt)
	if err != nil {
		return fmt.Errorf("failed to derive keys: %w", err)
	}

	sealed, err := crypto.Seal(session, keys.SealKey)
	if err != nil {
		return fmt.Errorf("failed to seal session: %w", err)
	}

	// Открытые поля нужны для status без пароля
	return v.storage.SaveSession(ctx, &storage.SealedSession{
		UserID:      session.User.ID,
		Email:       normalizeEmail(session.User.Email),
		DisplayName: session.User.DisplayName,
		Role:        string(session.User.Role),
		Salt:        salt,
		Verifier:    crypto.Verifier(keys.VerifyKey),
		Sealed:      sealed,
		ExpiresAt:   session.ExpiresAt,
	})
}

// Unlock opens the stored session of email with password.
// Returns storage.ErrSessionNotFound when nothing is stored,
// ErrOtherUser for a different account and crypto.ErrWrongPassword
// when the password does not match.
func (v *Vault) Unlock(ctx context.Context, email, password string) (*models.Session, error) {
	stored, err := v.storage.GetSession(ctx)
	if err != nil {
		return nil, err
	}

	if stored.Email != normalizeEmail(email) {
		return nil, ErrOtherUser
	}

	keys, err := crypto.DeriveKeys(password, stored.Email, stored.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive keys: %w", err)
	}

	// Сначала сверяем verifier, чтобы не расшифровывать с заведомо неверным ключом
	if err := crypto.CheckVerifier(keys.VerifyKey, stored.Verifier); err != nil {
		return nil, err
	}

	var session models.Session
	if err := crypto.Open(stored.Sealed, keys.SealKey, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// Stored returns the sealed session without opening it.
func (v *Vault) Stored(ctx context.Context) (*storage.SealedSession, error) {
	return v.storage.GetSession(ctx)
}

// Forget removes the stored session
func (v *Vault) Forget(ctx context.Context) error {
	return v.storage.DeleteSession(ctx)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
