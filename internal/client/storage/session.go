package storage

import "context"

//go:generate moq -out session_mock.go . SessionStorage

// SessionStorage defines interface for storing the sealed session on client.
// This is the lowest storage layer - it works with already sealed data
// and doesn't perform any encryption/decryption itself.
type SessionStorage interface {
	// SaveSession stores session data as-is (tokens should already be sealed)
	SaveSession(ctx context.Context, session *SealedSession) error

	// GetSession retrieves stored session data
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*SealedSession, error)

	// DeleteSession removes stored session (logout)
	DeleteSession(ctx context.Context) error
}

// SealedSession represents session information in storage.
// Sealed holds the AES-GCM encrypted models.Session (base64), the key is
// derived from the user's password and Salt, so the session can be unlocked
// offline by the same user.
type SealedSession struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Salt        string `json:"salt"`
	Verifier    string `json:"verifier"`
	Sealed      string `json:"sealed"`
	ExpiresAt   int64  `json:"expires_at"`
}
