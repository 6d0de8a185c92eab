// Package crypto protects the session cached on the device.
//
// Two independent keys are derived from the user's password with Argon2id:
// one seals the session with AES-256-GCM, the other produces a verifier that
// lets the client check the password offline before unsealing.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id
const (
	Argon2Time    = 1
	Argon2Memory  = 64 * 1024 // Argon2Memory объем памяти в KB
	Argon2Threads = 4
	KeySize       = 32
	SaltSize      = 32
)

// Keys ключи, производные от пароля
type Keys struct {
	VerifyKey []byte // VerifyKey для офлайн проверки пароля
	SealKey   []byte // SealKey для шифрования сессии
}

// NewSalt returns a random salt encoded in base64.
func NewSalt() (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// DeriveKeys derives the verify and seal keys from password.
// The email is mixed in so equal passwords of different users give different keys.
func DeriveKeys(password, email, saltBase64 string) (*Keys, error) {
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	salt, err := base64.StdEncoding.DecodeString(saltBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(salt))
	}

	derive := func(purpose string) []byte {
		input := []byte(password + "\x00" + email + "\x00" + purpose)
		return argon2.IDKey(input, salt, Argon2Time, Argon2Memory, Argon2Threads, KeySize)
	}

	return &Keys{
		VerifyKey: derive("verify"),
		SealKey:   derive("seal"),
	}, nil
}
