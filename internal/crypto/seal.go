package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrWrongPassword is returned when the verifier or the seal does not match.
var ErrWrongPassword = errors.New("wrong password")

// Seal encodes v as JSON and encrypts it with AES-256-GCM.
// Result: base64(nonce || ciphertext || tag).
func Seal(v any, key []byte) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal value: %w", err)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal into v.
func Open(sealed string, key []byte, v any) error {
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return fmt.Errorf("failed to decode sealed data: %w", err)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return err
	}
	if len(data) < aead.NonceSize() {
		return fmt.Errorf("sealed data too short")
	}

	nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return ErrWrongPassword
	}

	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("failed to unmarshal sealed value: %w", err)
	}
	return nil
}

// Verifier returns the stored form of the verify key.
func Verifier(verifyKey []byte) string {
	sum := sha256.Sum256(verifyKey)
	return hex.EncodeToString(sum[:])
}

// CheckVerifier compares verifyKey with a stored verifier in constant time.
func CheckVerifier(verifyKey []byte, verifier string) error {
	if subtle.ConstantTimeCompare([]byte(Verifier(verifyKey)), []byte(verifier)) != 1 {
		return ErrWrongPassword
	}
	return nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aead, nil
}
