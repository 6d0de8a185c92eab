package storage

import (
	"context"
	"time"
)

// IdempotencyRecord сохранённый ответ на мутацию с ключом идемпотентности
type IdempotencyRecord struct {
	CreatedAt  time.Time
	UserID     string
	Key        string
	Method     string
	Path       string
	Body       []byte
	StatusCode int
}

// IdempotencyStorage keeps responses of executed mutations per (user, key)
type IdempotencyStorage interface {
	// GetIdempotencyRecord returns the stored response
	// Returns ErrIdempotencyKeyNotFound if the key was never executed
	GetIdempotencyRecord(ctx context.Context, userID, key string) (*IdempotencyRecord, error)

	// SaveIdempotencyRecord stores the response. The first record for a key wins.
	SaveIdempotencyRecord(ctx context.Context, record *IdempotencyRecord) error

	// DeleteIdempotencyRecordsBefore removes records created before t
	DeleteIdempotencyRecordsBefore(ctx context.Context, t time.Time) (int, error)
}
