package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/barkeeper/internal/server/storage"
)

// GetIdempotencyRecord returns the stored response for (user, key)
func (s *Storage) GetIdempotencyRecord(ctx context.Context, userID, key string) (*storage.IdempotencyRecord, error) {
	query := `
		SELECT user_id, idem_key, method, path, status_code, body, created_at
		FROM idempotency_keys
		WHERE user_id = ? AND idem_key = ?
	`

	record := &storage.IdempotencyRecord{}
	err := s.db.QueryRowContext(ctx, query, userID, key).Scan(
		&record.UserID,
		&record.Key,
		&record.Method,
		&record.Path,
		&record.StatusCode,
		&record.Body,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrIdempotencyKeyNotFound
		}
		return nil, fmt.Errorf("failed to get idempotency record: %w", err)
	}

	return record, nil
}

// SaveIdempotencyRecord stores the response, keeping the first one for a key
func (s *Storage) SaveIdempotencyRecord(ctx context.Context, record *storage.IdempotencyRecord) error {
	query := `
		INSERT INTO idempotency_keys (user_id, idem_key, method, path, status_code, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, idem_key) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query,
		record.UserID,
		record.Key,
		record.Method,
		record.Path,
		record.StatusCode,
		record.Body,
		record.CreatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("failed to save idempotency record: %w", err)
	}

	return nil
}

// DeleteIdempotencyRecordsBefore removes records created before t
func (s *Storage) DeleteIdempotencyRecordsBefore(ctx context.Context, t time.Time) (int, error) {
	query := `DELETE FROM idempotency_keys WHERE created_at < ?`

	result, err := s.db.ExecContext(ctx, query, t.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete idempotency records: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
