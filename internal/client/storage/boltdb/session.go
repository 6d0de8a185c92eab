package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/barkeeper/internal/client/storage"
)

var keyCurrentSession = []byte("current")

// SaveSession stores session data as-is
func (s *Storage) SaveSession(ctx context.Context, session *storage.SealedSession) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if err := bucket.Put(keyCurrentSession, data); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
}

// GetSession retrieves stored session data
func (s *Storage) GetSession(ctx context.Context) (*storage.SealedSession, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var session storage.SealedSession
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return storage.ErrSessionNotFound
		}

		data := bucket.Get(keyCurrentSession)
		if data == nil {
			return storage.ErrSessionNotFound
		}

		if err := json.Unmarshal(data, &session); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// DeleteSession removes stored session
func (s *Storage) DeleteSession(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return nil
		}
		// Delete несуществующего ключа не считается ошибкой
		return bucket.Delete(keyCurrentSession)
	})
}
