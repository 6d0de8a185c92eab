package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/barkeeper/internal/client/storage"
)

var keySchemaVersion = []byte("schema_version")

// PutSnapshot stores data under key, replacing any previous value
func (s *Storage) PutSnapshot(ctx context.Context, key string, data []byte) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshots)
		if bucket == nil {
			return fmt.Errorf("snapshots bucket not found")
		}

		if err := bucket.Put([]byte(key), data); err != nil {
			return fmt.Errorf("failed to save snapshot %s: %w", key, err)
		}
		return nil
	})
}

// GetSnapshot returns the bytes stored under key
func (s *Storage) GetSnapshot(ctx context.Context, key string) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshots)
		if bucket == nil {
			return storage.ErrSnapshotNotFound
		}

		value := bucket.Get([]byte(key))
		if value == nil {
			return storage.ErrSnapshotNotFound
		}

		// Значение валидно только внутри транзакции - копируем
		data = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// ListSnapshots returns every stored key with its value
func (s *Storage) ListSnapshots(ctx context.Context) (map[string][]byte, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	snapshots := make(map[string][]byte)
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshots)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			snapshots[string(k)] = append([]byte(nil), v...)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	return snapshots, nil
}

// ClearSnapshots removes every snapshot
func (s *Storage) ClearSnapshots(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return recreateBucket(tx, bucketSnapshots)
	})
	if err != nil {
		return fmt.Errorf("clear transaction failed: %w", err)
	}
	return nil
}

// GetSchemaVersion returns the stored version tag or "" if none was written yet
func (s *Storage) GetSchemaVersion(ctx context.Context) (string, error) {
	if s.db == nil {
		return "", storage.ErrStorageClosed
	}

	var version string
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}
		version = string(bucket.Get(keySchemaVersion))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get schema version: %w", err)
	}

	return version, nil
}

// PutSchemaVersion writes the version tag
func (s *Storage) PutSchemaVersion(ctx context.Context, version string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}
		if err := bucket.Put(keySchemaVersion, []byte(version)); err != nil {
			return fmt.Errorf("failed to save schema version: %w", err)
		}
		return nil
	})
}

// ReplaceSnapshots atomically swaps all snapshots and the version tag
func (s *Storage) ReplaceSnapshots(ctx context.Context, version string, snapshots map[string][]byte) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := recreateBucket(tx, bucketSnapshots); err != nil {
			return err
		}

		bucket := tx.Bucket(bucketSnapshots)
		for key, data := range snapshots {
			if err := bucket.Put([]byte(key), data); err != nil {
				return fmt.Errorf("failed to save snapshot %s: %w", key, err)
			}
		}

		meta := tx.Bucket(bucketMeta)
		if meta == nil {
			return fmt.Errorf("meta bucket not found")
		}
		return meta.Put(keySchemaVersion, []byte(version))
	})
	if err != nil {
		return fmt.Errorf("replace transaction failed: %w", err)
	}
	return nil
}

// recreateBucket удаляет bucket полностью и создает заново пустой
func recreateBucket(tx *bbolt.Tx, name []byte) error {
	if err := tx.DeleteBucket(name); err != nil && err != bbolt.ErrBucketNotFound {
		return fmt.Errorf("failed to delete bucket: %w", err)
	}
	if _, err := tx.CreateBucket(name); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}
