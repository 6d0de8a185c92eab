package boltdb

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/barkeeper/internal/client/storage"
	"github.com/iudanet/barkeeper/internal/models"
)

// seqKey кодирует порядковый номер в big-endian, чтобы курсор bolt обходил записи по порядку
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// InsertOperation assigns the next sequence number and stores op
func (s *Storage) InsertOperation(ctx context.Context, op *models.PendingOperation) (*models.PendingOperation, bool, error) {
	if s.db == nil {
		return nil, false, storage.ErrStorageClosed
	}
	if op == nil || op.ID == "" {
		return nil, false, fmt.Errorf("operation id is required")
	}

	var (
		stored  *models.PendingOperation
		created bool
	)
	err := s.db.Update(func(tx *bbolt.Tx) error {
		queue := tx.Bucket(bucketQueue)
		ids := tx.Bucket(bucketQueueIDs)
		if queue == nil || ids == nil {
			return fmt.Errorf("queue buckets not found")
		}

		// Ключ идемпотентности уже есть - возвращаем существующую запись
		if key := ids.Get([]byte(op.ID)); key != nil {
			existing, err := decodeOperation(queue.Get(key))
			if err != nil {
				return err
			}
			stored = existing
			return nil
		}

		seq, err := queue.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}

		next := op.Clone()
		next.Seq = seq

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal operation: %w", err)
		}

		key := seqKey(seq)
		if err := queue.Put(key, data); err != nil {
			return fmt.Errorf("failed to save operation: %w", err)
		}
		if err := ids.Put([]byte(next.ID), key); err != nil {
			return fmt.Errorf("failed to index operation: %w", err)
		}

		stored = next
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return stored, created, nil
}

// GetOperation retrieves an operation by ID
func (s *Storage) GetOperation(ctx context.Context, id string) (*models.PendingOperation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var op *models.PendingOperation
	err := s.db.View(func(tx *bbolt.Tx) error {
		queue := tx.Bucket(bucketQueue)
		ids := tx.Bucket(bucketQueueIDs)
		if queue == nil || ids == nil {
			return storage.ErrOperationNotFound
		}

		key := ids.Get([]byte(id))
		if key == nil {
			return storage.ErrOperationNotFound
		}

		var err error
		op, err = decodeOperation(queue.Get(key))
		return err
	})
	if err != nil {
		return nil, err
	}

	return op, nil
}

// ListOperations returns all operations ordered by sequence number.
// Records that cannot be decoded are moved to the dead-letter bucket and
// skipped, so one corrupted record does not block the rest of the queue.
func (s *Storage) ListOperations(ctx context.Context) ([]*models.PendingOperation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var (
		ops []*models.PendingOperation
		bad [][]byte
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		queue := tx.Bucket(bucketQueue)
		if queue == nil {
			return nil
		}

		return queue.ForEach(func(k, v []byte) error {
			op, err := decodeOperation(v)
			if err != nil {
				// Ключ валиден только внутри транзакции - копируем
				bad = append(bad, append([]byte(nil), k...))
				return nil
			}
			ops = append(ops, op)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}

	if len(bad) > 0 {
		err := s.db.Update(func(tx *bbolt.Tx) error {
			return s.quarantine(tx, bad)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to quarantine operations: %w", err)
		}
	}

	return ops, nil
}

// quarantine переносит нечитаемые записи в queue_dead и удаляет их из индекса
func (s *Storage) quarantine(tx *bbolt.Tx, keys [][]byte) error {
	queue := tx.Bucket(bucketQueue)
	ids := tx.Bucket(bucketQueueIDs)
	dead := tx.Bucket(bucketQueueDead)
	if queue == nil || ids == nil || dead == nil {
		return fmt.Errorf("queue buckets not found")
	}

	for _, key := range keys {
		data := queue.Get(key)
		if data == nil {
			continue
		}
		// Запись могли перезаписать между транзакциями
		if _, err := decodeOperation(data); err == nil {
			continue
		}
		if err := dead.Put(key, append([]byte(nil), data...)); err != nil {
			return fmt.Errorf("failed to save dead operation: %w", err)
		}
		if err := queue.Delete(key); err != nil {
			return fmt.Errorf("failed to delete dead operation: %w", err)
		}

		var indexed [][]byte
		err := ids.ForEach(func(id, seq []byte) error {
			if bytes.Equal(seq, key) {
				indexed = append(indexed, append([]byte(nil), id...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, id := range indexed {
			if err := ids.Delete(id); err != nil {
				return fmt.Errorf("failed to delete operation index: %w", err)
			}
		}

		s.logger.Warn("Quarantined unreadable queue record", "seq", binary.BigEndian.Uint64(key))
	}
	return nil
}

// UpdateOperation applies fn to the stored operation inside one transaction
func (s *Storage) UpdateOperation(
	ctx context.Context,
	id string,
	fn func(op *models.PendingOperation) error,
) (*models.PendingOperation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var updated *models.PendingOperation
	err := s.db.Update(func(tx *bbolt.Tx) error {
		queue := tx.Bucket(bucketQueue)
		ids := tx.Bucket(bucketQueueIDs)
		if queue == nil || ids == nil {
			return storage.ErrOperationNotFound
		}

		key := ids.Get([]byte(id))
		if key == nil {
			return storage.ErrOperationNotFound
		}

		op, err := decodeOperation(queue.Get(key))
		if err != nil {
			return err
		}

		if err := fn(op); err != nil {
			return err
		}

		// ID и Seq неизменяемы
		op.ID = id
		op.Seq = binary.BigEndian.Uint64(key)

		data, err := json.Marshal(op)
		if err != nil {
			return fmt.Errorf("failed to marshal operation: %w", err)
		}
		if err := queue.Put(key, data); err != nil {
			return fmt.Errorf("failed to save operation: %w", err)
		}

		updated = op
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdateOperations applies fn to every operation and persists those for which fn returns true
func (s *Storage) UpdateOperations(ctx context.Context, fn func(op *models.PendingOperation) bool) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := s.db.Update(func(tx *bbolt.Tx) error {
		queue := tx.Bucket(bucketQueue)
		if queue == nil {
			return nil
		}

		// Сначала собираем изменения: модифицировать bucket внутри ForEach нельзя
		changed := make(map[string][]byte)
		var bad [][]byte
		err := queue.ForEach(func(k, v []byte) error {
			op, err := decodeOperation(v)
			if err != nil {
				bad = append(bad, append([]byte(nil), k...))
				return nil
			}
			if !fn(op) {
				return nil
			}
			op.Seq = binary.BigEndian.Uint64(k)
			data, err := json.Marshal(op)
			if err != nil {
				return fmt.Errorf("failed to marshal operation: %w", err)
			}
			changed[string(k)] = data
			return nil
		})
		if err != nil {
			return err
		}

		for k, data := range changed {
			if err := queue.Put([]byte(k), data); err != nil {
				return fmt.Errorf("failed to save operation: %w", err)
			}
		}
		count = len(changed)
		if len(bad) > 0 {
			return s.quarantine(tx, bad)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// DeleteOperation removes an operation
func (s *Storage) DeleteOperation(ctx context.Context, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		queue := tx.Bucket(bucketQueue)
		ids := tx.Bucket(bucketQueueIDs)
		if queue == nil || ids == nil {
			return storage.ErrOperationNotFound
		}

		key := ids.Get([]byte(id))
		if key == nil {
			return storage.ErrOperationNotFound
		}
		// Копия ключа: после Delete исходный слайс невалиден
		key = append([]byte(nil), key...)

		if err := queue.Delete(key); err != nil {
			return fmt.Errorf("failed to delete operation: %w", err)
		}
		if err := ids.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete operation index: %w", err)
		}
		return nil
	})
}

func decodeOperation(data []byte) (*models.PendingOperation, error) {
	if data == nil {
		return nil, storage.ErrOperationNotFound
	}

	var op models.PendingOperation
	if err := json.Unmarshal(data, &op); err != nil {
		return nil, fmt.Errorf("failed to unmarshal operation: %w", err)
	}
	return &op, nil
}
