package boltdb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/barkeeper/internal/logging"
)

var (
	// BoltDB bucket names
	bucketSession   = []byte("session")
	bucketSnapshots = []byte("snapshots")
	bucketMeta      = []byte("meta")
	bucketQueue     = []byte("queue")
	bucketQueueIDs  = []byte("queue_ids")
	bucketQueueDead = []byte("queue_dead") // нечитаемые записи очереди

	allBuckets = [][]byte{bucketSession, bucketSnapshots, bucketMeta, bucketQueue, bucketQueueIDs, bucketQueueDead}
)

// Storage represents BoltDB storage implementation for client.
// It implements storage.SnapshotStorage, storage.QueueStorage and storage.SessionStorage.
type Storage struct {
	db     *bbolt.DB
	logger *slog.Logger
}

// Option configures a Storage.
type Option func(*Storage)

// WithLogger sets the logger used to report quarantined records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) {
		s.logger = logger
	}
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string, opts ...Option) (*Storage, error) {
	// Таймаут нужен, чтобы второй процесс не висел на файловой блокировке
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db, logger: logging.Discard()}
	for _, opt := range opts {
		opt(storage)
	}

	// Инициализируем buckets
	if err := storage.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}
