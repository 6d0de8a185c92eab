// Package cache implements the local best-effort mirror of server state.
//
// Snapshots are stored as {records, last_synced_at} envelopes keyed by entity
// family. The schema version tag is checked on every call; a mismatch runs the
// registered migration chain or purges the cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/barkeeper/internal/client/storage"
)

// CurrentSchemaVersion is the snapshot layout this build reads and writes.
const CurrentSchemaVersion = "2.0.0"

type snapshot struct {
	LastSyncedAt time.Time       `json:"last_synced_at"`
	Records      json.RawMessage `json:"records"`
}

// Store is the local cache. All methods are safe for concurrent use.
type Store struct {
	backend    storage.SnapshotStorage
	logger     *slog.Logger
	migrations map[string]Migration
	now        func() time.Time
	version    string
	mu         sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithVersion overrides the expected schema version.
func WithVersion(version string) Option {
	return func(s *Store) {
		s.version = version
	}
}

// WithMigrations replaces the migration chain.
func WithMigrations(migrations ...Migration) Option {
	return func(s *Store) {
		s.migrations = make(map[string]Migration, len(migrations))
		for _, m := range migrations {
			s.migrations[m.From] = m
		}
	}
}

// WithClock overrides the time source used for last_synced_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a cache store on top of backend
func New(backend storage.SnapshotStorage, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  logger,
		version: CurrentSchemaVersion,
		now:     time.Now,
	}
	WithMigrations(DefaultMigrations()...)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Version returns the expected schema version.
func (s *Store) Version() string {
	return s.version
}

// Save persists records under key as one coherent snapshot.
// Errors are logged and swallowed: the cache is an accelerator, not a source of truth.
func (s *Store) Save(ctx context.Context, key string, records any) {
	s.SaveAt(ctx, key, records, s.now().UTC())
}

// SaveAt is Save with an explicit sync time. Optimistic local edits use it to
// keep the time of the last server fetch.
func (s *Store) SaveAt(ctx context.Context, key string, records any, lastSyncedAt time.Time) {
	if err := s.ensureVersion(ctx); err != nil {
		s.logger.Warn("Cache version check failed, skipping save", "key", key, "error", err)
		return
	}

	raw, err := json.Marshal(records)
	if err != nil {
		s.logger.Warn("Failed to encode cache records", "key", key, "error", err)
		return
	}
	// nil слайс кодируется как null - храним пустой массив
	if string(raw) == "null" {
		raw = json.RawMessage("[]")
	}

	data, err := json.Marshal(snapshot{Records: raw, LastSyncedAt: lastSyncedAt})
	if err != nil {
		s.logger.Warn("Failed to encode cache snapshot", "key", key, "error", err)
		return
	}

	if err := s.backend.PutSnapshot(ctx, key, data); err != nil {
		s.logger.Warn("Failed to persist cache snapshot", "key", key, "error", err)
	}
}

// Load returns the records cached under key.
// ok is false when the snapshot is absent, corrupted or the schema check failed.
// Records failing valid are dropped one by one and the cleaned snapshot is re-persisted.
func Load[T any](ctx context.Context, s *Store, key string, valid func(T) bool) (records []T, lastSyncedAt time.Time, ok bool) {
	if err := s.ensureVersion(ctx); err != nil {
		s.logger.Warn("Cache version check failed", "key", key, "error", err)
		return nil, time.Time{}, false
	}

	data, err := s.backend.GetSnapshot(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrSnapshotNotFound) {
			s.logger.Warn("Failed to read cache snapshot", "key", key, "error", err)
		}
		return nil, time.Time{}, false
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("Corrupted cache snapshot, dropping", "key", key, "error", err)
		s.drop(ctx, key)
		return nil, time.Time{}, false
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(snap.Records, &raw); err != nil {
		s.logger.Warn("Corrupted cache records, dropping", "key", key, "error", err)
		s.drop(ctx, key)
		return nil, time.Time{}, false
	}

	records = make([]T, 0, len(raw))
	dropped := 0
	for _, item := range raw {
		var record T
		if err := json.Unmarshal(item, &record); err != nil {
			dropped++
			continue
		}
		if valid != nil && !valid(record) {
			dropped++
			continue
		}
		records = append(records, record)
	}

	if dropped > 0 {
		s.logger.Warn("Dropped invalid cache records", "key", key, "dropped", dropped, "kept", len(records))
		s.repersist(ctx, key, records, snap.LastSyncedAt)
	}

	return records, snap.LastSyncedAt, true
}

// Clear wipes every cached family. The schema version tag is kept.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.ClearSnapshots(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	s.logger.Info("Cache cleared")
	return nil
}

// SaveSelection stores a current-selection pointer such as the active bar id.
func (s *Store) SaveSelection(ctx context.Context, name, id string) {
	if err := s.ensureVersion(ctx); err != nil {
		s.logger.Warn("Cache version check failed, skipping selection", "name", name, "error", err)
		return
	}

	data, err := json.Marshal(id)
	if err != nil {
		return
	}
	if err := s.backend.PutSnapshot(ctx, selectionKey(name), data); err != nil {
		s.logger.Warn("Failed to persist selection", "name", name, "error", err)
	}
}

// LoadSelection returns the stored selection pointer.
func (s *Store) LoadSelection(ctx context.Context, name string) (string, bool) {
	if err := s.ensureVersion(ctx); err != nil {
		s.logger.Warn("Cache version check failed", "name", name, "error", err)
		return "", false
	}

	data, err := s.backend.GetSnapshot(ctx, selectionKey(name))
	if err != nil {
		return "", false
	}

	var id string
	if err := json.Unmarshal(data, &id); err != nil || id == "" {
		return "", false
	}
	return id, true
}

// CheckVersion runs the schema version check explicitly, typically at startup.
func (s *Store) CheckVersion(ctx context.Context) error {
	return s.ensureVersion(ctx)
}

func (s *Store) repersist(ctx context.Context, key string, records any, lastSyncedAt time.Time) {
	raw, err := json.Marshal(records)
	if err != nil {
		return
	}
	data, err := json.Marshal(snapshot{Records: raw, LastSyncedAt: lastSyncedAt})
	if err != nil {
		return
	}
	if err := s.backend.PutSnapshot(ctx, key, data); err != nil {
		s.logger.Warn("Failed to re-persist cleaned snapshot", "key", key, "error", err)
	}
}

// drop заменяет битый снимок пустым, чтобы не разбирать его повторно
func (s *Store) drop(ctx context.Context, key string) {
	data, _ := json.Marshal(snapshot{Records: json.RawMessage("[]")})
	if err := s.backend.PutSnapshot(ctx, key, data); err != nil {
		s.logger.Warn("Failed to drop corrupted snapshot", "key", key, "error", err)
	}
}

// ensureVersion сравнивает версию на диске с ожидаемой и мигрирует или чистит кэш
func (s *Store) ensureVersion(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.backend.GetSchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if stored == s.version {
		return nil
	}

	if stored == "" {
		// Свежая база или кэш без тега: данным без версии не доверяем
		return s.purge(ctx, stored)
	}

	snapshots, err := s.backend.ListSnapshots(ctx)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	migrated, err := s.migrate(stored, snapshots)
	if err != nil {
		s.logger.Warn("Cache migration unavailable, purging",
			"from", stored, "to", s.version, "reason", err)
		return s.purge(ctx, stored)
	}

	if err := s.backend.ReplaceSnapshots(ctx, s.version, migrated); err != nil {
		s.logger.Warn("Failed to store migrated cache, purging", "error", err)
		return s.purge(ctx, stored)
	}

	s.logger.Info("Cache migrated", "from", stored, "to", s.version, "snapshots", len(migrated))
	return nil
}

func (s *Store) migrate(from string, snapshots map[string][]byte) (map[string][]byte, error) {
	version := from
	// Защита от циклов в цепочке миграций
	for steps := 0; version != s.version; steps++ {
		if steps > len(s.migrations) {
			return nil, fmt.Errorf("migration chain from %s does not reach %s", from, s.version)
		}

		step, ok := s.migrations[version]
		if !ok {
			return nil, fmt.Errorf("no migration from %s", version)
		}

		next, err := step.Apply(snapshots)
		if err != nil {
			return nil, fmt.Errorf("migration %s -> %s failed: %w", step.From, step.To, err)
		}
		snapshots = next
		version = step.To
	}
	return snapshots, nil
}

func (s *Store) purge(ctx context.Context, from string) error {
	if err := s.backend.ReplaceSnapshots(ctx, s.version, map[string][]byte{}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	if from != "" {
		s.logger.Info("Cache purged after schema change", "from", from, "to", s.version)
	}
	return nil
}
