package storage

import "context"

//go:generate moq -out snapshot_mock.go . SnapshotStorage

// SnapshotStorage defines the raw key/value layer behind the local cache.
// It stores opaque bytes; envelopes, validation and versioning live in the cache package.
type SnapshotStorage interface {
	// PutSnapshot stores data under key, replacing any previous value
	PutSnapshot(ctx context.Context, key string, data []byte) error

	// GetSnapshot returns the stored bytes
	// Returns ErrSnapshotNotFound if key is absent
	GetSnapshot(ctx context.Context, key string) ([]byte, error)

	// ListSnapshots returns every stored key with its value
	ListSnapshots(ctx context.Context) (map[string][]byte, error)

	// ClearSnapshots removes every snapshot (the schema version tag is kept)
	ClearSnapshots(ctx context.Context) error

	// GetSchemaVersion returns the stored version tag or "" if none was written yet
	GetSchemaVersion(ctx context.Context) (string, error)

	// PutSchemaVersion writes the version tag
	PutSchemaVersion(ctx context.Context, version string) error

	// ReplaceSnapshots atomically swaps all snapshots and the version tag.
	// Used by migrations so a half-migrated cache is never observable.
	ReplaceSnapshots(ctx context.Context, version string, snapshots map[string][]byte) error
}
