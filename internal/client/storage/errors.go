package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound indicates that no session is stored on this device
	ErrSessionNotFound = errors.New("session not found")

	// ErrSnapshotNotFound indicates that no cached snapshot exists for the key
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrOperationNotFound indicates that pending operation was not found
	ErrOperationNotFound = errors.New("operation not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
