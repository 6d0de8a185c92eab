package storage

import (
	"context"

	"github.com/iudanet/barkeeper/internal/models"
)

//go:generate moq -out queue_mock.go . QueueStorage

// QueueStorage defines durable storage for pending operations
type QueueStorage interface {
	// InsertOperation assigns the next sequence number and stores op.
	// If an operation with the same ID already exists it is returned unchanged
	// and created is false.
	InsertOperation(ctx context.Context, op *models.PendingOperation) (stored *models.PendingOperation, created bool, err error)

	// GetOperation retrieves an operation by ID
	// Returns ErrOperationNotFound if it doesn't exist
	GetOperation(ctx context.Context, id string) (*models.PendingOperation, error)

	// ListOperations returns all operations ordered by sequence number
	ListOperations(ctx context.Context) ([]*models.PendingOperation, error)

	// UpdateOperation applies fn to the stored operation inside one transaction
	// Returns ErrOperationNotFound if it doesn't exist
	UpdateOperation(ctx context.Context, id string, fn func(op *models.PendingOperation) error) (*models.PendingOperation, error)

	// UpdateOperations applies fn to every operation and persists those for which fn returns true.
	// Returns the number of updated operations.
	UpdateOperations(ctx context.Context, fn func(op *models.PendingOperation) bool) (int, error)

	// DeleteOperation removes an operation
	// Returns ErrOperationNotFound if it doesn't exist
	DeleteOperation(ctx context.Context, id string) error
}
