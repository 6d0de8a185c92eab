// Package queue is the durable offline operation queue.
//
// Every operation is persisted before AddOperation returns and is keyed by its
// idempotency key. Operations stay in the queue until the remote side
// acknowledges them (MarkDone) or the user discards them; failed operations
// remain visible.
package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/barkeeper/internal/client/storage"
	"github.com/iudanet/barkeeper/internal/models"
)

// DefaultMaxAttempts is the retry budget per operation.
const DefaultMaxAttempts = 5

var (
	// ErrInvalidTransition is returned when a status change is not allowed from the current status
	ErrInvalidTransition = errors.New("invalid operation status transition")

	// ErrInvalidOperation is returned for operations without payload or entity
	ErrInvalidOperation = errors.New("invalid operation")
)

// Filter selects operations. Empty fields match everything.
type Filter struct {
	EntityID string
	Statuses []models.OperationStatus
	Types    []models.OperationType
}

func (f Filter) match(op *models.PendingOperation) bool {
	if f.EntityID != "" && op.EntityID != f.EntityID {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, op.Status) {
		return false
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, op.Type) {
		return false
	}
	return true
}

// Stats количество операций по статусам
type Stats struct {
	Pending int `json:"pending" yaml:"pending"`
	Syncing int `json:"syncing" yaml:"syncing"`
	Failed  int `json:"failed" yaml:"failed"`
	Total   int `json:"total" yaml:"total"`
}

// Queue is the offline operation queue.
type Queue struct {
	store       storage.QueueStorage
	logger      *slog.Logger
	now         func() time.Time
	maxAttempts int
	// mu сериализует переходы статусов поверх транзакций хранилища
	mu sync.Mutex
}

// Option configures a Queue.
type Option func(*Queue)

// WithMaxAttempts sets the retry budget.
func WithMaxAttempts(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.maxAttempts = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) {
		q.now = now
	}
}

// New creates a queue over durable storage
func New(store storage.QueueStorage, logger *slog.Logger, opts ...Option) *Queue {
	q := &Queue{
		store:       store,
		logger:      logger,
		now:         time.Now,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// MaxAttempts returns the retry budget.
func (q *Queue) MaxAttempts() int {
	return q.maxAttempts
}

// NewKey generates a fresh idempotency key.
func NewKey() string {
	return uuid.NewString()
}

// AddOperation persists a new pending operation and returns its id.
// key is the idempotency key; an empty key gets a generated one. Adding an
// existing key is a no-op that returns the existing id.
func (q *Queue) AddOperation(
	ctx context.Context,
	key string,
	payload models.OperationPayload,
	entityID, actorID string,
) (string, error) {
	if payload == nil {
		return "", fmt.Errorf("%w: payload is required", ErrInvalidOperation)
	}
	if entityID == "" {
		return "", fmt.Errorf("%w: entity id is required", ErrInvalidOperation)
	}
	if key == "" {
		key = NewKey()
	}

	now := q.now().UTC()
	op := &models.PendingOperation{
		ID:        key,
		Type:      payload.OperationType(),
		Payload:   payload,
		EntityID:  entityID,
		ActorID:   actorID,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	stored, created, err := q.store.InsertOperation(ctx, op)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue operation: %w", err)
	}

	if created {
		q.logger.Info("Operation queued",
			"op_id", stored.ID, "type", stored.Type, "entity_id", stored.EntityID, "seq", stored.Seq)
	} else {
		q.logger.Debug("Operation already queued", "op_id", stored.ID)
	}
	return stored.ID, nil
}

// GetOperations returns operations matching filter in replay order.
func (q *Queue) GetOperations(ctx context.Context, filter Filter) ([]*models.PendingOperation, error) {
	ops, err := q.store.ListOperations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}

	result := make([]*models.PendingOperation, 0, len(ops))
	for _, op := range ops {
		if filter.match(op) {
			result = append(result, op)
		}
	}
	return result, nil
}

// Get returns one operation.
func (q *Queue) Get(ctx context.Context, id string) (*models.PendingOperation, error) {
	return q.store.GetOperation(ctx, id)
}

// MarkSyncing moves a pending operation to syncing.
func (q *Queue) MarkSyncing(ctx context.Context, id string) error {
	return q.transition(ctx, id, func(op *models.PendingOperation) error {
		if op.Status != models.StatusPending {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, op.Status, models.StatusSyncing)
		}
		op.Status = models.StatusSyncing
		return nil
	})
}

// MarkDone removes an acknowledged operation so it is never replayed again.
func (q *Queue) MarkDone(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.store.DeleteOperation(ctx, id); err != nil {
		return fmt.Errorf("failed to complete operation %s: %w", id, err)
	}
	q.logger.Debug("Operation done", "op_id", id)
	return nil
}

// MarkFailed flips the operation to failed without consuming the retry budget.
func (q *Queue) MarkFailed(ctx context.Context, id string, cause error) error {
	err := q.transition(ctx, id, func(op *models.PendingOperation) error {
		op.Status = models.StatusFailed
		op.LastError = errorText(cause)
		return nil
	})
	if err == nil {
		q.logger.Warn("Operation failed", "op_id", id, "error", cause)
	}
	return err
}

// RecordAttemptFailure counts a failed replay attempt. The operation goes back
// to pending, or to failed once the retry budget is exhausted.
func (q *Queue) RecordAttemptFailure(ctx context.Context, id string, cause error) (exhausted bool, err error) {
	err = q.transition(ctx, id, func(op *models.PendingOperation) error {
		op.Attempts++
		op.LastError = errorText(cause)
		if op.Attempts >= q.maxAttempts {
			op.Status = models.StatusFailed
			exhausted = true
		} else {
			op.Status = models.StatusPending
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if exhausted {
		q.logger.Warn("Operation retry budget exhausted", "op_id", id, "error", cause)
	}
	return exhausted, nil
}

// Release returns a syncing operation to pending without counting an attempt.
// Used when replay is interrupted by cancellation.
func (q *Queue) Release(ctx context.Context, id string) error {
	return q.transition(ctx, id, func(op *models.PendingOperation) error {
		if op.Status == models.StatusSyncing {
			op.Status = models.StatusPending
		}
		return nil
	})
}

// Retry moves a failed operation back to pending with a fresh budget.
func (q *Queue) Retry(ctx context.Context, id string) error {
	return q.transition(ctx, id, func(op *models.PendingOperation) error {
		if op.Status != models.StatusFailed {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, op.Status, models.StatusPending)
		}
		op.Status = models.StatusPending
		op.Attempts = 0
		op.LastError = ""
		return nil
	})
}

// Discard drops an operation the user gave up on. Syncing operations cannot be discarded.
func (q *Queue) Discard(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	op, err := q.store.GetOperation(ctx, id)
	if err != nil {
		return err
	}
	if op.Status == models.StatusSyncing {
		return fmt.Errorf("%w: operation is syncing", ErrInvalidTransition)
	}

	if err := q.store.DeleteOperation(ctx, id); err != nil {
		return fmt.Errorf("failed to discard operation %s: %w", id, err)
	}
	q.logger.Info("Operation discarded", "op_id", id, "type", op.Type)
	return nil
}

// RebindEntity replaces a temporary id with the server id in every queued
// operation that still references it.
func (q *Queue) RebindEntity(ctx context.Context, from, to string) (int, error) {
	if from == "" || from == to {
		return 0, nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now().UTC()
	n, err := q.store.UpdateOperations(ctx, func(op *models.PendingOperation) bool {
		changed := false
		if id, ok := models.RebindEntityID(op.EntityID, from, to); ok {
			op.EntityID = id
			changed = true
		}
		if rebinder, ok := op.Payload.(models.EntityRebinder); ok {
			if rebound, ok := rebinder.RebindEntity(from, to); ok {
				op.Payload = rebound
				changed = true
			}
		}
		if changed {
			op.UpdatedAt = now
		}
		return changed
	})
	if err != nil {
		return 0, fmt.Errorf("failed to rebind %s: %w", from, err)
	}
	if n > 0 {
		q.logger.Info("Rebound queued operations", "from", from, "to", to, "count", n)
	}
	return n, nil
}

// RecoverInterrupted returns operations left syncing by a crash to pending.
func (q *Queue) RecoverInterrupted(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n, err := q.store.UpdateOperations(ctx, func(op *models.PendingOperation) bool {
		if op.Status != models.StatusSyncing {
			return false
		}
		op.Status = models.StatusPending
		return true
	})
	if err != nil {
		return 0, fmt.Errorf("failed to recover interrupted operations: %w", err)
	}
	if n > 0 {
		q.logger.Warn("Recovered interrupted operations", "count", n)
	}
	return n, nil
}

// Stats counts operations by status.
func (q *Queue) Stats(ctx context.Context) (Stats, error) {
	ops, err := q.store.ListOperations(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list operations: %w", err)
	}

	var stats Stats
	for _, op := range ops {
		switch op.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusSyncing:
			stats.Syncing++
		case models.StatusFailed:
			stats.Failed++
		}
	}
	stats.Total = len(ops)
	return stats, nil
}

func (q *Queue) transition(ctx context.Context, id string, fn func(op *models.PendingOperation) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now().UTC()
	_, err := q.store.UpdateOperation(ctx, id, func(op *models.PendingOperation) error {
		if err := fn(op); err != nil {
			return err
		}
		op.UpdatedAt = now
		return nil
	})
	if err != nil {
		return fmt.Errorf("operation %s: %w", id, err)
	}
	return nil
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
