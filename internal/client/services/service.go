// Package services wraps each remote entity family. Every mutation has a
// direct path used while the network is usable and a queued path that returns
// an optimistic result; every read races the remote call against a deadline
// and falls back to the local cache.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	httpClient "github.com/iudanet/barkeeper/internal/client/api"
	"github.com/iudanet/barkeeper/internal/client/cache"
	"github.com/iudanet/barkeeper/internal/client/future"
	"github.com/iudanet/barkeeper/internal/client/network"
	"github.com/iudanet/barkeeper/internal/client/queue"
	"github.com/iudanet/barkeeper/internal/models"
)

// DefaultReadTimeout is how long a read waits for the server before using the cache.
const DefaultReadTimeout = 3 * time.Second

// ErrServerNotMapped blocks a sale whose server name does not resolve to a user.
var ErrServerNotMapped = errors.New("no user is mapped to this server name")

// Network is the part of the network monitor services depend on.
type Network interface {
	Decision() network.Decision
	ReportFailure(err error)
}

// Queue is the part of the offline queue services depend on.
type Queue interface {
	AddOperation(ctx context.Context, key string, payload models.OperationPayload, entityID, actorID string) (string, error)
	GetOperations(ctx context.Context, filter queue.Filter) ([]*models.PendingOperation, error)
}

// Deps holds collaborators shared by all services.
type Deps struct {
	API         httpClient.ClientAPI
	Cache       *cache.Store
	Queue       Queue
	Network     Network
	Logger      *slog.Logger
	Actor       func() string // Actor id текущего пользователя
	Now         func() time.Time
	ReadTimeout time.Duration
}

// Snapshot is the result of a read.
type Snapshot[T any] struct {
	LastSyncedAt time.Time
	Records      []T
	FromCache    bool // FromCache данные взяты из локального кэша, сервер недоступен
}

type base struct {
	Deps
}

func newBase(d Deps) base {
	if d.ReadTimeout <= 0 {
		d.ReadTimeout = DefaultReadTimeout
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Actor == nil {
		d.Actor = func() string { return "" }
	}
	return base{Deps: d}
}

func (b *base) blocked() bool {
	return b.Network.Decision().ShouldBlock
}

// shouldQueue решает, идти ли через очередь: сеть заблокирована, сущность
// ещё не подтверждена сервером или по ней уже есть операции в очереди
func (b *base) shouldQueue(ctx context.Context, entityID string) (bool, error) {
	if b.blocked() || models.IsTempID(entityID) {
		return true, nil
	}

	ops, err := b.Queue.GetOperations(ctx, queue.Filter{
		EntityID: entityID,
		Statuses: []models.OperationStatus{models.StatusPending, models.StatusSyncing, models.StatusFailed},
	})
	if err != nil {
		return false, fmt.Errorf("failed to check queued operations: %w", err)
	}
	return len(ops) > 0, nil
}

func (b *base) enqueue(ctx context.Context, key string, payload models.OperationPayload, entityID string) error {
	if _, err := b.Queue.AddOperation(ctx, key, payload, entityID, b.Actor()); err != nil {
		return fmt.Errorf("failed to queue %s: %w", payload.OperationType(), err)
	}
	return nil
}

func (b *base) pending(ctx context.Context) []*models.PendingOperation {
	ops, err := b.Queue.GetOperations(ctx, queue.Filter{
		Statuses: []models.OperationStatus{models.StatusPending, models.StatusSyncing},
	})
	if err != nil {
		b.Logger.Warn("Failed to read pending operations", "error", err)
		return nil
	}
	return ops
}

func newTempID() string {
	return models.TempIDPrefix + uuid.NewString()
}

// read races fetch against the read timeout and falls back to the cache.
// A result arriving after the deadline is dropped and never written to the cache.
func read[T any](
	ctx context.Context,
	b *base,
	key string,
	valid func(T) bool,
	fetch func(ctx context.Context) ([]T, error),
) (Snapshot[T], error) {
	if !b.blocked() {
		f := future.Go(ctx, fetch)
		records, err := f.Await(b.ReadTimeout)
		if err == nil {
			b.Cache.Save(ctx, key, records)
			return Snapshot[T]{Records: records, LastSyncedAt: b.Now().UTC()}, nil
		}

		if errors.Is(err, future.ErrDeadlineExceeded) {
			b.Network.ReportFailure(err)
		}
		b.Logger.Warn("Remote read failed, using cache", "key", key, "error", err)

		cached, syncedAt, ok := cache.Load(ctx, b.Cache, key, valid)
		if ok {
			return Snapshot[T]{Records: cached, LastSyncedAt: syncedAt, FromCache: true}, nil
		}
		// Без кэша отказ сервера важнее пустого результата
		if httpClient.IsRejected(err) {
			return Snapshot[T]{}, err
		}
		return Snapshot[T]{FromCache: true}, nil
	}

	cached, syncedAt, ok := cache.Load(ctx, b.Cache, key, valid)
	if !ok {
		return Snapshot[T]{FromCache: true}, nil
	}
	return Snapshot[T]{Records: cached, LastSyncedAt: syncedAt, FromCache: true}, nil
}
