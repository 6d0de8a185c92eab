package queue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/barkeeper/internal/client/storage"
	"github.com/iudanet/barkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/barkeeper/internal/models"
)

func newTestQueue(t *testing.T, opts ...Option) (*Queue, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "queue.db")
	store, err := boltdb.New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, logger, opts...), dbPath
}

func payTicket(id string) models.PayTicketPayload {
	return models.PayTicketPayload{TicketID: id, PaymentMethod: "card", PaidAt: time.Now().UTC()}
}

func TestQueue_AddOperation(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	id, err := q.AddOperation(ctx, "", payTicket("t1"), "t1", "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	ops, err := q.GetOperations(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, id, ops[0].ID)
	assert.Equal(t, models.OpPayTicket, ops[0].Type)
	assert.Equal(t, models.StatusPending, ops[0].Status)
	assert.Equal(t, "user-1", ops[0].ActorID)
}

func TestQueue_AddOperationIdempotent(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	first, err := q.AddOperation(ctx, "key-1", payTicket("t1"), "t1", "user-1")
	require.NoError(t, err)
	second, err := q.AddOperation(ctx, "key-1", payTicket("t1"), "t1", "user-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	ops, err := q.GetOperations(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, ops, 1)
}

func TestQueue_AddOperationValidation(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	_, err := q.AddOperation(ctx, "", nil, "t1", "u")
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = q.AddOperation(ctx, "", payTicket("t1"), "", "u")
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestQueue_SurvivesRestart(t *testing.T) {
	q, dbPath := newTestQueue(t)
	ctx := context.Background()

	id, err := q.AddOperation(ctx, "", payTicket("t1"), "t1", "user-1")
	require.NoError(t, err)

	// Закрываем и открываем базу заново как после перезагрузки
	require.NoError(t, q.store.(*boltdb.Storage).Close())
	store, err := boltdb.New(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		_ = store.Close()
	}()

	reopened := New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	op, err := reopened.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, op.Status)
}

func TestQueue_GetOperationsFilter(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	_, err := q.AddOperation(ctx, "a", payTicket("t1"), "t1", "u")
	require.NoError(t, err)
	_, err = q.AddOperation(ctx, "b", models.UpdateBarPayload{BarID: "b1", Patch: models.BarPatch{Name: models.StringPtr("X")}}, "b1", "u")
	require.NoError(t, err)
	_, err = q.AddOperation(ctx, "c", payTicket("t2"), "t2", "u")
	require.NoError(t, err)
	require.NoError(t, q.MarkFailed(ctx, "c", errors.New("rejected")))

	byEntity, err := q.GetOperations(ctx, Filter{EntityID: "b1"})
	require.NoError(t, err)
	require.Len(t, byEntity, 1)
	assert.Equal(t, "b", byEntity[0].ID)

	byStatus, err := q.GetOperations(ctx, Filter{Statuses: []models.OperationStatus{models.StatusFailed}})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "c", byStatus[0].ID)
	assert.Equal(t, "rejected", byStatus[0].LastError)

	byType, err := q.GetOperations(ctx, Filter{Types: []models.OperationType{models.OpPayTicket}})
	require.NoError(t, err)
	assert.Len(t, byType, 2)
}

func TestQueue_Lifecycle(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	id, err := q.AddOperation(ctx, "", payTicket("t1"), "t1", "u")
	require.NoError(t, err)

	require.NoError(t, q.MarkSyncing(ctx, id))
	// Повторный MarkSyncing недопустим
	assert.ErrorIs(t, q.MarkSyncing(ctx, id), ErrInvalidTransition)

	// Операция остаётся в очереди до подтверждения
	op, err := q.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSyncing, op.Status)

	require.NoError(t, q.MarkDone(ctx, id))
	_, err = q.Get(ctx, id)
	assert.ErrorIs(t, err, storage.ErrOperationNotFound)
}

func TestQueue_RetryBudget(t *testing.T) {
	q, _ := newTestQueue(t, WithMaxAttempts(3))
	ctx := context.Background()

	id, err := q.AddOperation(ctx, "", payTicket("t1"), "t1", "u")
	require.NoError(t, err)

	cause := errors.New("connection reset")
	for i := 1; i <= 2; i++ {
		require.NoError(t, q.MarkSyncing(ctx, id))
		exhausted, err := q.RecordAttemptFailure(ctx, id, cause)
		require.NoError(t, err)
		assert.False(t, exhausted)
	}

	require.NoError(t, q.MarkSyncing(ctx, id))
	exhausted, err := q.RecordAttemptFailure(ctx, id, cause)
	require.NoError(t, err)
	assert.True(t, exhausted)

	// Неудачная операция видна, а не потеряна
	op, err := q.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, op.Status)
	assert.Equal(t, 3, op.Attempts)
	assert.Equal(t, "connection reset", op.LastError)

	require.NoError(t, q.Retry(ctx, id))
	op, err = q.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, op.Status)
	assert.Zero(t, op.Attempts)
	assert.Empty(t, op.LastError)

	assert.ErrorIs(t, q.Retry(ctx, id), ErrInvalidTransition)
}

func TestQueue_Discard(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	id, err := q.AddOperation(ctx, "", payTicket("t1"), "t1", "u")
	require.NoError(t, err)
	require.NoError(t, q.MarkSyncing(ctx, id))

	assert.ErrorIs(t, q.Discard(ctx, id), ErrInvalidTransition)

	require.NoError(t, q.MarkFailed(ctx, id, errors.New("rejected")))
	require.NoError(t, q.Discard(ctx, id))

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}

func TestQueue_RebindEntity(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	tempTicket := models.TempIDPrefix + "t"
	_, err := q.AddOperation(ctx, "create", models.CreateTicketPayload{
		TempID: tempTicket,
		Ticket: models.NewTicket{BarID: "b1"},
	}, tempTicket, "u")
	require.NoError(t, err)
	_, err = q.AddOperation(ctx, "pay", payTicket(tempTicket), tempTicket, "u")
	require.NoError(t, err)
	_, err = q.AddOperation(ctx, "sale", models.CreateSalePayload{
		Sale: models.NewSale{BarID: "b1", TicketID: tempTicket},
	}, tempTicket, "u")
	require.NoError(t, err)
	_, err = q.AddOperation(ctx, "other", payTicket("t9"), "t9", "u")
	require.NoError(t, err)

	n, err := q.RebindEntity(ctx, tempTicket, "srv-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	pay, err := q.Get(ctx, "pay")
	require.NoError(t, err)
	assert.Equal(t, "srv-1", pay.EntityID)
	assert.Equal(t, "srv-1", pay.Payload.(models.PayTicketPayload).TicketID)

	sale, err := q.Get(ctx, "sale")
	require.NoError(t, err)
	assert.Equal(t, "srv-1", sale.Payload.(models.CreateSalePayload).Sale.TicketID)

	other, err := q.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "t9", other.EntityID)
}

func TestQueue_RebindEntityMappingKeys(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	tempBar := models.TempIDPrefix + "bar1"
	_, err := q.AddOperation(ctx, "upsert", models.UpsertMappingPayload{
		BarID: tempBar, ServerName: "Ahmed", UserID: "u1",
	}, models.MappingEntityID(tempBar, "Ahmed"), "u")
	require.NoError(t, err)

	n, err := q.RebindEntity(ctx, tempBar, "srv-bar")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	upsert, err := q.Get(ctx, "upsert")
	require.NoError(t, err)
	assert.Equal(t, models.MappingEntityID("srv-bar", "Ahmed"), upsert.EntityID)
	assert.Equal(t, "srv-bar", upsert.Payload.(models.UpsertMappingPayload).BarID)

	// Удаление для подтверждённого бара должно попасть в ту же группу
	_, err = q.AddOperation(ctx, "delete", models.DeleteMappingPayload{
		BarID: "srv-bar", ServerName: "ahmed",
	}, models.MappingEntityID("srv-bar", "ahmed"), "u")
	require.NoError(t, err)

	ops, err := q.GetOperations(ctx, Filter{EntityID: models.MappingEntityID("srv-bar", "Ahmed")})
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, "upsert", ops[0].ID)
	assert.Equal(t, "delete", ops[1].ID)
}

func TestQueue_RecoverInterrupted(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	id, err := q.AddOperation(ctx, "", payTicket("t1"), "t1", "u")
	require.NoError(t, err)
	require.NoError(t, q.MarkSyncing(ctx, id))

	n, err := q.RecoverInterrupted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Pending: 1, Total: 1}, stats)
}

func TestQueue_StorageErrorsPropagate(t *testing.T) {
	store := &storage.QueueStorageMock{
		InsertOperationFunc: func(ctx context.Context, op *models.PendingOperation) (*models.PendingOperation, bool, error) {
			return nil, false, storage.ErrStorageClosed
		},
	}
	q := New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := q.AddOperation(context.Background(), "", payTicket("t1"), "t1", "u")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.Len(t, store.InsertOperationCalls(), 1)
}
