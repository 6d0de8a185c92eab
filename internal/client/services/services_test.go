package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/iudanet/barkeeper/internal/client/api"
	"github.com/iudanet/barkeeper/internal/client/cache"
	"github.com/iudanet/barkeeper/internal/client/network"
	"github.com/iudanet/barkeeper/internal/client/queue"
	"github.com/iudanet/barkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/pkg/api"
)

type fakeNetwork struct {
	failures []error
	blocked  bool
	mu       sync.Mutex
}

func (n *fakeNetwork) Decision() network.Decision {
	n.mu.Lock()
	defer n.mu.Unlock()
	return network.Decision{ShouldBlock: n.blocked, ShouldShowBanner: n.blocked}
}

func (n *fakeNetwork) ReportFailure(err error) {
	n.mu.Lock()
	n.failures = append(n.failures, err)
	n.mu.Unlock()
}

type testEnv struct {
	api   *httpClient.ClientAPIMock
	cache *cache.Store
	queue *queue.Queue
	net   *fakeNetwork
	deps  Deps
}

func newTestEnv(t *testing.T, blocked bool) *testEnv {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &testEnv{
		api:   &httpClient.ClientAPIMock{},
		cache: cache.New(store, logger),
		queue: queue.New(store, logger),
		net:   &fakeNetwork{blocked: blocked},
	}
	env.deps = Deps{
		API:         env.api,
		Cache:       env.cache,
		Queue:       env.queue,
		Network:     env.net,
		Logger:      logger,
		Actor:       func() string { return "user-1" },
		ReadTimeout: 50 * time.Millisecond,
	}
	return env
}

func (e *testEnv) ops(t *testing.T) []*models.PendingOperation {
	t.Helper()
	ops, err := e.queue.GetOperations(context.Background(), queue.Filter{})
	require.NoError(t, err)
	return ops
}

// Счёт, созданный без сети, получает временный id и ровно одну операцию в очереди
func TestTickets_CreateTicketOffline(t *testing.T) {
	env := newTestEnv(t, true)
	svc := NewTickets(env.deps)

	ticket, err := svc.CreateTicket(context.Background(), models.NewTicket{BarID: "b1", TableLabel: "4"})
	require.NoError(t, err)

	assert.True(t, models.IsTempID(ticket.ID))
	assert.True(t, ticket.Unconfirmed)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
	assert.Equal(t, "user-1", ticket.CreatedBy)

	ops := env.ops(t)
	require.Len(t, ops, 1)
	assert.Equal(t, models.OpCreateTicket, ops[0].Type)
	assert.Equal(t, ticket.ID, ops[0].EntityID)
	payload := ops[0].Payload.(models.CreateTicketPayload)
	assert.Equal(t, ticket.ID, payload.TempID)

	assert.Empty(t, env.api.CreateTicketCalls())
}

func TestTickets_CreateTicketOnline(t *testing.T) {
	env := newTestEnv(t, false)
	env.api.CreateTicketFunc = func(ctx context.Context, key string, req api.CreateTicketRequest) (*api.Ticket, error) {
		assert.NotEmpty(t, key)
		return &api.Ticket{ID: "t-1", BarID: req.BarID, Number: 12, Status: "open"}, nil
	}
	svc := NewTickets(env.deps)

	ticket, err := svc.CreateTicket(context.Background(), models.NewTicket{BarID: "b1"})
	require.NoError(t, err)

	assert.Equal(t, "t-1", ticket.ID)
	assert.Equal(t, int64(12), ticket.Number)
	assert.False(t, ticket.Unconfirmed)
	assert.Empty(t, env.ops(t))
}

func TestTickets_CreateTicketOnlineErrorSurfaces(t *testing.T) {
	env := newTestEnv(t, false)
	rejection := &httpClient.Error{StatusCode: 403, Code: "forbidden"}
	env.api.CreateTicketFunc = func(ctx context.Context, key string, req api.CreateTicketRequest) (*api.Ticket, error) {
		return nil, rejection
	}
	svc := NewTickets(env.deps)

	_, err := svc.CreateTicket(context.Background(), models.NewTicket{BarID: "b1"})
	assert.ErrorIs(t, err, rejection)
	assert.Empty(t, env.ops(t))
}

// Оплата временного счёта ставится в очередь за его созданием даже при наличии сети
func TestTickets_PayTempTicketQueuesBehindCreate(t *testing.T) {
	env := newTestEnv(t, true)
	svc := NewTickets(env.deps)
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, models.NewTicket{BarID: "b1"})
	require.NoError(t, err)

	env.net.blocked = false
	paid, err := svc.PayTicket(ctx, ticket, "cash")
	require.NoError(t, err)

	assert.Equal(t, models.TicketStatusPaid, paid.Status)
	assert.True(t, paid.Unconfirmed)
	assert.Empty(t, env.api.PayTicketCalls())

	ops := env.ops(t)
	require.Len(t, ops, 2)
	assert.Equal(t, models.OpCreateTicket, ops[0].Type)
	assert.Equal(t, models.OpPayTicket, ops[1].Type)
	assert.Equal(t, ops[0].EntityID, ops[1].EntityID)
}

func TestTickets_PayTicketValidation(t *testing.T) {
	env := newTestEnv(t, false)
	svc := NewTickets(env.deps)

	_, err := svc.PayTicket(context.Background(), models.Ticket{ID: "t1", Status: models.TicketStatusOpen}, "bitcoin")
	assert.Error(t, err)

	_, err = svc.PayTicket(context.Background(), models.Ticket{ID: "t1", Status: models.TicketStatusPaid}, "cash")
	assert.Error(t, err)
}

// Чтение с зависшим сервером возвращает кэш, поздний ответ не перезаписывает его
func TestBars_ListBarsFallsBackOnTimeout(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	cached := []models.Bar{{ID: "b1", Name: "Cached"}}
	env.cache.Save(ctx, cache.BarsKey, cached)

	lateDone := make(chan struct{})
	env.api.ListBarsFunc = func(ctx context.Context) ([]api.Bar, error) {
		defer close(lateDone)
		// Игнорируем отмену, как зависший запрос
		time.Sleep(200 * time.Millisecond)
		return []api.Bar{{ID: "b1", Name: "Late"}}, nil
	}
	svc := NewBars(env.deps)

	snap, err := svc.ListBars(ctx)
	require.NoError(t, err)
	assert.True(t, snap.FromCache)
	assert.Equal(t, cached, snap.Records)

	<-lateDone
	time.Sleep(20 * time.Millisecond)

	again, _, ok := cache.Load(ctx, env.cache, cache.BarsKey, models.Bar.Valid)
	require.True(t, ok)
	assert.Equal(t, "Cached", again[0].Name)

	require.Len(t, env.net.failures, 1)
}

func TestBars_ListBarsTimeoutWithoutCache(t *testing.T) {
	env := newTestEnv(t, false)
	env.api.ListBarsFunc = func(ctx context.Context) ([]api.Bar, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	svc := NewBars(env.deps)

	snap, err := svc.ListBars(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.FromCache)
	assert.Nil(t, snap.Records)
}

func TestBars_ListBarsRefreshesCache(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	env.api.ListBarsFunc = func(ctx context.Context) ([]api.Bar, error) {
		return []api.Bar{{ID: "b1", Name: "Fresh"}}, nil
	}
	svc := NewBars(env.deps)

	snap, err := svc.ListBars(ctx)
	require.NoError(t, err)
	assert.False(t, snap.FromCache)

	cached, _, ok := cache.Load(ctx, env.cache, cache.BarsKey, models.Bar.Valid)
	require.True(t, ok)
	assert.Equal(t, "Fresh", cached[0].Name)
}

func TestBars_ListBarsRejectedWithoutCache(t *testing.T) {
	env := newTestEnv(t, false)
	env.api.ListBarsFunc = func(ctx context.Context) ([]api.Bar, error) {
		return nil, &httpClient.Error{StatusCode: 401}
	}
	svc := NewBars(env.deps)

	_, err := svc.ListBars(context.Background())
	assert.True(t, httpClient.IsUnauthorized(err))
}

func TestBars_UpdateBarOffline(t *testing.T) {
	env := newTestEnv(t, true)
	svc := NewBars(env.deps)

	current := models.Bar{ID: "b1", Name: "Old", Address: "A"}
	updated, err := svc.UpdateBar(context.Background(), current, models.BarPatch{Name: models.StringPtr("X")})
	require.NoError(t, err)

	assert.Equal(t, "X", updated.Name)
	assert.Equal(t, "A", updated.Address)
	assert.True(t, updated.Unconfirmed)

	ops := env.ops(t)
	require.Len(t, ops, 1)
	assert.Equal(t, "b1", ops[0].EntityID)
}

func TestBars_UpdateBarQueuesBehindPendingOps(t *testing.T) {
	env := newTestEnv(t, true)
	svc := NewBars(env.deps)
	ctx := context.Background()
	current := models.Bar{ID: "b1", Name: "Old"}

	_, err := svc.UpdateBar(ctx, current, models.BarPatch{Name: models.StringPtr("First")})
	require.NoError(t, err)

	// Сеть вернулась, но по бару ещё есть операция в очереди
	env.net.blocked = false
	_, err = svc.UpdateBar(ctx, current, models.BarPatch{Address: models.StringPtr("B")})
	require.NoError(t, err)

	assert.Empty(t, env.api.UpdateBarCalls())
	assert.Len(t, env.ops(t), 2)
}

func TestBars_CreateBarValidation(t *testing.T) {
	env := newTestEnv(t, true)
	svc := NewBars(env.deps)

	_, err := svc.CreateBar(context.Background(), models.NewBar{Name: " "})
	assert.Error(t, err)
	assert.Empty(t, env.ops(t))
}

// Без сети имя официанта разрешается по кэшу; с пустым кэшем результата нет
func TestServerMappings_ResolveOffline(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	svc := NewServerMappings(env.deps)

	userID, err := svc.GetUserIDForServerName(ctx, "b1", "Ahmed")
	require.NoError(t, err)
	assert.Equal(t, "", userID)

	env.cache.Save(ctx, cache.MappingsKey("b1"), []models.ServerMapping{
		{ID: "m1", BarID: "b1", ServerName: "Ahmed", UserID: "u1"},
	})

	userID, err = svc.GetUserIDForServerName(ctx, "b1", "Ahmed")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	// Регистр и пробелы не важны
	userID, err = svc.GetUserIDForServerName(ctx, "b1", " ahmed ")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestServerMappings_ResolveSeesPendingUpsert(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	svc := NewServerMappings(env.deps)

	_, err := svc.UpsertMapping(ctx, "b1", "Lena", "u2")
	require.NoError(t, err)

	userID, err := svc.GetUserIDForServerName(ctx, "b1", "lena")
	require.NoError(t, err)
	assert.Equal(t, "u2", userID)

	require.NoError(t, svc.DeleteMapping(ctx, "b1", "Lena"))
	userID, err = svc.GetUserIDForServerName(ctx, "b1", "lena")
	require.NoError(t, err)
	assert.Empty(t, userID)

	ops := env.ops(t)
	require.Len(t, ops, 2)
	assert.Equal(t, ops[0].EntityID, ops[1].EntityID)
}

func TestSales_UnmappedServerBlocksSale(t *testing.T) {
	env := newTestEnv(t, true)
	mappings := NewServerMappings(env.deps)
	svc := NewSales(env.deps, mappings)

	_, err := svc.CreateSale(context.Background(), models.NewSale{
		BarID:         "b1",
		ServerName:    "Ahmed",
		PaymentMethod: "cash",
		Items:         []models.SaleItem{{ProductID: "p1", Quantity: 1, UnitPriceCents: 500}},
	})

	assert.ErrorIs(t, err, ErrServerNotMapped)
	assert.Empty(t, env.ops(t))
	assert.Empty(t, env.api.CreateSaleCalls())
}

func TestSales_CreateSaleOfflineAttributesMappedUser(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	env.cache.Save(ctx, cache.MappingsKey("b1"), []models.ServerMapping{
		{ID: "m1", BarID: "b1", ServerName: "Ahmed", UserID: "u1"},
	})
	svc := NewSales(env.deps, NewServerMappings(env.deps))

	sale, err := svc.CreateSale(ctx, models.NewSale{
		BarID:         "b1",
		TicketID:      "t1",
		ServerName:    "Ahmed",
		PaymentMethod: "card",
		Items:         []models.SaleItem{{ProductID: "p1", Quantity: 3, UnitPriceCents: 250}},
	})
	require.NoError(t, err)

	assert.True(t, sale.Unconfirmed)
	assert.Equal(t, "u1", sale.SoldBy)
	assert.Equal(t, int64(750), sale.TotalCents)

	ops := env.ops(t)
	require.Len(t, ops, 1)
	assert.Equal(t, "t1", ops[0].EntityID)
	assert.Equal(t, "u1", ops[0].Payload.(models.CreateSalePayload).SoldBy)
}

func TestSales_CreateSaleOnlineWithoutServer(t *testing.T) {
	env := newTestEnv(t, false)
	env.api.CreateSaleFunc = func(ctx context.Context, key string, req api.CreateSaleRequest) (*api.Sale, error) {
		assert.Equal(t, "user-1", req.SoldBy)
		return &api.Sale{ID: "s1", BarID: req.BarID, SoldBy: req.SoldBy, TotalCents: 100}, nil
	}
	svc := NewSales(env.deps, NewServerMappings(env.deps))

	sale, err := svc.CreateSale(context.Background(), models.NewSale{
		BarID:         "b1",
		PaymentMethod: "cash",
		Items:         []models.SaleItem{{ProductID: "p1", Quantity: 1, UnitPriceCents: 100}},
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", sale.ID)
	assert.Len(t, env.api.CreateSaleCalls(), 1)
}

func TestSales_CreateSaleValidation(t *testing.T) {
	env := newTestEnv(t, true)
	svc := NewSales(env.deps, NewServerMappings(env.deps))

	_, err := svc.CreateSale(context.Background(), models.NewSale{BarID: "b1", PaymentMethod: "cash"})
	assert.True(t, errors.Is(err, models.ErrEmptySale))
}
