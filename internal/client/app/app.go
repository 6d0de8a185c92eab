// Package app wires the client together. Every collaborator is built here
// and passed explicitly; nothing is global.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	httpClient "github.com/iudanet/barkeeper/internal/client/api"
	"github.com/iudanet/barkeeper/internal/client/auth"
	"github.com/iudanet/barkeeper/internal/client/cache"
	"github.com/iudanet/barkeeper/internal/client/network"
	"github.com/iudanet/barkeeper/internal/client/queue"
	"github.com/iudanet/barkeeper/internal/client/realtime"
	"github.com/iudanet/barkeeper/internal/client/services"
	"github.com/iudanet/barkeeper/internal/client/state"
	"github.com/iudanet/barkeeper/internal/client/storage/boltdb"
	syncpkg "github.com/iudanet/barkeeper/internal/client/sync"
	"github.com/iudanet/barkeeper/internal/config"
	"github.com/iudanet/barkeeper/internal/metrics"
	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/pkg/api"
)

// App holds every client component.
type App struct {
	Auth     *state.AuthState
	Bars     *state.BarState
	State    *state.AppState
	Mappings *services.ServerMappings
	Queue    *queue.Queue
	Monitor  *network.Monitor
	Sync     *syncpkg.Manager
	Registry *prometheus.Registry

	cfg      *config.Client
	logger   *slog.Logger
	store    *boltdb.Storage
	api      *httpClient.Client
	realtime *realtime.Subscriber
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// tokenRelay разрывает цикл: API клиенту нужен источник токена,
// а AuthState сам создаётся поверх API клиента
type tokenRelay struct {
	source httpClient.TokenSource
}

func (r *tokenRelay) AccessToken(ctx context.Context) (string, error) {
	if r.source == nil {
		return "", httpClient.ErrNoCredentials
	}
	return r.source.AccessToken(ctx)
}

// New opens the local database and builds the client.
func New(ctx context.Context, cfg *config.Client, logger *slog.Logger) (*App, error) {
	store, err := boltdb.New(ctx, cfg.DBPath, boltdb.WithLogger(logger.With("component", "storage")))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	registry := prometheus.NewRegistry()
	monitor := network.NewMonitor(cfg.Network, logger.With("component", "network"))

	tokens := &tokenRelay{}
	client := httpClient.NewClient(cfg.ServerURL,
		httpClient.WithTokenSource(tokens),
		httpClient.WithObserver(monitor),
		httpClient.WithLogger(logger.With("component", "api")),
	)

	snapshots := cache.New(store, logger.With("component", "cache"), cache.WithVersion(cfg.SchemaVersion))
	if err := snapshots.CheckVersion(ctx); err != nil {
		// Кэш best-effort: без него клиент продолжает работать
		logger.Warn("Cache version check failed", "error", err)
	}

	ops := queue.New(store, logger.With("component", "queue"), queue.WithMaxAttempts(cfg.Sync.MaxAttempts))
	if _, err := ops.RecoverInterrupted(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to recover queue: %w", err)
	}

	authState := state.NewAuthState(
		auth.NewService(client, auth.NewVault(store), logger.With("component", "auth")),
		monitor, snapshots, logger.With("component", "auth"),
	)
	tokens.source = authState

	deps := services.Deps{
		API:         client,
		Cache:       snapshots,
		Queue:       ops,
		Network:     monitor,
		Logger:      logger.With("component", "services"),
		Actor:       authState.UserID,
		ReadTimeout: cfg.ReadTimeout,
	}
	mappings := services.NewServerMappings(deps)
	tickets := services.NewTickets(deps)

	manager := syncpkg.NewManager(ops, syncpkg.NewAPIReplayer(client), cfg.Sync.Config,
		logger.With("component", "sync"), syncpkg.WithMetrics(metrics.NewSync(registry)))

	bars := state.NewBarState(services.NewBars(deps), snapshots, logger.With("component", "state"))
	appState := state.NewAppState(state.AppDeps{
		Tickets: tickets,
		Sales:   services.NewSales(deps, mappings),
		Queue:   ops,
		Network: monitor,
		Syncer:  manager,
		Bars:    bars,
		Logger:  logger.With("component", "state"),
	})

	a := &App{
		Auth:     authState,
		Bars:     bars,
		State:    appState,
		Mappings: mappings,
		Queue:    ops,
		Monitor:  monitor,
		Sync:     manager,
		Registry: registry,
		cfg:      cfg,
		logger:   logger,
		store:    store,
		api:      client,
	}

	manager.OnReplayed(func(ctx context.Context, op *models.PendingOperation, ack syncpkg.Ack) {
		if op.Type == models.OpCreateBar {
			a.Bars.RebindBar(ctx, ack.TempID, ack.ServerID)
		}
		a.refreshAfter(ctx, op.Type)
	})
	if cfg.Realtime {
		a.realtime = realtime.NewSubscriber(cfg.ServerURL, authState, func(ctx context.Context, ev api.ChangeEvent) {
			a.refreshTable(ctx, ev.Table)
		}, logger.With("component", "realtime"))
	}

	return a, nil
}

// Start runs the network probe loop, the sync manager and the realtime
// subscriber in the background until Close or ctx cancellation.
func (a *App) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)

	a.goRun(func() { a.Monitor.Run(ctx, a.api) })
	a.goRun(func() { a.Sync.Run(ctx, a.Monitor) })
	if a.realtime != nil {
		a.goRun(func() { a.realtime.Run(ctx) })
	}
}

func (a *App) goRun(fn func()) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		fn()
	}()
}

// Close stops background work and closes the local database.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()

	if err := a.store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Refresh reloads bars and the current bar's tickets and sales.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.Bars.Refresh(ctx); err != nil {
		return err
	}
	return a.State.Refresh(ctx)
}

func (a *App) refreshAfter(ctx context.Context, opType models.OperationType) {
	switch opType {
	case models.OpCreateBar:
		// Текущий бар мог получить серверный id - перечитываем и его счета
		if err := a.Refresh(ctx); err != nil {
			a.logger.Warn("Refresh failed", "table", api.TableBars, "error", err)
		}
	case models.OpUpdateBar:
		a.refreshTable(ctx, api.TableBars)
	case models.OpCreateTicket, models.OpPayTicket:
		a.refreshTable(ctx, api.TableTickets)
	case models.OpCreateSale:
		a.refreshTable(ctx, api.TableSales)
	case models.OpUpsertServerMapping, models.OpDeleteServerMapping:
		// Привязки читаются по запросу, держать в памяти нечего
	}
}

func (a *App) refreshTable(ctx context.Context, table string) {
	var err error
	switch table {
	case api.TableBars:
		err = a.Bars.Refresh(ctx)
	case api.TableTickets, api.TableSales:
		err = a.State.Refresh(ctx)
	default:
		return
	}
	if err != nil {
		a.logger.Warn("Refresh failed", "table", table, "error", err)
	}
}
