// Package sync drains the offline operation queue against the server.
//
// Operations are grouped by entity. Groups are replayed concurrently, while
// operations inside a group are replayed strictly in queue order: each one
// reaches a terminal status before the next one is attempted.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	httpClient "github.com/iudanet/barkeeper/internal/client/api"
	"github.com/iudanet/barkeeper/internal/client/network"
	"github.com/iudanet/barkeeper/internal/client/queue"
	"github.com/iudanet/barkeeper/internal/metrics"
	"github.com/iudanet/barkeeper/internal/models"
)

// ErrDrainInProgress is returned by Drain while another drain is running.
var ErrDrainInProgress = errors.New("queue drain already in progress")

// ErrAuthRequired stops a drain when the server no longer accepts the
// session. Operations stay pending until the user signs in again.
var ErrAuthRequired = errors.New("sign-in required to replay queued operations")

// errHalt останавливает повторы операции, которая уже получила статус failed
var errHalt = errors.New("operation failed")

// Queue is the part of the offline queue the manager drives.
type Queue interface {
	GetOperations(ctx context.Context, filter queue.Filter) ([]*models.PendingOperation, error)
	MarkSyncing(ctx context.Context, id string) error
	MarkDone(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, cause error) error
	RecordAttemptFailure(ctx context.Context, id string, cause error) (bool, error)
	Release(ctx context.Context, id string) error
	RebindEntity(ctx context.Context, from, to string) (int, error)
	Stats(ctx context.Context) (queue.Stats, error)
}

// Monitor is the part of the network monitor the manager listens to.
type Monitor interface {
	State() network.State
	Subscribe(fn network.Listener) (unsubscribe func())
}

// Config настройки воспроизведения
type Config struct {
	BaseBackoff time.Duration `mapstructure:"base_backoff"`
	MaxBackoff  time.Duration `mapstructure:"max_backoff"`
	Concurrency int           `mapstructure:"concurrency"` // Concurrency сколько групп сущностей отправляется одновременно
}

// DefaultConfig returns the replay policy used by the client.
func DefaultConfig() Config {
	return Config{
		BaseBackoff: 500 * time.Millisecond,
		MaxBackoff:  30 * time.Second,
		Concurrency: 4,
	}
}

// Result summarises a drain.
type Result struct {
	Replayed int `json:"replayed" yaml:"replayed"`
	Failed   int `json:"failed" yaml:"failed"`
	Deferred int `json:"deferred" yaml:"deferred"` // Deferred ждут подтверждения сущности с временным id
	Skipped  int `json:"skipped" yaml:"skipped"`   // Skipped стоят за failed операцией своей сущности
}

func (r *Result) add(other Result) {
	r.Replayed += other.Replayed
	r.Failed += other.Failed
	r.Deferred += other.Deferred
	r.Skipped += other.Skipped
}

// RefreshHook is invoked after an operation was acknowledged by the server.
// For CREATE_* operations ack carries both the temporary and the server id.
type RefreshHook func(ctx context.Context, op *models.PendingOperation, ack Ack)

type outcome int

const (
	outcomeDone outcome = iota
	outcomeRebound
	outcomeFailed
	outcomeReleased
)

// Manager replays queued operations.
type Manager struct {
	queue    Queue
	replayer Replayer
	logger   *slog.Logger
	metrics  *metrics.Sync
	trigger  chan struct{}
	hooks    []RefreshHook
	cfg      Config
	hooksMu  stdsync.RWMutex
	drainMu  stdsync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithMetrics publishes replay metrics to m.
func WithMetrics(m *metrics.Sync) Option {
	return func(mgr *Manager) {
		mgr.metrics = m
	}
}

// NewManager creates a sync manager
func NewManager(q Queue, replayer Replayer, cfg Config, logger *slog.Logger, opts ...Option) *Manager {
	defaults := DefaultConfig()
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = defaults.BaseBackoff
	}
	if cfg.MaxBackoff < cfg.BaseBackoff {
		cfg.MaxBackoff = max(defaults.MaxBackoff, cfg.BaseBackoff)
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaults.Concurrency
	}

	m := &Manager{
		queue:    q,
		replayer: replayer,
		logger:   logger,
		cfg:      cfg,
		trigger:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnReplayed registers a hook run after every acknowledged operation.
func (m *Manager) OnReplayed(hook RefreshHook) {
	m.hooksMu.Lock()
	m.hooks = append(m.hooks, hook)
	m.hooksMu.Unlock()
}

// Trigger asks Run for a drain without waiting for it.
func (m *Manager) Trigger() {
	select {
	case m.trigger <- struct{}{}:
	default:
	}
}

// Run drains the queue on every transition to Online until ctx is cancelled.
// A drain also runs at start when the monitor is already online.
func (m *Manager) Run(ctx context.Context, monitor Monitor) {
	unsubscribe := monitor.Subscribe(func(ev network.Transition) {
		if ev.To == network.Online {
			m.Trigger()
		}
	})
	defer unsubscribe()

	if monitor.State() == network.Online {
		m.Trigger()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.trigger:
			_, err := m.Drain(ctx)
			if err != nil && !errors.Is(err, ErrDrainInProgress) && ctx.Err() == nil {
				m.logger.Error("Queue drain failed", "error", err)
			}
		}
	}
}

// Drain replays every pending operation. Operations waiting for an entity
// created in the same drain are picked up in a following round, so a drain
// keeps going while it makes progress.
func (m *Manager) Drain(ctx context.Context) (Result, error) {
	if !m.drainMu.TryLock() {
		return Result{}, ErrDrainInProgress
	}
	defer m.drainMu.Unlock()

	started := time.Now()
	m.logger.Info("Starting queue drain")

	var total Result
	for {
		round, err := m.drainRound(ctx)
		total.Replayed += round.Replayed
		total.Failed += round.Failed
		if err != nil {
			return total, err
		}

		// Повторяем, пока есть отложенные операции и прогресс
		if round.Replayed == 0 || round.Deferred == 0 {
			total.Deferred = round.Deferred
			total.Skipped = round.Skipped
			break
		}
	}

	m.publishDepth(ctx)
	m.metrics.ObserveDrain(time.Since(started))
	m.logger.Info("Queue drain completed",
		"replayed", total.Replayed,
		"failed", total.Failed,
		"deferred", total.Deferred,
		"skipped", total.Skipped,
		"took", time.Since(started))

	return total, nil
}

func (m *Manager) drainRound(ctx context.Context) (Result, error) {
	ops, err := m.queue.GetOperations(ctx, queue.Filter{
		Statuses: []models.OperationStatus{models.StatusPending, models.StatusFailed},
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to load queue: %w", err)
	}

	var (
		res Result
		mu  stdsync.Mutex
		g   errgroup.Group
	)
	g.SetLimit(m.cfg.Concurrency)

	// Ошибка одной группы не отменяет остальные
	for _, group := range groupByEntity(ops) {
		g.Go(func() error {
			r, err := m.replayGroup(ctx, group)
			mu.Lock()
			res.add(r)
			mu.Unlock()
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// groupByEntity splits ops into per-entity groups keeping queue order.
func groupByEntity(ops []*models.PendingOperation) [][]*models.PendingOperation {
	index := make(map[string]int)
	var groups [][]*models.PendingOperation
	for _, op := range ops {
		i, ok := index[op.EntityID]
		if !ok {
			i = len(groups)
			index[op.EntityID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], op)
	}
	return groups
}

func (m *Manager) replayGroup(ctx context.Context, ops []*models.PendingOperation) (Result, error) {
	var res Result
	for i, op := range ops {
		rest := countPending(ops[i+1:])

		if op.Status == models.StatusFailed {
			res.Skipped += rest
			if rest > 0 {
				m.logger.Info("Entity group halted behind failed operation",
					"entity_id", op.EntityID, "op_id", op.ID, "waiting", rest)
			}
			return res, nil
		}

		if models.WaitsForTempEntity(op.Payload) {
			res.Deferred += rest + 1
			m.metrics.ObserveReplay(string(op.Type), metrics.OutcomeDeferred, 0)
			m.logger.Debug("Operation waits for unconfirmed entity", "op_id", op.ID, "entity_id", op.EntityID)
			return res, nil
		}

		result, err := m.replayOne(ctx, op)
		if err != nil {
			return res, err
		}

		switch result {
		case outcomeDone:
			res.Replayed++
		case outcomeRebound:
			// Оставшиеся операции группы ссылаются на старый id, перечитаем их в следующем раунде
			res.Replayed++
			res.Deferred += rest
			return res, nil
		case outcomeFailed:
			res.Failed++
			res.Skipped += rest
			return res, nil
		case outcomeReleased:
			return res, nil
		}
	}
	return res, nil
}

// replayOne sends op until it is acknowledged, rejected, out of retry budget
// or interrupted by ctx.
func (m *Manager) replayOne(ctx context.Context, op *models.PendingOperation) (outcome, error) {
	backoff := retry.WithCappedDuration(m.cfg.MaxBackoff, retry.NewExponential(m.cfg.BaseBackoff))

	ack, err := retry.DoValue(ctx, backoff, func(ctx context.Context) (Ack, error) {
		if err := m.queue.MarkSyncing(ctx, op.ID); err != nil {
			return Ack{}, fmt.Errorf("failed to mark %s syncing: %w", op.ID, err)
		}

		started := time.Now()
		ack, err := m.replayer.Replay(ctx, op)
		took := time.Since(started)

		switch {
		case err == nil:
			m.metrics.ObserveReplay(string(op.Type), metrics.OutcomeDone, took)
			return ack, nil

		case ctx.Err() != nil:
			return Ack{}, ctx.Err()

		case httpClient.IsAuthRequired(err):
			return Ack{}, fmt.Errorf("%w: %w", ErrAuthRequired, err)

		case isRejection(err):
			if ferr := m.queue.MarkFailed(ctx, op.ID, err); ferr != nil {
				return Ack{}, ferr
			}
			m.metrics.ObserveReplay(string(op.Type), metrics.OutcomeRejected, took)
			return Ack{}, errHalt

		default:
			exhausted, qerr := m.queue.RecordAttemptFailure(ctx, op.ID, err)
			if qerr != nil {
				return Ack{}, qerr
			}
			if exhausted {
				m.metrics.ObserveReplay(string(op.Type), metrics.OutcomeExhausted, took)
				return Ack{}, errHalt
			}
			m.metrics.ObserveReplay(string(op.Type), metrics.OutcomeRetried, took)
			m.logger.Warn("Replay failed, will retry", "op_id", op.ID, "type", op.Type, "error", err)
			return Ack{}, retry.RetryableError(err)
		}
	})

	if err != nil {
		switch {
		case ctx.Err() != nil:
			m.release(ctx, op)
			return outcomeReleased, nil
		case errors.Is(err, ErrAuthRequired):
			m.release(ctx, op)
			return outcomeReleased, err
		case errors.Is(err, errHalt):
			return outcomeFailed, nil
		default:
			return outcomeFailed, err
		}
	}

	return m.acknowledge(ctx, op, ack)
}

// acknowledge rebinds operations that reference the created entity and only
// then removes op, so a crash in between replays op again instead of
// leaving later operations pointing at a temporary id.
func (m *Manager) acknowledge(ctx context.Context, op *models.PendingOperation, ack Ack) (outcome, error) {
	result := outcomeDone

	if tempID := createdID(op.Payload); tempID != "" && ack.ServerID != "" {
		ack.TempID = tempID
		n, err := m.queue.RebindEntity(ctx, tempID, ack.ServerID)
		if err != nil {
			return outcomeFailed, err
		}
		if n > 0 {
			result = outcomeRebound
		}
	}

	if err := m.queue.MarkDone(ctx, op.ID); err != nil {
		return outcomeFailed, err
	}
	m.logger.Info("Operation replayed", "op_id", op.ID, "type", op.Type, "entity_id", op.EntityID)

	m.runHooks(ctx, op, ack)
	return result, nil
}

func (m *Manager) runHooks(ctx context.Context, op *models.PendingOperation, ack Ack) {
	m.hooksMu.RLock()
	hooks := append([]RefreshHook(nil), m.hooks...)
	m.hooksMu.RUnlock()

	for _, hook := range hooks {
		func() {
			defer func() {
				if p := recover(); p != nil {
					m.logger.Error("Refresh hook panicked", "op_id", op.ID, "panic", p)
				}
			}()
			hook(ctx, op, ack)
		}()
	}
}

func (m *Manager) release(ctx context.Context, op *models.PendingOperation) {
	// Контекст уже отменён, а вернуть операцию в pending нужно
	ctx = context.WithoutCancel(ctx)
	if err := m.queue.Release(ctx, op.ID); err != nil {
		m.logger.Warn("Failed to release operation", "op_id", op.ID, "error", err)
		return
	}
	m.metrics.ObserveReplay(string(op.Type), metrics.OutcomeReleased, 0)
}

func (m *Manager) publishDepth(ctx context.Context) {
	if m.metrics == nil {
		return
	}
	stats, err := m.queue.Stats(ctx)
	if err != nil {
		m.logger.Warn("Failed to read queue stats", "error", err)
		return
	}
	m.metrics.SetQueueDepth(stats.Pending, stats.Syncing, stats.Failed)
}

func isRejection(err error) bool {
	return httpClient.IsRejected(err) || errors.Is(err, ErrUnreplayable)
}

func countPending(ops []*models.PendingOperation) int {
	n := 0
	for _, op := range ops {
		if op.Status == models.StatusPending {
			n++
		}
	}
	return n
}
