// Package network tracks connectivity and turns raw signals into a single
// advisory decision for the rest of the client.
package network

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

//go:generate moq -out prober_mock.go . Prober

// Prober performs one connectivity round trip.
type Prober interface {
	Probe(ctx context.Context) error
}

// Listener is invoked after every state transition.
type Listener func(Transition)

// Monitor is the single source of truth for "should we attempt remote calls".
// It never panics and never returns errors to callers.
type Monitor struct {
	changedAt     time.Time
	degradedSince time.Time
	logger        *slog.Logger
	now           func() time.Time
	listeners     map[int]Listener
	wake          chan struct{}
	cfg           Config
	state         State
	pending       State
	failures      int
	nextID        int
	mu            sync.Mutex
	hasPending    bool
	osOnline      bool
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		m.now = now
	}
}

// WithInitialState sets the state before any signal arrives.
func WithInitialState(state State) Option {
	return func(m *Monitor) {
		m.state = state
		m.osOnline = state != Offline
	}
}

// NewMonitor creates a monitor. It starts Online until told otherwise.
func NewMonitor(cfg Config, logger *slog.Logger, opts ...Option) *Monitor {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 1
	}
	// Нулевой интервал уронил бы time.NewTicker в фоновой горутине
	defaults := DefaultConfig()
	if cfg.ProbeInterval <= 0 {
		cfg.ProbeInterval = defaults.ProbeInterval
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = defaults.ProbeTimeout
	}
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}
	m := &Monitor{
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		listeners: make(map[int]Listener),
		wake:      make(chan struct{}, 1),
		state:     Online,
		osOnline:  true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Decision computes the advisory synchronously from the current state.
func (m *Monitor) Decision() Decision {
	m.mu.Lock()
	defer m.mu.Unlock()

	var degradedFor time.Duration
	if m.state == Degraded {
		degradedFor = m.now().Sub(m.degradedSince)
	}
	return DecisionFor(m.state, degradedFor, m.cfg)
}

// Subscribe registers fn for every transition and returns a function that removes it.
func (m *Monitor) Subscribe(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// SetOSOnline applies an explicit OS connectivity event.
// Going offline is applied immediately; coming back online only triggers a probe,
// Online is resumed on the next successful round trip.
func (m *Monitor) SetOSOnline(online bool) {
	m.mu.Lock()
	m.osOnline = online
	var ev *Transition
	if online {
		m.failures = 0
	} else if m.state != Offline {
		ev = m.transitionLocked(Offline, m.now())
	}
	m.mu.Unlock()

	if online {
		select {
		case m.wake <- struct{}{}:
		default:
		}
	}
	m.notify(ev)
}

// ReportSuccess records a completed round trip.
func (m *Monitor) ReportSuccess() {
	m.mu.Lock()
	m.failures = 0
	m.osOnline = true
	ev := m.proposeLocked(Online, m.now())
	m.mu.Unlock()

	m.notify(ev)
}

// ReportFailure records a failed round trip. err is only logged.
func (m *Monitor) ReportFailure(err error) {
	m.mu.Lock()
	m.failures++
	now := m.now()

	target := m.state
	if m.state == Online && m.failures >= m.cfg.FailureThreshold {
		target = Degraded
	}
	ev := m.proposeLocked(target, now)
	if ev == nil {
		ev = m.evaluateLocked(now)
	}
	failures := m.failures
	m.mu.Unlock()

	m.logger.Debug("Remote call failed", "failures", failures, "error", err)
	m.notify(ev)
}

// Evaluate applies time-based transitions: a debounced pending transition whose
// dwell time elapsed, and Degraded sustained beyond OfflineAfter.
func (m *Monitor) Evaluate() {
	m.mu.Lock()
	ev := m.evaluateLocked(m.now())
	m.mu.Unlock()

	m.notify(ev)
}

// Run probes connectivity until ctx is done.
func (m *Monitor) Run(ctx context.Context, prober Prober) {
	probeTicker := time.NewTicker(m.cfg.ProbeInterval)
	defer probeTicker.Stop()

	// Отложенные переходы проверяем чаще, чем шлём пробы
	evalEvery := m.cfg.Debounce / 2
	if evalEvery <= 0 || evalEvery > m.cfg.ProbeInterval {
		evalEvery = m.cfg.ProbeInterval
	}
	evalTicker := time.NewTicker(evalEvery)
	defer evalTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-probeTicker.C:
			m.probe(ctx, prober)
		case <-m.wake:
			m.probe(ctx, prober)
		case <-evalTicker.C:
			m.Evaluate()
		}
	}
}

func (m *Monitor) probe(ctx context.Context, prober Prober) {
	probeCtx, cancel := context.WithTimeout(ctx, m.cfg.ProbeTimeout)
	defer cancel()

	if err := safeProbe(probeCtx, prober); err != nil {
		if ctx.Err() != nil {
			return
		}
		m.ReportFailure(err)
		return
	}
	m.ReportSuccess()
}

// safeProbe превращает панику пробы в ошибку
func safeProbe(ctx context.Context, prober Prober) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("probe panicked: %v", r)
		}
	}()
	return prober.Probe(ctx)
}

// proposeLocked переходит в target сразу, если прошло время debounce,
// иначе запоминает переход как отложенный
func (m *Monitor) proposeLocked(target State, now time.Time) *Transition {
	if target == m.state {
		m.hasPending = false
		return nil
	}
	if now.Sub(m.changedAt) >= m.cfg.Debounce {
		return m.transitionLocked(target, now)
	}
	m.pending = target
	m.hasPending = true
	return nil
}

func (m *Monitor) evaluateLocked(now time.Time) *Transition {
	if m.hasPending && now.Sub(m.changedAt) >= m.cfg.Debounce {
		return m.transitionLocked(m.pending, now)
	}
	if m.state == Degraded && now.Sub(m.degradedSince) >= m.cfg.OfflineAfter {
		return m.proposeLocked(Offline, now)
	}
	return nil
}

func (m *Monitor) transitionLocked(to State, now time.Time) *Transition {
	ev := &Transition{From: m.state, To: to, At: now}
	m.state = to
	m.changedAt = now
	m.hasPending = false
	if to == Degraded {
		m.degradedSince = now
	}
	return ev
}

func (m *Monitor) notify(ev *Transition) {
	if ev == nil {
		return
	}

	m.logger.Info("Network state changed", "from", ev.From.String(), "to", ev.To.String())

	m.mu.Lock()
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		m.callListener(l, *ev)
	}
}

func (m *Monitor) callListener(l Listener, ev Transition) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Network listener panicked", "panic", r)
		}
	}()
	l(ev)
}
