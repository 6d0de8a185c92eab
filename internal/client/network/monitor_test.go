package network

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeClock struct {
	t  time.Time
	mu sync.Mutex
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestMonitor(clock *fakeClock) *Monitor {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMonitor(DefaultConfig(), logger, WithClock(clock.Now))
}

var errTimeout = errors.New("timeout")

func TestMonitor_SingleFailureDoesNotDegrade(t *testing.T) {
	clock := newFakeClock()
	m := newTestMonitor(clock)

	m.ReportFailure(errTimeout)

	assert.Equal(t, Online, m.State())
	assert.Equal(t, Decision{}, m.Decision())
}

func TestMonitor_DegradedAfterThreshold(t *testing.T) {
	clock := newFakeClock()
	m := newTestMonitor(clock)

	for i := 0; i < 3; i++ {
		m.ReportFailure(errTimeout)
	}
	require.Equal(t, Degraded, m.State())

	// В пределах grace запросы не блокируются, но баннер показывается
	assert.Equal(t, Decision{ShouldBlock: false, ShouldShowBanner: true}, m.Decision())

	clock.Advance(6 * time.Second)
	assert.Equal(t, Decision{ShouldBlock: true, ShouldShowBanner: true}, m.Decision())
}

func TestMonitor_SustainedDegradedGoesOffline(t *testing.T) {
	clock := newFakeClock()
	m := newTestMonitor(clock)

	for i := 0; i < 3; i++ {
		m.ReportFailure(errTimeout)
	}
	clock.Advance(29 * time.Second)
	m.Evaluate()
	assert.Equal(t, Degraded, m.State())

	clock.Advance(2 * time.Second)
	m.Evaluate()
	assert.Equal(t, Offline, m.State())
}

func TestMonitor_OSOfflineIsImmediate(t *testing.T) {
	clock := newFakeClock()
	m := newTestMonitor(clock)

	for i := 0; i < 3; i++ {
		m.ReportFailure(errTimeout)
	}
	require.Equal(t, Degraded, m.State())

	// Событие ОС не ждёт debounce
	m.SetOSOnline(false)
	assert.Equal(t, Offline, m.State())
	assert.True(t, m.Decision().ShouldBlock)

	// Возврат сети по ОС сам по себе не делает Online
	m.SetOSOnline(true)
	assert.Equal(t, Offline, m.State())
}

func TestMonitor_DebounceSuppressesFlapping(t *testing.T) {
	clock := newFakeClock()
	m := newTestMonitor(clock)

	for i := 0; i < 3; i++ {
		m.ReportFailure(errTimeout)
	}
	require.Equal(t, Degraded, m.State())

	// Успех сразу после перехода откладывается
	clock.Advance(500 * time.Millisecond)
	m.ReportSuccess()
	assert.Equal(t, Degraded, m.State())

	clock.Advance(2 * time.Second)
	m.Evaluate()
	assert.Equal(t, Online, m.State())
	assert.Equal(t, Decision{}, m.Decision())
}

func TestMonitor_PendingCancelledByLaterFailure(t *testing.T) {
	clock := newFakeClock()
	m := newTestMonitor(clock)

	for i := 0; i < 3; i++ {
		m.ReportFailure(errTimeout)
	}
	clock.Advance(time.Second)
	m.ReportSuccess()
	m.ReportFailure(errTimeout)

	clock.Advance(2 * time.Second)
	m.Evaluate()
	assert.Equal(t, Degraded, m.State())
}

func TestMonitor_SuccessRestoresOnline(t *testing.T) {
	clock := newFakeClock()
	m := newTestMonitor(clock)

	m.SetOSOnline(false)
	clock.Advance(3 * time.Second)
	m.ReportSuccess()

	assert.Equal(t, Online, m.State())
}

func TestMonitor_Listeners(t *testing.T) {
	clock := newFakeClock()
	m := newTestMonitor(clock)

	var got []Transition
	unsubscribe := m.Subscribe(func(tr Transition) {
		got = append(got, tr)
	})
	// Паникующий слушатель не должен ломать монитор
	m.Subscribe(func(Transition) {
		panic("listener bug")
	})

	assert.NotPanics(t, func() {
		m.SetOSOnline(false)
	})
	require.Len(t, got, 1)
	assert.Equal(t, Online, got[0].From)
	assert.Equal(t, Offline, got[0].To)

	unsubscribe()
	clock.Advance(3 * time.Second)
	m.ReportSuccess()
	assert.Len(t, got, 1)
}

func TestMonitor_RunCountsProbePanicsAsFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := DefaultConfig()
	cfg.ProbeInterval = 5 * time.Millisecond
	cfg.ProbeTimeout = 5 * time.Millisecond
	cfg.Debounce = 0
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewMonitor(cfg, logger)

	prober := &ProberMock{
		ProbeFunc: func(ctx context.Context) error {
			panic("boom")
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(ctx, prober)
	}()

	require.Eventually(t, func() bool {
		return m.State() == Degraded
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestMonitor_RunWithZeroTimings(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewMonitor(Config{FailureThreshold: 3}, logger)
	assert.Equal(t, DefaultConfig().ProbeInterval, m.cfg.ProbeInterval)
	assert.Equal(t, DefaultConfig().ProbeTimeout, m.cfg.ProbeTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(ctx, &ProberMock{ProbeFunc: func(ctx context.Context) error { return nil }})
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestMonitor_RunProbesOnOSOnline(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := DefaultConfig()
	cfg.ProbeInterval = time.Hour
	cfg.Debounce = 0
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewMonitor(cfg, logger, WithInitialState(Offline))

	prober := &ProberMock{
		ProbeFunc: func(ctx context.Context) error {
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(ctx, prober)
	}()

	m.SetOSOnline(true)
	require.Eventually(t, func() bool {
		return m.State() == Online
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestDecisionFor(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name        string
		state       State
		degradedFor time.Duration
		want        Decision
	}{
		{name: "online", state: Online, want: Decision{}},
		{name: "degraded within grace", state: Degraded, degradedFor: time.Second, want: Decision{ShouldShowBanner: true}},
		{name: "degraded beyond grace", state: Degraded, degradedFor: 10 * time.Second, want: Decision{ShouldBlock: true, ShouldShowBanner: true}},
		{name: "offline", state: Offline, want: Decision{ShouldBlock: true, ShouldShowBanner: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecisionFor(tt.state, tt.degradedFor, cfg))
		})
	}
}
