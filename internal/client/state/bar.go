package state

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/iudanet/barkeeper/internal/client/cache"
	"github.com/iudanet/barkeeper/internal/client/reconcile"
	"github.com/iudanet/barkeeper/internal/client/services"
	"github.com/iudanet/barkeeper/internal/models"
)

//go:generate moq -out bar_service_mock.go . BarService

// BarService is the bars service used by BarState.
type BarService interface {
	ListBars(ctx context.Context) (services.Snapshot[models.Bar], error)
	CreateBar(ctx context.Context, in models.NewBar) (models.Bar, error)
	UpdateBar(ctx context.Context, current models.Bar, patch models.BarPatch) (models.Bar, error)
	Pending(ctx context.Context) []*models.PendingOperation
}

// BarState is the bars provider. The current bar is derived from the stored
// selection id and the bar list; it is never stored twice.
type BarState struct {
	svc          BarService
	cache        *cache.Store
	logger       *slog.Logger
	listeners    *listeners
	lastSyncedAt time.Time
	currentID    string
	bars         []models.Bar
	version      uint64 // version растёт при каждом изменении bars
	fromCache    bool
	mu           sync.RWMutex
}

// NewBarState creates the bars provider
func NewBarState(svc BarService, store *cache.Store, logger *slog.Logger) *BarState {
	return &BarState{
		svc:       svc,
		cache:     store,
		logger:    logger,
		listeners: newListeners(logger),
	}
}

// Subscribe registers fn to be called after every change.
func (s *BarState) Subscribe(fn func()) (unsubscribe func()) {
	return s.listeners.add(fn)
}

// Refresh loads bars from the server or the cache and overlays pending edits.
func (s *BarState) Refresh(ctx context.Context) error {
	snap, err := s.svc.ListBars(ctx)
	if err != nil {
		return fmt.Errorf("failed to load bars: %w", err)
	}

	merged := reconcile.MergeBars(snap.Records, s.svc.Pending(ctx))

	s.mu.Lock()
	s.bars = merged
	s.version++
	s.lastSyncedAt = snap.LastSyncedAt
	s.fromCache = snap.FromCache
	if s.currentID == "" {
		if id, ok := s.cache.LoadSelection(ctx, cache.CurrentBarSelection); ok {
			s.currentID = id
		}
	}
	s.mu.Unlock()

	s.listeners.notify()
	return nil
}

// Bars returns a copy of the bar list.
func (s *BarState) Bars() []models.Bar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bars)
}

// LastSyncedAt reports when the list was last fetched and whether it came from the cache.
func (s *BarState) LastSyncedAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSyncedAt, s.fromCache
}

// CurrentBar returns the selected bar. ok is false when nothing is selected
// or the selected bar is not in the list.
func (s *BarState) CurrentBar() (models.Bar, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentID == "" {
		return models.Bar{}, false
	}
	i := s.indexLocked(s.currentID)
	if i < 0 {
		return models.Bar{}, false
	}
	return s.bars[i], true
}

// SwitchBar selects the bar with id.
func (s *BarState) SwitchBar(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.indexLocked(id) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("bar %s not found", id)
	}
	s.currentID = id
	s.mu.Unlock()

	s.cache.SaveSelection(ctx, cache.CurrentBarSelection, id)
	s.listeners.notify()
	return nil
}

// CreateBar creates a bar and adds it to the list. The first bar becomes current.
func (s *BarState) CreateBar(ctx context.Context, in models.NewBar) (models.Bar, error) {
	bar, err := s.svc.CreateBar(ctx, in)
	if err != nil {
		return models.Bar{}, err
	}

	s.mu.Lock()
	s.bars = append(s.bars, bar)
	s.version++
	selectFirst := s.currentID == ""
	if selectFirst {
		s.currentID = bar.ID
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	if selectFirst {
		s.cache.SaveSelection(ctx, cache.CurrentBarSelection, bar.ID)
	}
	s.listeners.notify()
	return bar, nil
}

// RebindBar moves the selection from a temporary bar id to the id the server
// assigned when the creation was acknowledged. The stored selection pointer is
// rewritten even if this provider has not loaded it yet.
func (s *BarState) RebindBar(ctx context.Context, tempID, serverID string) {
	if tempID == "" || serverID == "" || tempID == serverID {
		return
	}

	s.mu.Lock()
	rebound := s.currentID == tempID
	if rebound {
		s.currentID = serverID
	}
	if i := s.indexLocked(tempID); i >= 0 && s.indexLocked(serverID) < 0 {
		s.bars[i].ID = serverID
		s.bars[i].Unconfirmed = false
		s.version++
	}
	s.mu.Unlock()

	if stored, ok := s.cache.LoadSelection(ctx, cache.CurrentBarSelection); rebound || (ok && stored == tempID) {
		s.cache.SaveSelection(ctx, cache.CurrentBarSelection, serverID)
	}
	if rebound {
		s.logger.Info("Current bar confirmed by server", "temp_id", tempID, "bar_id", serverID)
		s.listeners.notify()
	}
}

// UpdateBar applies patch optimistically to memory and the cache, then calls
// the service. On failure the bar is restored in memory and the cache gets
// back the snapshot it held before the edit.
func (s *BarState) UpdateBar(ctx context.Context, id string, patch models.BarPatch) (models.Bar, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Bar{}, fmt.Errorf("bar %s not found", id)
	}
	cached, cachedAt, hadCache := cache.Load(ctx, s.cache, cache.BarsKey, models.Bar.Valid)
	previous := s.bars[i]
	s.bars[i] = patch.Apply(previous)
	s.version++
	optimistic := s.version
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.listeners.notify()

	updated, err := s.svc.UpdateBar(ctx, previous, patch)

	s.mu.Lock()
	// Список мог поменяться за время запроса - ищем бар заново
	if j := s.indexLocked(id); j >= 0 {
		untouched := s.version == optimistic
		if err != nil {
			s.bars[j] = previous
		} else {
			s.bars[j] = updated
		}
		s.version++
		if err != nil && untouched && hadCache {
			s.cache.SaveAt(ctx, cache.BarsKey, cached, cachedAt)
		} else {
			s.persistLocked(ctx)
		}
	}
	s.mu.Unlock()
	s.listeners.notify()

	if err != nil {
		s.logger.Warn("Bar update rolled back", "bar_id", id, "error", err)
		return models.Bar{}, err
	}
	return updated, nil
}

func (s *BarState) indexLocked(id string) int {
	return slices.IndexFunc(s.bars, func(b models.Bar) bool { return b.ID == id })
}

// persistLocked пишет текущий список в кэш, сохраняя время последней синхронизации
func (s *BarState) persistLocked(ctx context.Context) {
	s.cache.SaveAt(ctx, cache.BarsKey, s.bars, s.lastSyncedAt)
}
