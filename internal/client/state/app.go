package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/iudanet/barkeeper/internal/client/network"
	"github.com/iudanet/barkeeper/internal/client/queue"
	"github.com/iudanet/barkeeper/internal/client/reconcile"
	"github.com/iudanet/barkeeper/internal/client/services"
	"github.com/iudanet/barkeeper/internal/models"
)

// ErrNoBarSelected is returned by bar-scoped actions before a bar is selected.
var ErrNoBarSelected = errors.New("no bar selected")

// TicketService is the tickets service used by AppState.
type TicketService interface {
	ListTickets(ctx context.Context, barID string) (services.Snapshot[models.Ticket], error)
	CreateTicket(ctx context.Context, in models.NewTicket) (models.Ticket, error)
	PayTicket(ctx context.Context, ticket models.Ticket, method string) (models.Ticket, error)
	Pending(ctx context.Context) []*models.PendingOperation
}

// SaleService is the sales service used by AppState.
type SaleService interface {
	ListSales(ctx context.Context, barID string) (services.Snapshot[models.Sale], error)
	CreateSale(ctx context.Context, in models.NewSale) (models.Sale, error)
	Pending(ctx context.Context) []*models.PendingOperation
}

// OperationQueue is the part of the offline queue surfaced to the user.
type OperationQueue interface {
	GetOperations(ctx context.Context, filter queue.Filter) ([]*models.PendingOperation, error)
	Retry(ctx context.Context, id string) error
	Discard(ctx context.Context, id string) error
	Stats(ctx context.Context) (queue.Stats, error)
}

// NetworkView is the part of the network monitor shown to the user.
type NetworkView interface {
	State() network.State
	Decision() network.Decision
}

// Syncer starts a queue drain in the background.
type Syncer interface {
	Trigger()
}

// NetworkStatus is what the UI shows about connectivity.
type NetworkStatus struct {
	State   network.State `json:"state" yaml:"state"`
	Banner  bool          `json:"banner" yaml:"banner"`
	Blocked bool          `json:"blocked" yaml:"blocked"`
}

// AppDeps holds AppState collaborators.
type AppDeps struct {
	Tickets TicketService
	Sales   SaleService
	Queue   OperationQueue
	Network NetworkView
	Syncer  Syncer
	Bars    *BarState
	Logger  *slog.Logger
}

// AppState holds tickets and sales of the current bar, connectivity and the
// failed operations surface.
type AppState struct {
	AppDeps
	listeners    *listeners
	lastSyncedAt time.Time
	barID        string
	tickets      []models.Ticket
	sales        []models.Sale
	fromCache    bool
	mu           sync.RWMutex
}

// NewAppState creates the application provider
func NewAppState(d AppDeps) *AppState {
	return &AppState{
		AppDeps:   d,
		listeners: newListeners(d.Logger),
	}
}

// Subscribe registers fn to be called after every change.
func (s *AppState) Subscribe(fn func()) (unsubscribe func()) {
	return s.listeners.add(fn)
}

// Refresh reloads tickets and sales of the current bar and overlays pending operations.
func (s *AppState) Refresh(ctx context.Context) error {
	bar, ok := s.Bars.CurrentBar()
	if !ok {
		s.mu.Lock()
		s.barID, s.tickets, s.sales = "", nil, nil
		s.mu.Unlock()
		s.listeners.notify()
		return nil
	}

	tickets, err := s.Tickets.ListTickets(ctx, bar.ID)
	if err != nil {
		return fmt.Errorf("failed to load tickets: %w", err)
	}
	sales, err := s.Sales.ListSales(ctx, bar.ID)
	if err != nil {
		return fmt.Errorf("failed to load sales: %w", err)
	}

	mergedTickets := filterBar(reconcile.MergeTickets(tickets.Records, s.Tickets.Pending(ctx)), bar.ID,
		func(t models.Ticket) string { return t.BarID })
	mergedSales := filterBar(reconcile.MergeSales(sales.Records, s.Sales.Pending(ctx)), bar.ID,
		func(sale models.Sale) string { return sale.BarID })

	s.mu.Lock()
	s.barID = bar.ID
	s.tickets = mergedTickets
	s.sales = mergedSales
	s.lastSyncedAt = tickets.LastSyncedAt
	s.fromCache = tickets.FromCache || sales.FromCache
	s.mu.Unlock()

	s.listeners.notify()
	return nil
}

func filterBar[T any](records []T, barID string, barOf func(T) string) []T {
	return slices.DeleteFunc(records, func(r T) bool { return barOf(r) != barID })
}

// TicketList returns a copy of the tickets of the current bar.
func (s *AppState) TicketList() []models.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tickets)
}

// SaleList returns a copy of the sales of the current bar.
func (s *AppState) SaleList() []models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sales)
}

// LastSyncedAt reports when the data was fetched and whether it came from the cache.
func (s *AppState) LastSyncedAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSyncedAt, s.fromCache
}

// NetworkStatus returns the current connectivity and whether to show the offline banner.
func (s *AppState) NetworkStatus() NetworkStatus {
	d := s.Network.Decision()
	return NetworkStatus{
		State:   s.Network.State(),
		Banner:  d.ShouldShowBanner,
		Blocked: d.ShouldBlock,
	}
}

// CreateTicket opens a ticket in the current bar unless in.BarID is set.
func (s *AppState) CreateTicket(ctx context.Context, in models.NewTicket) (models.Ticket, error) {
	if in.BarID == "" {
		bar, ok := s.Bars.CurrentBar()
		if !ok {
			return models.Ticket{}, ErrNoBarSelected
		}
		in.BarID = bar.ID
	}

	ticket, err := s.Tickets.CreateTicket(ctx, in)
	if err != nil {
		return models.Ticket{}, err
	}

	s.mu.Lock()
	if ticket.BarID == s.barID {
		s.tickets = append(s.tickets, ticket)
	}
	s.mu.Unlock()

	s.listeners.notify()
	return ticket, nil
}

// PayTicket marks the ticket paid right away and rolls the change back if the
// service fails.
func (s *AppState) PayTicket(ctx context.Context, ticketID, method string) (models.Ticket, error) {
	s.mu.Lock()
	i := slices.IndexFunc(s.tickets, func(t models.Ticket) bool { return t.ID == ticketID })
	if i < 0 {
		s.mu.Unlock()
		return models.Ticket{}, fmt.Errorf("ticket %s not found", ticketID)
	}
	previous := s.tickets[i]
	if previous.Status == models.TicketStatusPaid {
		s.mu.Unlock()
		return models.Ticket{}, fmt.Errorf("ticket %s is already paid", ticketID)
	}
	optimistic := previous
	now := time.Now().UTC()
	optimistic.Status = models.TicketStatusPaid
	optimistic.PaymentMethod = method
	optimistic.PaidAt = &now
	s.tickets[i] = optimistic
	s.mu.Unlock()
	s.listeners.notify()

	paid, err := s.Tickets.PayTicket(ctx, previous, method)

	s.mu.Lock()
	if j := slices.IndexFunc(s.tickets, func(t models.Ticket) bool { return t.ID == ticketID }); j >= 0 {
		if err != nil {
			s.tickets[j] = previous
		} else {
			s.tickets[j] = paid
		}
	}
	s.mu.Unlock()
	s.listeners.notify()

	if err != nil {
		s.Logger.Warn("Ticket payment rolled back", "ticket_id", ticketID, "error", err)
		return models.Ticket{}, err
	}
	return paid, nil
}

// CreateSale records a sale in the current bar unless in.BarID is set.
func (s *AppState) CreateSale(ctx context.Context, in models.NewSale) (models.Sale, error) {
	if in.BarID == "" {
		bar, ok := s.Bars.CurrentBar()
		if !ok {
			return models.Sale{}, ErrNoBarSelected
		}
		in.BarID = bar.ID
	}

	sale, err := s.Sales.CreateSale(ctx, in)
	if err != nil {
		return models.Sale{}, err
	}

	s.mu.Lock()
	if sale.BarID == s.barID {
		s.sales = append(s.sales, sale)
	}
	s.mu.Unlock()

	s.listeners.notify()
	return sale, nil
}

// Operations returns queued operations, all of them when no status is given.
func (s *AppState) Operations(ctx context.Context, statuses ...models.OperationStatus) ([]*models.PendingOperation, error) {
	ops, err := s.Queue.GetOperations(ctx, queue.Filter{Statuses: statuses})
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	return ops, nil
}

// FailedOperations returns operations the server rejected or that ran out of retries.
func (s *AppState) FailedOperations(ctx context.Context) ([]*models.PendingOperation, error) {
	return s.Operations(ctx, models.StatusFailed)
}

// RetryOperation returns a failed operation to the queue and asks for a drain.
func (s *AppState) RetryOperation(ctx context.Context, id string) error {
	if err := s.Queue.Retry(ctx, id); err != nil {
		return err
	}
	s.Syncer.Trigger()
	s.listeners.notify()
	return nil
}

// DiscardOperation drops a failed operation. Its optimistic effect disappears
// on the next refresh.
func (s *AppState) DiscardOperation(ctx context.Context, id string) error {
	if err := s.Queue.Discard(ctx, id); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		s.Logger.Warn("Refresh after discard failed", "op_id", id, "error", err)
	}
	return nil
}

// QueueStats counts queued operations by status.
func (s *AppState) QueueStats(ctx context.Context) (queue.Stats, error) {
	return s.Queue.Stats(ctx)
}
