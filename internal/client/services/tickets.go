package services

import (
	"context"
	"fmt"

	"github.com/iudanet/barkeeper/internal/client/cache"
	"github.com/iudanet/barkeeper/internal/client/queue"
	"github.com/iudanet/barkeeper/internal/client/reconcile"
	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/internal/validation"
	"github.com/iudanet/barkeeper/pkg/api"
)

// Tickets wraps the tickets table and the create_ticket / pay_ticket procedures.
type Tickets struct {
	base
}

// NewTickets creates the tickets service
func NewTickets(d Deps) *Tickets {
	return &Tickets{base: newBase(d)}
}

// ListTickets returns tickets of a bar.
func (s *Tickets) ListTickets(ctx context.Context, barID string) (Snapshot[models.Ticket], error) {
	return read(ctx, &s.base, cache.TicketsKey(barID), models.Ticket.Valid, func(ctx context.Context) ([]models.Ticket, error) {
		tickets, err := s.API.ListTickets(ctx, barID)
		if err != nil {
			return nil, err
		}
		return mapSlice(tickets, TicketFromAPI), nil
	})
}

// CreateTicket opens a ticket. While blocked, or while the bar itself is
// unconfirmed, it returns an unconfirmed ticket with a temporary id.
func (s *Tickets) CreateTicket(ctx context.Context, in models.NewTicket) (models.Ticket, error) {
	if in.BarID == "" {
		return models.Ticket{}, fmt.Errorf("bar id is required")
	}

	key := queue.NewKey()
	if !s.blocked() && !models.IsTempID(in.BarID) {
		ticket, err := s.API.CreateTicket(ctx, key, api.CreateTicketRequest{
			BarID:      in.BarID,
			TableLabel: in.TableLabel,
			ServerName: in.ServerName,
			Notes:      in.Notes,
		})
		if err != nil {
			return models.Ticket{}, err
		}
		return TicketFromAPI(*ticket), nil
	}

	payload := models.CreateTicketPayload{TempID: newTempID(), Ticket: in}
	if err := s.enqueue(ctx, key, payload, payload.TempID); err != nil {
		return models.Ticket{}, err
	}
	return reconcile.TicketFromPayload(payload, s.Actor(), s.Now().UTC()), nil
}

// PayTicket settles a ticket.
func (s *Tickets) PayTicket(ctx context.Context, ticket models.Ticket, method string) (models.Ticket, error) {
	if err := validation.ValidatePaymentMethod(method); err != nil {
		return models.Ticket{}, err
	}
	if ticket.Status == models.TicketStatusPaid {
		return models.Ticket{}, fmt.Errorf("ticket %s is already paid", ticket.ID)
	}

	queued, err := s.shouldQueue(ctx, ticket.ID)
	if err != nil {
		return models.Ticket{}, err
	}

	key := queue.NewKey()
	paidAt := s.Now().UTC()
	if !queued {
		paid, err := s.API.PayTicket(ctx, key, api.PayTicketRequest{
			TicketID:      ticket.ID,
			PaymentMethod: method,
			PaidAt:        paidAt,
		})
		if err != nil {
			return models.Ticket{}, err
		}
		return TicketFromAPI(*paid), nil
	}

	payload := models.PayTicketPayload{TicketID: ticket.ID, PaymentMethod: method, PaidAt: paidAt}
	if err := s.enqueue(ctx, key, payload, ticket.ID); err != nil {
		return models.Ticket{}, err
	}

	ticket.Status = models.TicketStatusPaid
	ticket.PaymentMethod = method
	ticket.PaidAt = &paidAt
	ticket.Unconfirmed = true
	return ticket, nil
}

// Pending returns ticket operations still waiting for acknowledgment.
func (s *Tickets) Pending(ctx context.Context) []*models.PendingOperation {
	ops := s.pending(ctx)
	out := ops[:0]
	for _, op := range ops {
		if op.Type == models.OpCreateTicket || op.Type == models.OpPayTicket {
			out = append(out, op)
		}
	}
	return out
}
