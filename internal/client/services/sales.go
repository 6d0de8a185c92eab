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

// Sales wraps the sales table and the create_sale procedure.
type Sales struct {
	mappings *ServerMappings
	base
}

// NewSales creates the sales service. Server names are resolved through mappings.
func NewSales(d Deps, mappings *ServerMappings) *Sales {
	return &Sales{base: newBase(d), mappings: mappings}
}

// ListSales returns sales of a bar.
func (s *Sales) ListSales(ctx context.Context, barID string) (Snapshot[models.Sale], error) {
	return read(ctx, &s.base, cache.SalesKey(barID), models.Sale.Valid, func(ctx context.Context) ([]models.Sale, error) {
		sales, err := s.API.ListSales(ctx, barID)
		if err != nil {
			return nil, err
		}
		return mapSlice(sales, SaleFromAPI), nil
	})
}

// CreateSale records a sale. When the sale names a server, the name must
// resolve to a user; otherwise ErrServerNotMapped is returned and nothing is sent or queued.
func (s *Sales) CreateSale(ctx context.Context, in models.NewSale) (models.Sale, error) {
	if err := in.Validate(); err != nil {
		return models.Sale{}, err
	}
	if err := validation.ValidatePaymentMethod(in.PaymentMethod); err != nil {
		return models.Sale{}, err
	}

	soldBy := s.Actor()
	if in.ServerName != "" {
		userID, err := s.mappings.GetUserIDForServerName(ctx, in.BarID, in.ServerName)
		if err != nil {
			return models.Sale{}, fmt.Errorf("failed to resolve server %q: %w", in.ServerName, err)
		}
		if userID == "" {
			return models.Sale{}, fmt.Errorf("%w: %q in bar %s, map the name to a user before selling",
				ErrServerNotMapped, in.ServerName, in.BarID)
		}
		soldBy = userID
	}

	// Продажа по счёту идёт в одной группе со счётом, чтобы воспроизводиться после него
	tempID := newTempID()
	entityID := tempID
	if in.TicketID != "" {
		entityID = in.TicketID
	}

	queued := s.blocked() || models.IsTempID(in.BarID)
	if !queued && in.TicketID != "" {
		var err error
		if queued, err = s.shouldQueue(ctx, in.TicketID); err != nil {
			return models.Sale{}, err
		}
	}

	key := queue.NewKey()
	if !queued {
		sale, err := s.API.CreateSale(ctx, key, api.CreateSaleRequest{
			BarID:         in.BarID,
			TicketID:      in.TicketID,
			PaymentMethod: in.PaymentMethod,
			ServerName:    in.ServerName,
			SoldBy:        soldBy,
			Items:         SaleItemsToAPI(in.Items),
		})
		if err != nil {
			return models.Sale{}, err
		}
		return SaleFromAPI(*sale), nil
	}

	payload := models.CreateSalePayload{TempID: tempID, SoldBy: soldBy, Sale: in}
	if err := s.enqueue(ctx, key, payload, entityID); err != nil {
		return models.Sale{}, err
	}
	return reconcile.SaleFromPayload(payload, s.Actor(), s.Now().UTC()), nil
}

// Pending returns sale creations still waiting for acknowledgment.
func (s *Sales) Pending(ctx context.Context) []*models.PendingOperation {
	ops := s.pending(ctx)
	out := ops[:0]
	for _, op := range ops {
		if op.Type == models.OpCreateSale {
			out = append(out, op)
		}
	}
	return out
}
