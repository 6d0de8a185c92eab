package sync

import (
	"context"
	"errors"
	"fmt"

	httpClient "github.com/iudanet/barkeeper/internal/client/api"
	"github.com/iudanet/barkeeper/internal/client/services"
	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/pkg/api"
)

//go:generate moq -out replayer_mock.go . Replayer

// ErrUnreplayable marks an operation that can never be sent, e.g. an unknown payload.
var ErrUnreplayable = errors.New("operation cannot be replayed")

// Replayer sends one queued operation to the server.
type Replayer interface {
	Replay(ctx context.Context, op *models.PendingOperation) (Ack, error)
}

// Ack подтверждение сервера
type Ack struct {
	ServerID string // ServerID id созданной сущности для CREATE_* операций
	TempID   string // TempID временный id, который заменил ServerID; заполняет Manager
}

// APIReplayer replays operations through the remote API client.
// The operation id is sent as the idempotency key.
type APIReplayer struct {
	api httpClient.ClientAPI
}

// NewAPIReplayer creates a replayer over apiClient
func NewAPIReplayer(apiClient httpClient.ClientAPI) *APIReplayer {
	return &APIReplayer{api: apiClient}
}

// Replay implements Replayer.
func (r *APIReplayer) Replay(ctx context.Context, op *models.PendingOperation) (Ack, error) {
	switch p := op.Payload.(type) {
	case models.CreateBarPayload:
		bar, err := r.api.CreateBar(ctx, op.ID, api.CreateBarRequest{
			Name:    p.Bar.Name,
			Address: p.Bar.Address,
			Phone:   p.Bar.Phone,
		})
		if err != nil {
			return Ack{}, err
		}
		return Ack{ServerID: bar.ID}, nil

	case models.UpdateBarPayload:
		_, err := r.api.UpdateBar(ctx, op.ID, p.BarID, api.UpdateBarRequest{
			ClientUpdatedAt: p.ClientUpdatedAt,
			Name:            p.Patch.Name,
			Address:         p.Patch.Address,
			Phone:           p.Patch.Phone,
			IsActive:        p.Patch.IsActive,
		})
		return Ack{}, err

	case models.CreateTicketPayload:
		ticket, err := r.api.CreateTicket(ctx, op.ID, api.CreateTicketRequest{
			BarID:      p.Ticket.BarID,
			TableLabel: p.Ticket.TableLabel,
			ServerName: p.Ticket.ServerName,
			Notes:      p.Ticket.Notes,
		})
		if err != nil {
			return Ack{}, err
		}
		return Ack{ServerID: ticket.ID}, nil

	case models.PayTicketPayload:
		_, err := r.api.PayTicket(ctx, op.ID, api.PayTicketRequest{
			TicketID:      p.TicketID,
			PaymentMethod: p.PaymentMethod,
			PaidAt:        p.PaidAt,
		})
		return Ack{}, err

	case models.UpsertMappingPayload:
		_, err := r.api.UpsertMapping(ctx, op.ID, api.UpsertMappingRequest{
			BarID:      p.BarID,
			ServerName: p.ServerName,
			UserID:     p.UserID,
		})
		return Ack{}, err

	case models.DeleteMappingPayload:
		err := r.api.DeleteMapping(ctx, op.ID, p.BarID, p.ServerName)
		// Привязки уже нет - результат тот же
		if httpClient.IsNotFound(err) {
			return Ack{}, nil
		}
		return Ack{}, err

	case models.CreateSalePayload:
		sale, err := r.api.CreateSale(ctx, op.ID, api.CreateSaleRequest{
			BarID:         p.Sale.BarID,
			TicketID:      p.Sale.TicketID,
			PaymentMethod: p.Sale.PaymentMethod,
			ServerName:    p.Sale.ServerName,
			SoldBy:        p.SoldBy,
			Items:         services.SaleItemsToAPI(p.Sale.Items),
		})
		if err != nil {
			return Ack{}, err
		}
		return Ack{ServerID: sale.ID}, nil

	default:
		return Ack{}, fmt.Errorf("%w: unsupported payload %T", ErrUnreplayable, op.Payload)
	}
}

// createdID returns the temporary id a CREATE_* payload introduces.
func createdID(p models.OperationPayload) string {
	switch v := p.(type) {
	case models.CreateBarPayload:
		return v.TempID
	case models.CreateTicketPayload:
		return v.TempID
	case models.CreateSalePayload:
		return v.TempID
	default:
		return ""
	}
}
