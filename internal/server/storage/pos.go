package storage

import (
	"context"
	"time"

	"github.com/iudanet/barkeeper/internal/models"
)

// TicketStorage defines interface for tickets persistence
type TicketStorage interface {
	// CreateTicket stores an open ticket and assigns the next number within its bar
	CreateTicket(ctx context.Context, ticket *models.Ticket) error

	// GetTicket retrieves ticket by ID
	// Returns ErrTicketNotFound if ticket doesn't exist
	GetTicket(ctx context.Context, ticketID string) (*models.Ticket, error)

	// ListTickets returns tickets of bar, newest first
	ListTickets(ctx context.Context, barID string) ([]models.Ticket, error)

	// PayTicket marks an open ticket as paid
	// Returns ErrTicketNotFound or ErrTicketAlreadyPaid
	PayTicket(ctx context.Context, ticketID, paymentMethod string, paidAt time.Time) (*models.Ticket, error)
}

// SaleStorage defines interface for sales persistence
type SaleStorage interface {
	// CreateSale stores a sale with all its items atomically
	CreateSale(ctx context.Context, sale *models.Sale) error

	// ListSales returns sales of bar with items, newest first
	ListSales(ctx context.Context, barID string) ([]models.Sale, error)
}

// MappingStorage defines interface for server name mappings
type MappingStorage interface {
	// ListMappings returns mappings of bar ordered by server name
	ListMappings(ctx context.Context, barID string) ([]models.ServerMapping, error)

	// UpsertMapping creates or replaces the mapping for (bar, server name).
	// Server names are compared case-insensitively. On replace mapping.ID and
	// mapping.CreatedAt are set to the stored values.
	UpsertMapping(ctx context.Context, mapping *models.ServerMapping) error

	// DeleteMapping removes the mapping for (bar, server name)
	// Returns ErrMappingNotFound if there is none
	DeleteMapping(ctx context.Context, barID, serverName string) error

	// ResolveServerName returns the user mapped to serverName in bar
	// Returns ErrMappingNotFound if the name is not mapped
	ResolveServerName(ctx context.Context, barID, serverName string) (string, error)
}
