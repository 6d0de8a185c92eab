package services

import (
	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/pkg/api"
)

// BarFromAPI converts the wire representation of a bar.
func BarFromAPI(b api.Bar) models.Bar {
	return models.Bar{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		OwnerID:   b.OwnerID,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// TicketFromAPI converts the wire representation of a ticket.
func TicketFromAPI(t api.Ticket) models.Ticket {
	return models.Ticket{
		ID:            t.ID,
		BarID:         t.BarID,
		Number:        t.Number,
		TableLabel:    t.TableLabel,
		ServerName:    t.ServerName,
		Notes:         t.Notes,
		Status:        models.TicketStatus(t.Status),
		PaymentMethod: t.PaymentMethod,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
		PaidAt:        t.PaidAt,
	}
}

// MappingFromAPI converts the wire representation of a server mapping.
func MappingFromAPI(m api.ServerMapping) models.ServerMapping {
	return models.ServerMapping{
		ID:         m.ID,
		BarID:      m.BarID,
		ServerName: m.ServerName,
		UserID:     m.UserID,
		CreatedAt:  m.CreatedAt,
	}
}

// SaleFromAPI converts the wire representation of a sale.
func SaleFromAPI(s api.Sale) models.Sale {
	items := make([]models.SaleItem, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, models.SaleItem(it))
	}
	return models.Sale{
		ID:            s.ID,
		BarID:         s.BarID,
		TicketID:      s.TicketID,
		PaymentMethod: s.PaymentMethod,
		ServerName:    s.ServerName,
		SoldBy:        s.SoldBy,
		CreatedBy:     s.CreatedBy,
		Items:         items,
		TotalCents:    s.TotalCents,
		CreatedAt:     s.CreatedAt,
	}
}

// SaleItemsToAPI converts sale items for a request.
func SaleItemsToAPI(items []models.SaleItem) []api.SaleItem {
	out := make([]api.SaleItem, 0, len(items))
	for _, it := range items {
		out = append(out, api.SaleItem(it))
	}
	return out
}

func mapSlice[A, B any](in []A, fn func(A) B) []B {
	out := make([]B, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
