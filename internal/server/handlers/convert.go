package handlers

import (
	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/pkg/api"
)

func barToAPI(b models.Bar) api.Bar {
	return api.Bar{
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		OwnerID:   b.OwnerID,
		IsActive:  b.IsActive,
	}
}

func mappingToAPI(m models.ServerMapping) api.ServerMapping {
	return api.ServerMapping{
		CreatedAt:  m.CreatedAt,
		ID:         m.ID,
		BarID:      m.BarID,
		ServerName: m.ServerName,
		UserID:     m.UserID,
	}
}

func ticketToAPI(t models.Ticket) api.Ticket {
	return api.Ticket{
		CreatedAt:     t.CreatedAt,
		PaidAt:        t.PaidAt,
		ID:            t.ID,
		BarID:         t.BarID,
		TableLabel:    t.TableLabel,
		ServerName:    t.ServerName,
		Notes:         t.Notes,
		Status:        string(t.Status),
		PaymentMethod: t.PaymentMethod,
		CreatedBy:     t.CreatedBy,
		Number:        t.Number,
	}
}

func saleToAPI(s models.Sale) api.Sale {
	items := make([]api.SaleItem, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, api.SaleItem{
			ProductID:      it.ProductID,
			Name:           it.Name,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		})
	}
	return api.Sale{
		CreatedAt:     s.CreatedAt,
		ID:            s.ID,
		BarID:         s.BarID,
		TicketID:      s.TicketID,
		PaymentMethod: s.PaymentMethod,
		ServerName:    s.ServerName,
		SoldBy:        s.SoldBy,
		CreatedBy:     s.CreatedBy,
		Items:         items,
		TotalCents:    s.TotalCents,
	}
}

func saleItemsFromAPI(items []api.SaleItem) []models.SaleItem {
	out := make([]models.SaleItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.SaleItem{
			ProductID:      it.ProductID,
			Name:           it.Name,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		})
	}
	return out
}
