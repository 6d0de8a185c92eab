// Package reconcile merges authoritative server lists with still-pending
// queue operations into the view presented to the user.
//
// All functions are pure: they never touch storage or the network.
package reconcile

import (
	"time"

	"github.com/iudanet/barkeeper/internal/models"
)

// MergeBars overlays pending bar operations onto the server list.
// Pending creations are appended as unconfirmed bars; pending updates are
// applied as partial patches, so fields absent from a patch keep their value.
func MergeBars(server []models.Bar, pending []*models.PendingOperation) []models.Bar {
	result := make([]models.Bar, len(server))
	copy(result, server)

	index := make(map[string]int, len(result))
	for i, bar := range result {
		index[bar.ID] = i
	}

	for _, op := range pending {
		if !op.IsActive() {
			continue
		}
		switch p := op.Payload.(type) {
		case models.CreateBarPayload:
			if _, ok := index[p.TempID]; ok {
				continue
			}
			index[p.TempID] = len(result)
			result = append(result, BarFromPayload(p, op.ActorID, op.CreatedAt))
		case models.UpdateBarPayload:
			i, ok := index[p.BarID]
			if !ok {
				continue
			}
			bar := p.Patch.Apply(result[i])
			bar.Unconfirmed = true
			result[i] = bar
		}
	}

	return result
}

// MergeTickets overlays pending ticket operations onto the server list.
func MergeTickets(server []models.Ticket, pending []*models.PendingOperation) []models.Ticket {
	result := make([]models.Ticket, len(server))
	copy(result, server)

	index := make(map[string]int, len(result))
	for i, ticket := range result {
		index[ticket.ID] = i
	}

	for _, op := range pending {
		if !op.IsActive() {
			continue
		}
		switch p := op.Payload.(type) {
		case models.CreateTicketPayload:
			if _, ok := index[p.TempID]; ok {
				continue
			}
			index[p.TempID] = len(result)
			result = append(result, TicketFromPayload(p, op.ActorID, op.CreatedAt))
		case models.PayTicketPayload:
			i, ok := index[p.TicketID]
			if !ok {
				continue
			}
			paidAt := p.PaidAt
			ticket := result[i]
			ticket.Status = models.TicketStatusPaid
			ticket.PaymentMethod = p.PaymentMethod
			ticket.PaidAt = &paidAt
			ticket.Unconfirmed = true
			result[i] = ticket
		}
	}

	return result
}

// MergeMappings overlays pending upserts and deletes onto the server list.
func MergeMappings(server []models.ServerMapping, pending []*models.PendingOperation) []models.ServerMapping {
	result := make([]models.ServerMapping, 0, len(server))
	result = append(result, server...)

	find := func(barID, name string) int {
		for i, m := range result {
			if m.BarID == barID && m.Matches(name) {
				return i
			}
		}
		return -1
	}

	for _, op := range pending {
		if !op.IsActive() {
			continue
		}
		switch p := op.Payload.(type) {
		case models.UpsertMappingPayload:
			if i := find(p.BarID, p.ServerName); i >= 0 {
				result[i].UserID = p.UserID
				continue
			}
			result = append(result, models.ServerMapping{
				ID:         op.ID,
				BarID:      p.BarID,
				ServerName: p.ServerName,
				UserID:     p.UserID,
				CreatedAt:  op.CreatedAt,
			})
		case models.DeleteMappingPayload:
			if i := find(p.BarID, p.ServerName); i >= 0 {
				result = append(result[:i], result[i+1:]...)
			}
		}
	}

	return result
}

// MergeSales appends pending sales as unconfirmed records.
func MergeSales(server []models.Sale, pending []*models.PendingOperation) []models.Sale {
	result := make([]models.Sale, len(server), len(server)+len(pending))
	copy(result, server)

	seen := make(map[string]bool, len(result))
	for _, sale := range result {
		seen[sale.ID] = true
	}

	for _, op := range pending {
		if !op.IsActive() {
			continue
		}
		p, ok := op.Payload.(models.CreateSalePayload)
		if !ok || seen[p.TempID] {
			continue
		}
		seen[p.TempID] = true
		result = append(result, SaleFromPayload(p, op.ActorID, op.CreatedAt))
	}

	return result
}

// SaleFromPayload builds the optimistic sale record for a queued creation.
func SaleFromPayload(p models.CreateSalePayload, actorID string, at time.Time) models.Sale {
	return models.Sale{
		ID:            p.TempID,
		BarID:         p.Sale.BarID,
		TicketID:      p.Sale.TicketID,
		PaymentMethod: p.Sale.PaymentMethod,
		ServerName:    p.Sale.ServerName,
		SoldBy:        p.SoldBy,
		CreatedBy:     actorID,
		Items:         p.Sale.Items,
		TotalCents:    p.Sale.TotalCents(),
		CreatedAt:     at,
		Unconfirmed:   true,
	}
}

// BarFromPayload builds the optimistic bar record for a queued creation.
func BarFromPayload(p models.CreateBarPayload, actorID string, at time.Time) models.Bar {
	return models.Bar{
		ID:          p.TempID,
		Name:        p.Bar.Name,
		Address:     p.Bar.Address,
		Phone:       p.Bar.Phone,
		OwnerID:     actorID,
		IsActive:    true,
		CreatedAt:   at,
		UpdatedAt:   at,
		Unconfirmed: true,
	}
}

// TicketFromPayload builds the optimistic ticket record for a queued creation.
func TicketFromPayload(p models.CreateTicketPayload, actorID string, at time.Time) models.Ticket {
	return models.Ticket{
		ID:          p.TempID,
		BarID:       p.Ticket.BarID,
		TableLabel:  p.Ticket.TableLabel,
		ServerName:  p.Ticket.ServerName,
		Notes:       p.Ticket.Notes,
		Status:      models.TicketStatusOpen,
		CreatedBy:   actorID,
		CreatedAt:   at,
		Unconfirmed: true,
	}
}
