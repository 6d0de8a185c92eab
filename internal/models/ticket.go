package models

import (
	"strings"
	"time"
)

// TicketStatus статус счёта (тикета)
type TicketStatus string

const (
	TicketStatusOpen TicketStatus = "open"
	TicketStatusPaid TicketStatus = "paid"
)

// Ticket представляет открытый или оплаченный счёт стола
type Ticket struct {
	CreatedAt     time.Time    `json:"created_at"`
	PaidAt        *time.Time   `json:"paid_at,omitempty"`
	ID            string       `json:"id"`
	BarID         string       `json:"bar_id"`
	TableLabel    string       `json:"table_label,omitempty"`
	ServerName    string       `json:"server_name,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	Status        TicketStatus `json:"status"`
	PaymentMethod string       `json:"payment_method,omitempty"`
	CreatedBy     string       `json:"created_by"`
	Number        int64        `json:"number"` // Number порядковый номер в пределах бара, выдаётся сервером
	Unconfirmed   bool         `json:"unconfirmed,omitempty"`
}

// Valid is the structural predicate applied to cached ticket records.
func (t Ticket) Valid() bool {
	return strings.TrimSpace(t.ID) != "" && strings.TrimSpace(t.BarID) != ""
}

// NewTicket описывает данные для открытия счёта
type NewTicket struct {
	BarID      string `json:"bar_id"`
	TableLabel string `json:"table_label,omitempty"`
	ServerName string `json:"server_name,omitempty"`
	Notes      string `json:"notes,omitempty"`
}
