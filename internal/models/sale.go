package models

import (
	"errors"
	"strings"
	"time"
)

// SaleItem позиция продажи. Суммы хранятся в минимальных единицах валюты.
type SaleItem struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// Sale представляет продажу
type Sale struct {
	CreatedAt     time.Time  `json:"created_at"`
	ID            string     `json:"id"`
	BarID         string     `json:"bar_id"`
	TicketID      string     `json:"ticket_id,omitempty"`
	PaymentMethod string     `json:"payment_method"`
	ServerName    string     `json:"server_name,omitempty"`
	SoldBy        string     `json:"sold_by"` // SoldBy пользователь, на которого записана продажа
	CreatedBy     string     `json:"created_by"`
	Items         []SaleItem `json:"items"`
	TotalCents    int64      `json:"total_cents"`
	Unconfirmed   bool       `json:"unconfirmed,omitempty"`
}

// Valid is the structural predicate applied to cached sale records.
func (s Sale) Valid() bool {
	return strings.TrimSpace(s.ID) != "" && strings.TrimSpace(s.BarID) != ""
}

// NewSale описывает данные для создания продажи
type NewSale struct {
	BarID         string     `json:"bar_id"`
	TicketID      string     `json:"ticket_id,omitempty"`
	PaymentMethod string     `json:"payment_method"`
	ServerName    string     `json:"server_name,omitempty"`
	Items         []SaleItem `json:"items"`
}

// ErrEmptySale is returned for a sale without items.
var ErrEmptySale = errors.New("sale has no items")

// Validate checks the sale input before it is sent or queued.
func (n NewSale) Validate() error {
	if strings.TrimSpace(n.BarID) == "" {
		return errors.New("bar id is required")
	}
	if len(n.Items) == 0 {
		return ErrEmptySale
	}
	for _, item := range n.Items {
		if item.Quantity <= 0 {
			return errors.New("item quantity must be positive")
		}
		if item.UnitPriceCents < 0 {
			return errors.New("item price cannot be negative")
		}
	}
	return nil
}

// TotalCents sums quantity * unit price over all items.
func (n NewSale) TotalCents() int64 {
	var total int64
	for _, item := range n.Items {
		total += item.Quantity * item.UnitPriceCents
	}
	return total
}
