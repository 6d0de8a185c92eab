package api

import "time"

// IdempotencyKeyHeader carries the client-generated key on every mutation.
// The server executes a key at most once per user and replays the stored response.
const IdempotencyKeyHeader = "Idempotency-Key"

// Bar представляет заведение
type Bar struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	OwnerID   string    `json:"owner_id"`
	IsActive  bool      `json:"is_active"`
}

// CreateBarRequest запрос на создание бара
type CreateBarRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// UpdateBarRequest частичное обновление бара. Отсутствующие поля не меняются.
type UpdateBarRequest struct {
	ClientUpdatedAt time.Time `json:"client_updated_at"` // момент правки на клиенте, для last-write-wins
	Name            *string   `json:"name,omitempty"`
	Address         *string   `json:"address,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	IsActive        *bool     `json:"is_active,omitempty"`
}

// ServerMapping привязка имени официанта к пользователю
type ServerMapping struct {
	CreatedAt  time.Time `json:"created_at"`
	ID         string    `json:"id"`
	BarID      string    `json:"bar_id"`
	ServerName string    `json:"server_name"`
	UserID     string    `json:"user_id"`
}

// UpsertMappingRequest создание или изменение привязки
type UpsertMappingRequest struct {
	BarID      string `json:"bar_id"`
	ServerName string `json:"server_name"`
	UserID     string `json:"user_id"`
}

// Ticket счёт
type Ticket struct {
	CreatedAt     time.Time  `json:"created_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	ID            string     `json:"id"`
	BarID         string     `json:"bar_id"`
	TableLabel    string     `json:"table_label"`
	ServerName    string     `json:"server_name"`
	Notes         string     `json:"notes"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	CreatedBy     string     `json:"created_by"`
	Number        int64      `json:"number"`
}

// CreateTicketRequest аргументы rpc create_ticket
type CreateTicketRequest struct {
	BarID      string `json:"bar_id"`
	TableLabel string `json:"table_label,omitempty"`
	ServerName string `json:"server_name,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// PayTicketRequest аргументы rpc pay_ticket
type PayTicketRequest struct {
	PaidAt        time.Time `json:"paid_at"`
	TicketID      string    `json:"ticket_id"`
	PaymentMethod string    `json:"payment_method"`
}

// SaleItem позиция продажи
type SaleItem struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// Sale продажа
type Sale struct {
	CreatedAt     time.Time  `json:"created_at"`
	ID            string     `json:"id"`
	BarID         string     `json:"bar_id"`
	TicketID      string     `json:"ticket_id,omitempty"`
	PaymentMethod string     `json:"payment_method"`
	ServerName    string     `json:"server_name,omitempty"`
	SoldBy        string     `json:"sold_by"`
	CreatedBy     string     `json:"created_by"`
	Items         []SaleItem `json:"items"`
	TotalCents    int64      `json:"total_cents"`
}

// CreateSaleRequest аргументы rpc create_sale
type CreateSaleRequest struct {
	BarID         string     `json:"bar_id"`
	TicketID      string     `json:"ticket_id,omitempty"`
	PaymentMethod string     `json:"payment_method"`
	ServerName    string     `json:"server_name,omitempty"`
	SoldBy        string     `json:"sold_by"`
	Items         []SaleItem `json:"items"`
}

// Change tables reported by the realtime feed
const (
	TableBars           = "bars"
	TableTickets        = "tickets"
	TableServerMappings = "server_mappings"
	TableSales          = "sales"
)

// ChangeEvent одно изменение из realtime канала
type ChangeEvent struct {
	At       time.Time `json:"at"`
	Table    string    `json:"table"`
	Action   string    `json:"action"` // insert, update, delete
	BarID    string    `json:"bar_id"`
	RecordID string    `json:"record_id"`
}

// HealthResponse ответ /health
type HealthResponse struct {
	Time   time.Time `json:"time"`
	Status string    `json:"status"`
}
