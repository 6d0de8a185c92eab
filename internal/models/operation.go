package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OperationType тип отложенной операции
type OperationType string

const (
	OpCreateBar           OperationType = "CREATE_BAR"
	OpUpdateBar           OperationType = "UPDATE_BAR"
	OpCreateTicket        OperationType = "CREATE_TICKET"
	OpPayTicket           OperationType = "PAY_TICKET"
	OpUpsertServerMapping OperationType = "UPSERT_SERVER_MAPPING"
	OpDeleteServerMapping OperationType = "DELETE_SERVER_MAPPING"
	OpCreateSale          OperationType = "CREATE_SALE"
)

// OperationStatus статус операции в очереди
type OperationStatus string

const (
	StatusPending OperationStatus = "pending"
	StatusSyncing OperationStatus = "syncing"
	StatusDone    OperationStatus = "done"
	StatusFailed  OperationStatus = "failed"
)

// OperationPayload is the closed set of replayable mutations.
// Only the payload types declared in this package implement it.
type OperationPayload interface {
	OperationType() OperationType
	isOperationPayload()
}

// EntityRebinder is implemented by payloads that reference other entities by id.
// RebindEntity returns a copy with every reference to from replaced by to
// and reports whether anything changed.
type EntityRebinder interface {
	RebindEntity(from, to string) (OperationPayload, bool)
}

// CreateBarPayload создание бара
type CreateBarPayload struct {
	TempID string `json:"temp_id"`
	Bar    NewBar `json:"bar"`
}

// UpdateBarPayload частичное обновление бара
type UpdateBarPayload struct {
	ClientUpdatedAt time.Time `json:"client_updated_at"`
	BarID           string    `json:"bar_id"`
	Patch           BarPatch  `json:"patch"`
}

// CreateTicketPayload открытие счёта
type CreateTicketPayload struct {
	TempID string    `json:"temp_id"`
	Ticket NewTicket `json:"ticket"`
}

// PayTicketPayload оплата счёта
type PayTicketPayload struct {
	PaidAt        time.Time `json:"paid_at"`
	TicketID      string    `json:"ticket_id"`
	PaymentMethod string    `json:"payment_method"`
}

// UpsertMappingPayload создание или изменение привязки официанта
type UpsertMappingPayload struct {
	BarID      string `json:"bar_id"`
	ServerName string `json:"server_name"`
	UserID     string `json:"user_id"`
}

// DeleteMappingPayload удаление привязки официанта
type DeleteMappingPayload struct {
	BarID      string `json:"bar_id"`
	ServerName string `json:"server_name"`
}

// CreateSalePayload создание продажи
type CreateSalePayload struct {
	TempID string  `json:"temp_id"`
	SoldBy string  `json:"sold_by"`
	Sale   NewSale `json:"sale"`
}

func (CreateBarPayload) OperationType() OperationType     { return OpCreateBar }
func (UpdateBarPayload) OperationType() OperationType     { return OpUpdateBar }
func (CreateTicketPayload) OperationType() OperationType  { return OpCreateTicket }
func (PayTicketPayload) OperationType() OperationType     { return OpPayTicket }
func (UpsertMappingPayload) OperationType() OperationType { return OpUpsertServerMapping }
func (DeleteMappingPayload) OperationType() OperationType { return OpDeleteServerMapping }
func (CreateSalePayload) OperationType() OperationType    { return OpCreateSale }

func (CreateBarPayload) isOperationPayload()     {}
func (UpdateBarPayload) isOperationPayload()     {}
func (CreateTicketPayload) isOperationPayload()  {}
func (PayTicketPayload) isOperationPayload()     {}
func (UpsertMappingPayload) isOperationPayload() {}
func (DeleteMappingPayload) isOperationPayload() {}
func (CreateSalePayload) isOperationPayload()    {}

// RebindEntity implements EntityRebinder.
func (p UpdateBarPayload) RebindEntity(from, to string) (OperationPayload, bool) {
	if p.BarID != from {
		return p, false
	}
	p.BarID = to
	return p, true
}

// RebindEntity implements EntityRebinder.
func (p CreateTicketPayload) RebindEntity(from, to string) (OperationPayload, bool) {
	if p.Ticket.BarID != from {
		return p, false
	}
	p.Ticket.BarID = to
	return p, true
}

// RebindEntity implements EntityRebinder.
func (p PayTicketPayload) RebindEntity(from, to string) (OperationPayload, bool) {
	if p.TicketID != from {
		return p, false
	}
	p.TicketID = to
	return p, true
}

// RebindEntity implements EntityRebinder.
func (p UpsertMappingPayload) RebindEntity(from, to string) (OperationPayload, bool) {
	if p.BarID != from {
		return p, false
	}
	p.BarID = to
	return p, true
}

// RebindEntity implements EntityRebinder.
func (p DeleteMappingPayload) RebindEntity(from, to string) (OperationPayload, bool) {
	if p.BarID != from {
		return p, false
	}
	p.BarID = to
	return p, true
}

// RebindEntity implements EntityRebinder.
func (p CreateSalePayload) RebindEntity(from, to string) (OperationPayload, bool) {
	changed := false
	if p.Sale.BarID == from {
		p.Sale.BarID = to
		changed = true
	}
	if p.Sale.TicketID == from {
		p.Sale.TicketID = to
		changed = true
	}
	return p, changed
}

const mappingEntityPrefix = "mapping:"

// MappingEntityID returns the queue entity key for a server-name mapping.
// Upserts and deletes of the same name share it so they replay in order.
func MappingEntityID(barID, serverName string) string {
	return mappingEntityPrefix + barID + ":" + strings.ToLower(strings.TrimSpace(serverName))
}

// RebindEntityID returns id with the temporary entity from replaced by to.
// Besides an exact match it rewrites the bar component of mapping keys, so
// operations of a mapping keep one queue group after the bar is confirmed.
func RebindEntityID(id, from, to string) (string, bool) {
	if from == "" || from == to {
		return id, false
	}
	if id == from {
		return to, true
	}
	if name, ok := strings.CutPrefix(id, mappingEntityPrefix+from+":"); ok {
		return mappingEntityPrefix + to + ":" + name, true
	}
	return id, false
}

// PendingOperation отложенная мутация, ожидающая отправки на сервер.
// ID является ключом идемпотентности и не меняется между повторами.
type PendingOperation struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Payload   OperationPayload
	ID        string
	Type      OperationType
	EntityID  string
	ActorID   string
	Status    OperationStatus
	LastError string
	Seq       uint64 // Seq монотонный номер создания, порядок воспроизведения
	Attempts  int
}

// IsActive reports whether the operation still awaits acknowledgment.
func (op *PendingOperation) IsActive() bool {
	return op.Status == StatusPending || op.Status == StatusSyncing
}

// Clone returns a shallow copy; payloads are value types.
func (op *PendingOperation) Clone() *PendingOperation {
	c := *op
	return &c
}

type operationJSON struct {
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Payload   json.RawMessage `json:"payload"`
	ID        string          `json:"id"`
	Type      OperationType   `json:"type"`
	EntityID  string          `json:"entity_id"`
	ActorID   string          `json:"actor_id"`
	Status    OperationStatus `json:"status"`
	LastError string          `json:"last_error,omitempty"`
	Seq       uint64          `json:"seq"`
	Attempts  int             `json:"attempts"`
}

// MarshalJSON encodes the payload next to its type tag.
func (op PendingOperation) MarshalJSON() ([]byte, error) {
	if op.Payload == nil {
		return nil, fmt.Errorf("operation %s has no payload", op.ID)
	}
	if op.Payload.OperationType() != op.Type {
		return nil, fmt.Errorf("operation %s: payload type %s does not match %s", op.ID, op.Payload.OperationType(), op.Type)
	}

	payload, err := json.Marshal(op.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return json.Marshal(operationJSON{
		ID:        op.ID,
		Type:      op.Type,
		Payload:   payload,
		EntityID:  op.EntityID,
		ActorID:   op.ActorID,
		Status:    op.Status,
		LastError: op.LastError,
		Seq:       op.Seq,
		Attempts:  op.Attempts,
		CreatedAt: op.CreatedAt,
		UpdatedAt: op.UpdatedAt,
	})
}

// UnmarshalJSON decodes the payload into the concrete type named by the tag.
func (op *PendingOperation) UnmarshalJSON(data []byte) error {
	var raw operationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	payload, err := DecodePayload(raw.Type, raw.Payload)
	if err != nil {
		return err
	}

	*op = PendingOperation{
		ID:        raw.ID,
		Type:      raw.Type,
		Payload:   payload,
		EntityID:  raw.EntityID,
		ActorID:   raw.ActorID,
		Status:    raw.Status,
		LastError: raw.LastError,
		Seq:       raw.Seq,
		Attempts:  raw.Attempts,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
	}
	return nil
}

// DecodePayload decodes data into the payload type registered for t.
func DecodePayload(t OperationType, data []byte) (OperationPayload, error) {
	switch t {
	case OpCreateBar:
		return decodeAs[CreateBarPayload](data)
	case OpUpdateBar:
		return decodeAs[UpdateBarPayload](data)
	case OpCreateTicket:
		return decodeAs[CreateTicketPayload](data)
	case OpPayTicket:
		return decodeAs[PayTicketPayload](data)
	case OpUpsertServerMapping:
		return decodeAs[UpsertMappingPayload](data)
	case OpDeleteServerMapping:
		return decodeAs[DeleteMappingPayload](data)
	case OpCreateSale:
		return decodeAs[CreateSalePayload](data)
	default:
		return nil, fmt.Errorf("unknown operation type %q", t)
	}
}

func decodeAs[T OperationPayload](data []byte) (OperationPayload, error) {
	var p T
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s payload: %w", p.OperationType(), err)
	}
	return p, nil
}

// PayloadRefs returns the ids of other entities the payload depends on.
// The entity a CREATE_* payload introduces (its TempID) is not included.
func PayloadRefs(p OperationPayload) []string {
	switch v := p.(type) {
	case UpdateBarPayload:
		return []string{v.BarID}
	case CreateTicketPayload:
		return []string{v.Ticket.BarID}
	case PayTicketPayload:
		return []string{v.TicketID}
	case UpsertMappingPayload:
		return []string{v.BarID}
	case DeleteMappingPayload:
		return []string{v.BarID}
	case CreateSalePayload:
		if v.Sale.TicketID != "" {
			return []string{v.Sale.BarID, v.Sale.TicketID}
		}
		return []string{v.Sale.BarID}
	default:
		return nil
	}
}

// WaitsForTempEntity reports whether the payload references an entity that
// still has a temporary id, i.e. its creation has not been acknowledged yet.
func WaitsForTempEntity(p OperationPayload) bool {
	for _, ref := range PayloadRefs(p) {
		if IsTempID(ref) {
			return true
		}
	}
	return false
}
