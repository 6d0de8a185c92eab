package models

import (
	"strings"
	"time"
)

// TempIDPrefix помечает идентификаторы, выданные клиентом до подтверждения сервером
const TempIDPrefix = "temp_"

// IsTempID reports whether id was synthesized locally for an unconfirmed record.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// Bar представляет заведение (бар/ресторан)
type Bar struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	OwnerID     string    `json:"owner_id"`
	IsActive    bool      `json:"is_active"`
	Unconfirmed bool      `json:"unconfirmed,omitempty"` // Unconfirmed локальная версия, ещё не подтверждённая сервером
}

// Valid is the structural predicate applied to cached bar records.
func (b Bar) Valid() bool {
	return strings.TrimSpace(b.ID) != "" && strings.TrimSpace(b.Name) != ""
}

// BarPatch описывает частичное обновление бара.
// nil поле означает "не менять" - при наложении оно не стирает существующее значение.
type BarPatch struct {
	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p BarPatch) IsEmpty() bool {
	return p.Name == nil && p.Address == nil && p.Phone == nil && p.IsActive == nil
}

// Apply returns a copy of bar with every non-nil patch field overlaid.
func (p BarPatch) Apply(bar Bar) Bar {
	if p.Name != nil {
		bar.Name = *p.Name
	}
	if p.Address != nil {
		bar.Address = *p.Address
	}
	if p.Phone != nil {
		bar.Phone = *p.Phone
	}
	if p.IsActive != nil {
		bar.IsActive = *p.IsActive
	}
	return bar
}

// Merge folds a later patch on top of p. Fields set in next win.
func (p BarPatch) Merge(next BarPatch) BarPatch {
	if next.Name != nil {
		p.Name = next.Name
	}
	if next.Address != nil {
		p.Address = next.Address
	}
	if next.Phone != nil {
		p.Phone = next.Phone
	}
	if next.IsActive != nil {
		p.IsActive = next.IsActive
	}
	return p
}

// NewBar описывает данные для создания бара
type NewBar struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// StringPtr returns a pointer to s. Handy for building patches.
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
