package models

import (
	"strings"
	"time"
)

// ServerMapping связывает имя официанта (как его вводят на кассе) с пользователем
type ServerMapping struct {
	CreatedAt  time.Time `json:"created_at"`
	ID         string    `json:"id"`
	BarID      string    `json:"bar_id"`
	ServerName string    `json:"server_name"`
	UserID     string    `json:"user_id"`
}

// Valid is the structural predicate applied to cached mapping records.
func (m ServerMapping) Valid() bool {
	return strings.TrimSpace(m.BarID) != "" &&
		strings.TrimSpace(m.ServerName) != "" &&
		strings.TrimSpace(m.UserID) != ""
}

// Matches reports whether the mapping is for serverName.
// Comparison ignores case and surrounding whitespace.
func (m ServerMapping) Matches(serverName string) bool {
	return strings.EqualFold(strings.TrimSpace(m.ServerName), strings.TrimSpace(serverName))
}
