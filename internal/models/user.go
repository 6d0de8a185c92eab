package models

import "time"

// Role роль пользователя в заведении
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleServer  Role = "server"
)

// User представляет пользователя в системе
type User struct {
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"` // PasswordHash bcrypt хеш пароля, только на сервере
	Role         Role      `json:"role"`
}

// Session данные текущей сессии на клиенте
type Session struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at"`
}

// Expired reports whether the access token is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != 0 && now.Unix() >= s.ExpiresAt
}
