package entity

import (
	"strings"
	"time"
)

// Role conjunto cerrado de perfiles.
type Role string

// Roles válidos para User.
const (
	RoleAdmin   Role = "ADMIN"
	RoleAnalyst Role = "ANALYST"
	RoleClient  Role = "CLIENT"
)

// Valid indica si r pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RoleClient:
		return true
	}
	return false
}

// ParseRole normaliza mayúsculas; devuelve false si el rol no existe.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// User representa un usuario del sistema. Nunca se borra: se desactiva con Active=false.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash
	Active       bool
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserWithClient fila de listado administrativo (usuario + cliente si existe).
type UserWithClient struct {
	User
	ClientID *string
	Document *string
}
