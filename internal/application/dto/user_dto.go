package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// Document solo aplica a usuarios CLIENT.
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"required,oneof=ADMIN ANALYST CLIENT admin analyst client"`
	Document *string `json:"document" validate:"omitempty,max=40"`
}

// UpdateUserRequest actualización parcial: los campos nil se conservan.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role" validate:"omitempty,oneof=ADMIN ANALYST CLIENT admin analyst client"`
	Active   *bool   `json:"active"`
	Document *string `json:"document" validate:"omitempty,max=40"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	ClientID  *string   `json:"clientId,omitempty"`
	Document  *string   `json:"document,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// SecondaryFailures tramos posteriores al commit que fallaron (p. ej. "audit").
	SecondaryFailures []string `json:"secondaryFailures,omitempty"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionUser datos del usuario devueltos con el token.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}
