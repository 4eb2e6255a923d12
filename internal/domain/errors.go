package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation           = errors.New("entrada inválida")
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrReferentialIntegrity = errors.New("violación de integridad referencial")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInactiveAccount      = errors.New("cuenta inactiva")
	ErrStoreUnavailable     = errors.New("almacén no disponible")
	ErrDuplicateID          = errors.New("identificador duplicado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrConflict             = errors.New("conflicto con el estado actual")
)

// ValidationError describe una entrada malformada o fuera de rango. Es terminal:
// se devuelve antes de intentar cualquier escritura.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye el error para field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap permite errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error { return ErrValidation }

// Tramos de escritura secundaria.
const (
	LegFeedbackText = "feedback_text"
	LegAudit        = "audit"
	LegAccessLog    = "access_log"
)

// SecondaryWriteError indica que una escritura en el almacén documental o en la auditoría
// falló después de que la escritura relacional primaria ya estaba confirmada.
// Nunca revierte el efecto primario; se reporta a operación y opcionalmente al llamador.
type SecondaryWriteError struct {
	Leg      string // feedback_text | audit | access_log
	Action   string
	EntityID string
	Err      error
}

func (e *SecondaryWriteError) Error() string {
	return fmt.Sprintf("escritura secundaria %s (%s %s): %v", e.Leg, e.Action, e.EntityID, e.Err)
}

func (e *SecondaryWriteError) Unwrap() error { return e.Err }

// AsSecondary devuelve el SecondaryWriteError contenido en err, si lo hay.
func AsSecondary(err error) (*SecondaryWriteError, bool) {
	var swe *SecondaryWriteError
	if errors.As(err, &swe) {
		return swe, true
	}
	return nil, false
}
