package dto

import (
	"time"

	"github.com/davihchagas/feedback-system-project/internal/domain/audit"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
)

// LogQuery filtros de los listados de auditoría (query string).
type LogQuery struct {
	PageRequest
	UserID   string `query:"userId"`
	Role     string `query:"role" validate:"omitempty,oneof=ADMIN ANALYST CLIENT admin analyst client"`
	Path     string `query:"path"`
	Action   string `query:"action"`
	DateFrom string `query:"dateFrom" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `query:"dateTo" validate:"omitempty,datetime=2006-01-02"`
	All      bool   `query:"all"`
}

// RawLogPage página de registros crudos.
type RawLogPage struct {
	PageResponse
	Items []entity.AuditLogEntry `json:"items"`
}

// HumanLogPage página de registros legibles, de más reciente a más antiguo.
type HumanLogPage struct {
	PageResponse
	Items []audit.HumanEntry `json:"items"`
}

// ParseDay interpreta YYYY-MM-DD en UTC; cadena vacía devuelve nil.
func ParseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// EndOfDay devuelve el último instante del día de t (filtros "hasta" inclusivos).
func EndOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	end := t.Add(24*time.Hour - time.Nanosecond)
	return &end
}
