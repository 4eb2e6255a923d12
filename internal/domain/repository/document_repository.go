package repository

import (
	"context"
	"time"

	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
)

// FeedbackTextRepository puerto del almacén documental para textos largos.
type FeedbackTextRepository interface {
	// Upsert es idempotente por FeedbackID: los campos de contenido se sobrescriben
	// (última escritura gana) y CreatedAt solo se fija en la primera inserción.
	Upsert(ctx context.Context, text *entity.FeedbackText) error
	GetByFeedbackID(ctx context.Context, feedbackID string) (*entity.FeedbackText, error)
}

// AuditLogFilter filtros de consulta de la auditoría.
type AuditLogFilter struct {
	UserID   string
	Role     string
	Path     string
	Actions  []string
	DateFrom *time.Time
	DateTo   *time.Time
}

// Page paginación 1-based con límite explícito.
type Page struct {
	Number int
	Limit  int
}

// Skip devuelve el desplazamiento equivalente.
func (p Page) Skip() int64 {
	if p.Number < 1 {
		return 0
	}
	return int64(p.Number-1) * int64(p.Limit)
}

// AuditLogRepository puerto append-only de la auditoría. No hay Update ni Delete.
type AuditLogRepository interface {
	Append(ctx context.Context, entry entity.AuditLogEntry) error
	// Query devuelve la página pedida ordenada de más reciente a más antigua y el total.
	Query(ctx context.Context, filter AuditLogFilter, page Page) ([]entity.AuditLogEntry, int64, error)
}
