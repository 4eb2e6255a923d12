package repository

import (
	"context"
	"time"

	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
)

// FeedbackFilter filtros opcionales de la vista detallada.
type FeedbackFilter struct {
	ProductID string
	ClientID  string
	DateFrom  *time.Time
	DateTo    *time.Time
	RatingMin *int
	RatingMax *int
}

// FeedbackRepository define el puerto de persistencia para Feedback.
type FeedbackRepository interface {
	// Insert es el procedimiento de inserción: valida en el propio almacén que el producto
	// exista y esté activo, la nota esté en rango y el comentario no esté vacío.
	// Devuelve domain.ErrDuplicateID ante colisión de ID y domain.ErrReferentialIntegrity
	// ante violación de clave foránea.
	Insert(ctx context.Context, feedback *entity.Feedback) error
	GetByID(ctx context.Context, id string) (*entity.Feedback, error)
	ListDetailed(ctx context.Context, filter FeedbackFilter) ([]*entity.FeedbackDetail, error)
}

// ResponseRepository define el puerto de persistencia para Response (append-only).
type ResponseRepository interface {
	Create(ctx context.Context, response *entity.Response) error
	ListByFeedback(ctx context.Context, feedbackID string) ([]*entity.Response, error)
}
