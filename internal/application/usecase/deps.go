package usecase

import (
	"context"

	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/pkg/ids"
)

// IDGenerator genera IDs legibles por tipo de entidad.
type IDGenerator interface {
	Generate(kind ids.Kind) (string, error)
}

// AuditRecorder escritura de auditoría posterior al commit. El fallo ya llega reportado
// al sink; los casos de uso lo exponen en SecondaryFailures sin convertirlo en error.
type AuditRecorder interface {
	Record(ctx context.Context, entry entity.AuditLogEntry) *domain.SecondaryWriteError
}

// secondaryFailures tramos fallidos para la respuesta; nil si la escritura fue bien.
func secondaryFailures(err *domain.SecondaryWriteError) []string {
	if err == nil {
		return nil
	}
	return []string{err.Leg}
}

// SystemActor actor de las acciones ejecutadas por el propio proceso (bootstrap).
var SystemActor = entity.Actor{UserID: "system", Name: "Sistema", Role: "SYSTEM"}
