package ports

import (
	"context"
	"time"
)

// IdempotencyPending valor almacenado mientras la primera petición con la clave sigue en curso.
const IdempotencyPending = "pending"

// IdempotencyStore reserva claves de idempotencia para create-feedback.
type IdempotencyStore interface {
	// Reserve intenta reservar key por ttl. Devuelve "" si la reserva es nueva,
	// IdempotencyPending si otra petición la tiene en curso, o el ID ya asociado.
	Reserve(ctx context.Context, key string, ttl time.Duration) (string, error)
	// Complete asocia el ID definitivo a key.
	Complete(ctx context.Context, key, id string, ttl time.Duration) error
	// Release libera key tras un fallo de la escritura primaria.
	Release(ctx context.Context, key string) error
}
