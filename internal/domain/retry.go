package domain

import (
	"context"
	"errors"
	"fmt"
)

// DefaultIDAttempts intentos por defecto ante colisión de ID generado.
const DefaultIDAttempts = 3

// RetryOnDuplicateID repite fn mientras el almacén rechace un ID duplicado, hasta attempts
// veces (mínimo 1). onRetry, si no es nil, recibe el número de intento que colisionó.
// Cualquier otro error, o nil, termina el ciclo.
func RetryOnDuplicateID(ctx context.Context, attempts int, fn func() error, onRetry func(attempt int)) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); !errors.Is(err, ErrDuplicateID) {
			return err
		}
		if onRetry != nil {
			onRetry(attempt)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("agotados %d intentos de ID: %w", attempts, err)
}
