package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido es un no-op tras un Commit exitoso; la conexión vuelve al pool en todos los casos.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %v", domain.ErrStoreUnavailable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := repository.Repos{
		Users:     NewUserRepository(tx),
		Clients:   NewClientRepository(tx),
		Products:  NewProductRepository(tx),
		Feedbacks: NewFeedbackRepository(tx),
		Responses: NewResponseRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapWriteError("commit transaction", err)
	}
	return nil
}

// Repos devuelve los repositorios sobre el pool (fuera de transacción).
func Repos(pool *pgxpool.Pool) repository.Repos {
	return repository.Repos{
		Users:     NewUserRepository(pool),
		Clients:   NewClientRepository(pool),
		Products:  NewProductRepository(pool),
		Feedbacks: NewFeedbackRepository(pool),
		Responses: NewResponseRepository(pool),
	}
}
