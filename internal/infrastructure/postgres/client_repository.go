package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un cliente. Un segundo cliente para el mismo usuario viola clients_user_id_key.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, user_id, name, document, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, c.ID, c.UserID, c.Name, c.Document, c.CreatedAt)
	return mapWriteError("insert client", err)
}

// GetByUserID obtiene el cliente de un usuario.
func (r *ClientRepo) GetByUserID(ctx context.Context, userID string) (*entity.Client, error) {
	query := `SELECT id, user_id, name, document, created_at FROM clients WHERE user_id = $1`
	var c entity.Client
	err := r.q.QueryRow(ctx, query, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Document, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapReadError("get client by user", err)
	}
	return &c, nil
}

// Update sincroniza nombre y documento.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	tag, err := r.q.Exec(ctx, `UPDATE clients SET name = $2, document = $3 WHERE id = $1`, c.ID, c.Name, c.Document)
	if err != nil {
		return mapWriteError("update client", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
