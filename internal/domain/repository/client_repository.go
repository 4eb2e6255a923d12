package repository

import (
	"context"

	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByUserID(ctx context.Context, userID string) (*entity.Client, error)
	// Update sincroniza nombre y documento del cliente del usuario.
	Update(ctx context.Context, client *entity.Client) error
}
