package repository

import (
	"context"

	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, includeInactive bool) ([]*entity.Product, error)
}
