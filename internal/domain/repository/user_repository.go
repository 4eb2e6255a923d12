package repository

import (
	"context"

	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas devuelven (nil, nil) cuando el registro no existe; las escrituras por ID
// devuelven domain.ErrNotFound si no afectan filas.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SetActive(ctx context.Context, id string, active bool) error
	// List lista usuarios con su cliente (si existe); role nil = todos.
	List(ctx context.Context, role *entity.Role) ([]*entity.UserWithClient, error)
}
