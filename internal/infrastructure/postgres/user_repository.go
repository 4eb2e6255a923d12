package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, password_hash, active, role, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, active, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Active, string(user.Role),
		user.CreatedAt, user.UpdatedAt,
	)
	return mapWriteError("insert user", err)
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) LIMIT 1`, email)
}

func (r *UserRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapReadError(op, err)
	}
	return u, nil
}

// Update actualiza datos, rol, estado y hash de un usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, active = $5, role = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Active, string(user.Role), user.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa o desactiva un usuario (soft delete).
func (r *UserRepo) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return mapWriteError("set user active", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista usuarios con su cliente (LEFT JOIN); role nil = todos.
func (r *UserRepo) List(ctx context.Context, role *entity.Role) ([]*entity.UserWithClient, error) {
	query := `
		SELECT u.id, u.name, u.email, u.password_hash, u.active, u.role, u.created_at, u.updated_at,
		       c.id, c.document
		FROM users u
		LEFT JOIN clients c ON c.user_id = u.id
		WHERE ($1::text IS NULL OR u.role = $1)
		ORDER BY u.name`
	var roleArg *string
	if role != nil {
		s := string(*role)
		roleArg = &s
	}
	rows, err := r.q.Query(ctx, query, roleArg)
	if err != nil {
		return nil, mapReadError("list users", err)
	}
	defer rows.Close()

	var list []*entity.UserWithClient
	for rows.Next() {
		var (
			row  entity.UserWithClient
			role string
		)
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Email, &row.PasswordHash, &row.Active, &role, &row.CreatedAt, &row.UpdatedAt,
			&row.ClientID, &row.Document,
		); err != nil {
			return nil, mapReadError("scan user", err)
		}
		row.Role = entity.Role(role)
		list = append(list, &row)
	}
	return list, mapReadError("list users", rows.Err())
}

func scanUser(row pgxScanner) (*entity.User, error) {
	var (
		u    entity.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Active, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}
