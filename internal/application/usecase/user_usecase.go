package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/audit"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
	"github.com/davihchagas/feedback-system-project/pkg/ids"
)

// UserUseCase administración de usuarios. Las escrituras siguen el orden
// validar → transacción relacional (usuario + cliente) → auditoría.
type UserUseCase struct {
	tx    repository.TxRunner
	users repository.UserRepository
	audit AuditRecorder
	ids   IDGenerator
	now   func() time.Time
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(tx repository.TxRunner, users repository.UserRepository, recorder AuditRecorder, gen IDGenerator) *UserUseCase {
	return &UserUseCase{tx: tx, users: users, audit: recorder, ids: gen, now: time.Now}
}

// Create crea un usuario y, si es CLIENT, su fila de cliente en la misma transacción.
func (uc *UserUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.NewValidationError("role", "debe ser ADMIN, ANALYST o CLIENT")
	}
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	if email == "" {
		return nil, domain.NewValidationError("email", "es obligatorio")
	}
	if len(in.Password) < 8 {
		return nil, domain.NewValidationError("password", "mínimo 8 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var (
		user   *entity.User
		client *entity.Client
	)
	err = domain.RetryOnDuplicateID(ctx, domain.DefaultIDAttempts, func() error {
		return uc.tx.Run(ctx, func(r repository.Repos) error {
			existing, err := r.Users.GetByEmail(ctx, email)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrEmailAlreadyExists
			}
			id, err := uc.ids.Generate(ids.KindUser)
			if err != nil {
				return err
			}
			now := uc.now().UTC()
			user = &entity.User{
				ID: id, Name: name, Email: email, PasswordHash: string(hash),
				Active: true, Role: role, CreatedAt: now, UpdatedAt: now,
			}
			if err := r.Users.Create(ctx, user); err != nil {
				return err
			}
			client = nil
			if role != entity.RoleClient {
				return nil
			}
			clientID, err := uc.ids.Generate(ids.KindClient)
			if err != nil {
				return err
			}
			client = &entity.Client{ID: clientID, UserID: id, Name: name, Document: trimmed(in.Document), CreatedAt: now}
			return r.Clients.Create(ctx, client)
		})
	}, nil)
	if err != nil {
		return nil, err
	}

	secErr := uc.audit.Record(ctx, entity.AuditLogEntry{
		Action: audit.ActionUserCreated,
		Actor:  &actor,
		Entity: &entity.EntityRef{Type: audit.EntityUser, ID: user.ID},
		Context: map[string]any{
			audit.CtxTargetUserID:   user.ID,
			audit.CtxTargetUserName: user.Name,
			audit.CtxTargetEmail:    user.Email,
			audit.CtxTargetRole:     string(user.Role),
		},
	})
	out := toUserResponse(user, client)
	out.SecondaryFailures = secondaryFailures(secErr)
	return out, nil
}

// Update aplica una actualización parcial y sincroniza la fila de cliente.
// Si el usuario pasa a ser CLIENT y no tiene cliente, se crea.
func (uc *UserUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var newRole *entity.Role
	if in.Role != nil {
		role, ok := entity.ParseRole(*in.Role)
		if !ok {
			return nil, domain.NewValidationError("role", "debe ser ADMIN, ANALYST o CLIENT")
		}
		newRole = &role
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.NewValidationError("name", "no puede estar vacío")
	}
	var hash string
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, domain.NewValidationError("password", "mínimo 8 caracteres")
		}
		b, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = string(b)
	}

	var (
		before, after map[string]any
		user          *entity.User
		client        *entity.Client
	)
	err := domain.RetryOnDuplicateID(ctx, domain.DefaultIDAttempts, func() error {
		return uc.tx.Run(ctx, func(r repository.Repos) error {
			u, err := r.Users.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if u == nil {
				return domain.ErrNotFound
			}
			before = snapshot(u)
			if in.Name != nil {
				u.Name = strings.TrimSpace(*in.Name)
			}
			if in.Email != nil {
				u.Email = strings.ToLower(strings.TrimSpace(*in.Email))
			}
			if newRole != nil {
				u.Role = *newRole
			}
			if in.Active != nil {
				u.Active = *in.Active
			}
			if hash != "" {
				u.PasswordHash = hash
			}
			u.UpdatedAt = uc.now().UTC()
			if err := r.Users.Update(ctx, u); err != nil {
				return err
			}
			user, after = u, snapshot(u)

			client, err = r.Clients.GetByUserID(ctx, u.ID)
			if err != nil {
				return err
			}
			switch {
			case client != nil:
				client.Name = u.Name
				if in.Document != nil {
					client.Document = trimmed(in.Document)
				}
				return r.Clients.Update(ctx, client)
			case u.Role == entity.RoleClient:
				clientID, err := uc.ids.Generate(ids.KindClient)
				if err != nil {
					return err
				}
				client = &entity.Client{ID: clientID, UserID: u.ID, Name: u.Name, Document: trimmed(in.Document), CreatedAt: u.UpdatedAt}
				return r.Clients.Create(ctx, client)
			}
			return nil
		})
	}, nil)
	if err != nil {
		return nil, err
	}

	secErr := uc.audit.Record(ctx, entity.AuditLogEntry{
		Action: audit.ActionUserUpdated,
		Actor:  &actor,
		Entity: &entity.EntityRef{Type: audit.EntityUser, ID: user.ID},
		Context: map[string]any{
			audit.CtxTargetUserID:   user.ID,
			audit.CtxTargetUserName: user.Name,
			audit.CtxBefore:         before,
			audit.CtxAfter:          after,
		},
	})
	out := toUserResponse(user, client)
	out.SecondaryFailures = secondaryFailures(secErr)
	return out, nil
}

// Deactivate desactiva (soft delete) un usuario. Un admin no puede desactivarse a sí mismo.
func (uc *UserUseCase) Deactivate(ctx context.Context, actor entity.Actor, id string) error {
	if id == actor.UserID {
		return domain.NewValidationError("id", "no se puede desactivar la propia cuenta")
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	if err := uc.users.SetActive(ctx, id, false); err != nil {
		return err
	}
	// Responde 204 sin cuerpo: un fallo de auditoría queda solo en el sink.
	_ = uc.audit.Record(ctx, entity.AuditLogEntry{
		Action: audit.ActionUserDeactivated,
		Actor:  &actor,
		Entity: &entity.EntityRef{Type: audit.EntityUser, ID: id},
		Context: map[string]any{
			audit.CtxTargetUserID:   id,
			audit.CtxTargetUserName: u.Name,
		},
	})
	return nil
}

// List lista usuarios, opcionalmente filtrados por rol.
func (uc *UserUseCase) List(ctx context.Context, role string) ([]dto.UserResponse, error) {
	var filter *entity.Role
	if role != "" {
		r, ok := entity.ParseRole(role)
		if !ok {
			return nil, domain.NewValidationError("role", "debe ser ADMIN, ANALYST o CLIENT")
		}
		filter = &r
	}
	rows, err := uc.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(rows))
	for _, row := range rows {
		resp := toUserResponse(&row.User, nil)
		resp.ClientID = row.ClientID
		resp.Document = row.Document
		out = append(out, *resp)
	}
	return out, nil
}

// BootstrapAdmin crea el administrador inicial si el email aún no existe.
// Devuelve true si lo creó.
func (uc *UserUseCase) BootstrapAdmin(ctx context.Context, name, email, password string) (bool, error) {
	existing, err := uc.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if name == "" {
		name = "Administrador"
	}
	_, err = uc.Create(ctx, SystemActor, dto.CreateUserRequest{
		Name: name, Email: email, Password: password, Role: string(entity.RoleAdmin),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func snapshot(u *entity.User) map[string]any {
	return map[string]any{
		"name":   u.Name,
		"email":  u.Email,
		"role":   string(u.Role),
		"active": u.Active,
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func toUserResponse(u *entity.User, c *entity.Client) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if c != nil {
		id := c.ID
		out.ClientID = &id
		out.Document = c.Document
	}
	return out
}
