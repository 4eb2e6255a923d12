package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/audit"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
	"github.com/davihchagas/feedback-system-project/pkg/ids"
)

// ProductUseCase alta, inactivación y reactivación de productos. Nunca se borran.
type ProductUseCase struct {
	repo  repository.ProductRepository
	audit AuditRecorder
	ids   IDGenerator
	now   func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, recorder AuditRecorder, gen IDGenerator) *ProductUseCase {
	return &ProductUseCase{repo: repo, audit: recorder, ids: gen, now: time.Now}
}

// Create crea un producto activo con ID PRD-.
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	if category == "" {
		return nil, domain.NewValidationError("category", "es obligatoria")
	}

	var product *entity.Product
	err := domain.RetryOnDuplicateID(ctx, domain.DefaultIDAttempts, func() error {
		id, err := uc.ids.Generate(ids.KindProduct)
		if err != nil {
			return err
		}
		now := uc.now().UTC()
		product = &entity.Product{ID: id, Name: name, Category: category, Active: true, CreatedAt: now, UpdatedAt: now}
		return uc.repo.Create(ctx, product)
	}, nil)
	if err != nil {
		return nil, err
	}

	out := toProductResponse(product)
	out.SecondaryFailures = uc.record(ctx, actor, audit.ActionProductCreated, product)
	return out, nil
}

// Deactivate marca el producto como inactivo; deja de aceptar feedback.
func (uc *ProductUseCase) Deactivate(ctx context.Context, actor entity.Actor, id string) (*dto.ProductResponse, error) {
	return uc.setActive(ctx, actor, id, false)
}

// Reactivate vuelve a activar un producto inactivo.
func (uc *ProductUseCase) Reactivate(ctx context.Context, actor entity.Actor, id string) (*dto.ProductResponse, error) {
	return uc.setActive(ctx, actor, id, true)
}

func (uc *ProductUseCase) setActive(ctx context.Context, actor entity.Actor, id string, active bool) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	product.Active = active

	action := audit.ActionProductDeactivated
	if active {
		action = audit.ActionProductReactivated
	}
	out := toProductResponse(product)
	out.SecondaryFailures = uc.record(ctx, actor, action, product)
	return out, nil
}

// List devuelve los productos activos; includeInactive agrega los inactivos.
func (uc *ProductUseCase) List(ctx context.Context, includeInactive bool) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

func (uc *ProductUseCase) record(ctx context.Context, actor entity.Actor, action string, p *entity.Product) []string {
	return secondaryFailures(uc.audit.Record(ctx, entity.AuditLogEntry{
		Action: action,
		Actor:  &actor,
		Entity: &entity.EntityRef{Type: audit.EntityProduct, ID: p.ID},
		Context: map[string]any{
			audit.CtxProductID:   p.ID,
			audit.CtxProductName: p.Name,
			"category":           p.Category,
		},
	}))
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
