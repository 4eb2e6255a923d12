package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/application/usecase"
	"github.com/davihchagas/feedback-system-project/internal/domain"
	domaudit "github.com/davihchagas/feedback-system-project/internal/domain/audit"
	"github.com/davihchagas/feedback-system-project/internal/infrastructure/memory"
)

func TestProductLifecycle(t *testing.T) {
	e := newEnv(t)
	uc := usecase.NewProductUseCase(e.store.Repos().Products, e.writer, e.gen)
	ctx := context.Background()

	p, err := uc.Create(ctx, adminUser, dto.CreateProductRequest{Name: " Café ", Category: "bebidas"})
	require.NoError(t, err)
	assert.Regexp(t, `^PRD-\d{8}-\d{6}-[0-9a-f]{4}$`, p.ID)
	assert.Equal(t, "Café", p.Name)
	assert.True(t, p.Active)

	off, err := uc.Deactivate(ctx, adminUser, p.ID)
	require.NoError(t, err)
	assert.False(t, off.Active)

	active, err := uc.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	on, err := uc.Reactivate(ctx, adminUser, p.ID)
	require.NoError(t, err)
	assert.True(t, on.Active)

	assert.Equal(t, []string{
		domaudit.ActionProductCreated,
		domaudit.ActionProductDeactivated,
		domaudit.ActionProductReactivated,
	}, e.actions())
	assert.Equal(t, "Café", e.docs.Entries()[1].Context[domaudit.CtxProductName])
}

func TestProduct_FalloDeAuditoriaSeExponeEnRespuesta(t *testing.T) {
	e := newEnv(t)
	uc := usecase.NewProductUseCase(e.store.Repos().Products, e.writer, e.gen)
	ctx := context.Background()
	e.docs.FailOn(memory.OpAuditAppend, errors.New("audit down"))

	p, err := uc.Create(ctx, adminUser, dto.CreateProductRequest{Name: "Café", Category: "bebidas"})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.LegAudit}, p.SecondaryFailures)

	stored, err := e.store.Repos().Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, stored, "el producto se conserva")

	e.docs.ClearFailures()
	off, err := uc.Deactivate(ctx, adminUser, p.ID)
	require.NoError(t, err)
	assert.Empty(t, off.SecondaryFailures)
	assert.Equal(t, []string{domaudit.ActionProductDeactivated}, e.actions())
}

func TestProduct_InexistenteEsNotFound(t *testing.T) {
	e := newEnv(t)
	uc := usecase.NewProductUseCase(e.store.Repos().Products, e.writer, e.gen)

	_, err := uc.Deactivate(context.Background(), adminUser, "PRD-nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Reactivate(context.Background(), adminUser, "PRD-nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, e.actions())
}

func TestProductCreate_Validacion(t *testing.T) {
	e := newEnv(t)
	uc := usecase.NewProductUseCase(e.store.Repos().Products, e.writer, e.gen)
	_, err := uc.Create(context.Background(), adminUser, dto.CreateProductRequest{Name: " ", Category: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
