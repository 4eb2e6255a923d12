package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/application/usecase"
	"github.com/davihchagas/feedback-system-project/internal/domain"
	domaudit "github.com/davihchagas/feedback-system-project/internal/domain/audit"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
)

func seedLogs(t *testing.T, e *env) {
	t.Helper()
	repo := e.docs.AuditLogs()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, entity.AuditLogEntry{
			When:    t0.Add(time.Duration(i) * time.Minute),
			Action:  domaudit.ActionProductCreated,
			Actor:   &adminUser,
			Context: map[string]any{domaudit.CtxProductName: fmt.Sprintf("P%d", i)},
		}))
	}
	require.NoError(t, repo.Append(ctx, entity.AuditLogEntry{
		When: t0.Add(10 * time.Minute), Action: domaudit.ActionHTTPAccess, Method: "GET", Path: "/api/products",
	}))
}

func TestListHuman_PaginadoYMasRecientePrimero(t *testing.T) {
	e := newEnv(t)
	seedLogs(t, e)
	uc := usecase.NewLogUseCase(e.docs.AuditLogs())

	page, err := uc.ListHuman(context.Background(), dto.LogQuery{PageRequest: dto.PageRequest{Page: 1, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total, "los accesos quedan fuera por defecto")
	require.Len(t, page.Items, 2)
	assert.Contains(t, page.Items[0].Message, "P4")
	assert.Contains(t, page.Items[1].Message, "P3")
	assert.Equal(t, "2025-11-12T15:34:45Z", page.Items[0].WhenISO)

	all, err := uc.ListHuman(context.Background(), dto.LogQuery{All: true})
	require.NoError(t, err)
	assert.Equal(t, int64(6), all.Total)
	assert.Equal(t, 20, all.Limit)
	assert.Contains(t, all.Items[0].Message, "accedió a GET /api/products")
}

func TestListRaw_FiltrosYLimite(t *testing.T) {
	e := newEnv(t)
	seedLogs(t, e)
	uc := usecase.NewLogUseCase(e.docs.AuditLogs())

	page, err := uc.ListRaw(context.Background(), dto.LogQuery{Path: "/api/products", PageRequest: dto.PageRequest{Limit: 1000}})
	require.NoError(t, err)
	assert.Equal(t, dto.MaxPageLimit, page.Limit)
	require.Len(t, page.Items, 1)
	assert.Equal(t, domaudit.ActionHTTPAccess, page.Items[0].Action)

	byUser, err := uc.ListRaw(context.Background(), dto.LogQuery{UserID: adminUser.UserID, Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), byUser.Total)

	_, err = uc.ListRaw(context.Background(), dto.LogQuery{DateFrom: "12/11/2025"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListHuman_FiltroPorFecha(t *testing.T) {
	e := newEnv(t)
	seedLogs(t, e)
	uc := usecase.NewLogUseCase(e.docs.AuditLogs())

	page, err := uc.ListHuman(context.Background(), dto.LogQuery{DateFrom: "2025-11-13"})
	require.NoError(t, err)
	assert.Zero(t, page.Total)

	page, err = uc.ListHuman(context.Background(), dto.LogQuery{DateFrom: "2025-11-12", DateTo: "2025-11-12"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
}
