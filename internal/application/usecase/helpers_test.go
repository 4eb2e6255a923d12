package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davihchagas/feedback-system-project/internal/application/audit"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/infrastructure/memory"
	"github.com/davihchagas/feedback-system-project/pkg/ids"
)

var (
	t0        = time.Date(2025, 11, 12, 15, 30, 45, 0, time.UTC)
	adminUser = entity.Actor{UserID: "USR-admin", Name: "Ana", Email: "ana@x.com", Role: "ADMIN"}
)

type env struct {
	store  *memory.Store
	docs   *memory.Documents
	writer *audit.Writer
	gen    *ids.Generator
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{store: memory.NewStore(), docs: memory.NewDocuments(), gen: ids.New()}
	e.writer = audit.NewWriter(e.docs.AuditLogs(), nil, time.Second)
	require.NoError(t, e.store.Repos().Users.Create(context.Background(), &entity.User{
		ID: adminUser.UserID, Name: adminUser.Name, Email: adminUser.Email,
		Active: true, Role: entity.RoleAdmin, CreatedAt: t0, UpdatedAt: t0,
	}))
	return e
}

func (e *env) actions() []string {
	out := []string{}
	for _, entry := range e.docs.Entries() {
		out = append(out, entry.Action)
	}
	return out
}
