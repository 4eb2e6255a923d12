package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/infrastructure/memory"
)

func TestClientCreate_UsuarioConClienteEsIDDuplicado(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repos()
	ctx := context.Background()
	now := time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Users.Create(ctx, &entity.User{
		ID: "USR-1", Name: "Carla", Email: "carla@x.com", Active: true,
		Role: entity.RoleClient, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repos.Clients.Create(ctx, &entity.Client{ID: "CLI-1", UserID: "USR-1", Name: "Carla", CreatedAt: now}))

	err := repos.Clients.Create(ctx, &entity.Client{ID: "CLI-2", UserID: "USR-1", Name: "Carla", CreatedAt: now})
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
	assert.Equal(t, 1, store.ClientCount())
}

func TestClientCreate_UsuarioInexistenteViolaIntegridad(t *testing.T) {
	store := memory.NewStore()
	err := store.Repos().Clients.Create(context.Background(), &entity.Client{ID: "CLI-1", UserID: "USR-x"})
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
}
