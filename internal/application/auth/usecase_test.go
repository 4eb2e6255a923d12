package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/davihchagas/feedback-system-project/internal/application/auth"
	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/infrastructure/memory"
	"github.com/davihchagas/feedback-system-project/pkg/jwt"
)

const secret = "test-secret"

func seedUser(t *testing.T, store *memory.Store, email string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, store.Repos().Users.Create(context.Background(), &entity.User{
		ID: "USR-" + email, Name: "Ana", Email: email, PasswordHash: string(hash),
		Active: active, Role: entity.RoleAnalyst, CreatedAt: now, UpdatedAt: now,
	}))
}

func newUseCase(store *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Repos().Users, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
}

func TestLogin_CredencialesValidas(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "ana@x.com", true)

	out, err := newUseCase(store).Login(context.Background(), dto.LoginRequest{Email: " ANA@x.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "ANALYST", out.User.Role)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "USR-ana@x.com", claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "ana@x.com", claims.Email)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "ana@x.com", true)

	_, err := newUseCase(store).Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = newUseCase(store).Login(context.Background(), dto.LoginRequest{Email: "otro@x.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "ana@x.com", false)

	_, err := newUseCase(store).Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}
