package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/application/usecase"
	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

type fakePDF struct{ rows int }

func (f *fakePDF) GenerateRankingPDF(rows []repository.ProductRankingRow, _ time.Time) ([]byte, error) {
	f.rows = len(rows)
	return []byte("%PDF-1.4"), nil
}

func seedCatalog(t *testing.T, e *env) {
	t.Helper()
	ctx := context.Background()
	r := e.store.Repos()
	require.NoError(t, r.Products.Create(ctx, &entity.Product{ID: "PRD-A", Name: "Café", Category: "bebidas", Active: true}))
	require.NoError(t, r.Products.Create(ctx, &entity.Product{ID: "PRD-B", Name: "Pan", Category: "panadería", Active: true}))
	require.NoError(t, r.Products.Create(ctx, &entity.Product{ID: "PRD-C", Name: "Té", Category: "bebidas", Active: true}))
	require.NoError(t, r.Users.Create(ctx, &entity.User{ID: "USR-c", Name: "Carla", Email: "c@x.com", Role: entity.RoleClient, Active: true}))
	require.NoError(t, r.Clients.Create(ctx, &entity.Client{ID: "CLI-c", UserID: "USR-c", Name: "Carla"}))
	for i, fb := range []struct {
		product string
		rating  int
		at      time.Time
	}{
		{"PRD-A", 5, t0},
		{"PRD-A", 4, t0.Add(24 * time.Hour)},
		{"PRD-B", 2, t0},
		{"PRD-B", 1, t0},
	} {
		require.NoError(t, r.Feedbacks.Insert(ctx, &entity.Feedback{
			ID: "FBK-" + string(rune('a'+i)), ClientID: "CLI-c", ProductID: fb.product,
			Rating: fb.rating, ShortComment: "x", CreatedAt: fb.at,
		}))
	}
}

func TestRanking_OrdenYClasificacion(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	uc := usecase.NewReportUseCase(e.store.Reports(), &fakePDF{}, time.Minute)

	items, err := uc.Ranking(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "PRD-A", items[0].ProductID)
	assert.Equal(t, 1, items[0].Position)
	assert.Equal(t, "4.5", items[0].AverageRating.String())
	assert.Equal(t, "high", items[0].Classification)
	assert.Equal(t, "PRD-B", items[1].ProductID)
	assert.Equal(t, "low", items[1].Classification)
	assert.Equal(t, int64(0), items[2].FeedbackCount)
	assert.Empty(t, items[2].Classification)
}

func TestRanking_Cacheado(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	pdf := &fakePDF{}
	uc := usecase.NewReportUseCase(e.store.Reports(), pdf, time.Minute)
	ctx := context.Background()

	_, err := uc.Ranking(ctx)
	require.NoError(t, err)
	require.NoError(t, e.store.Repos().Products.Create(ctx, &entity.Product{ID: "PRD-D", Name: "Leche", Category: "x", Active: true}))

	items, err := uc.Ranking(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3, "dentro del TTL se sirve la caché")

	out, err := uc.RankingPDF(ctx)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(out))
	assert.Equal(t, 3, pdf.rows)
}

func TestProductSatisfaction_Periodo(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	uc := usecase.NewReportUseCase(e.store.Reports(), &fakePDF{}, time.Minute)
	ctx := context.Background()

	out, err := uc.ProductSatisfaction(ctx, "PRD-A", dto.ReportPeriod{DateFrom: "2025-11-12", DateTo: "2025-11-12"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.FeedbackCount)
	assert.Equal(t, int64(1), out.Distribution["5"])
	assert.Equal(t, int64(0), out.Distribution["4"])
	assert.Equal(t, "high", out.Classification)

	_, err = uc.ProductSatisfaction(ctx, "PRD-nope", dto.ReportPeriod{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ProductSatisfaction(ctx, "PRD-A", dto.ReportPeriod{DateFrom: "2025-11-14", DateTo: "2025-11-12"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
