package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/application/usecase"
	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
)

func newQueryUC(e *env) *usecase.FeedbackQueryUseCase {
	r := e.store.Repos()
	return usecase.NewFeedbackQueryUseCase(r.Feedbacks, r.Responses, e.docs.FeedbackTexts())
}

func TestListDetailed_FiltrosYClasificacion(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	uc := newQueryUC(e)
	ctx := context.Background()

	rows, err := uc.ListDetailed(ctx, dto.FeedbackQuery{ProductID: "PRD-B"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "Pan", r.ProductName)
		assert.Equal(t, "Carla", r.ClientName)
		assert.Equal(t, "low", r.Classification)
	}

	rows, err = uc.ListDetailed(ctx, dto.FeedbackQuery{RatingMin: 4})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = uc.ListDetailed(ctx, dto.FeedbackQuery{DateFrom: "2025-11-13"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].Rating)

	_, err = uc.ListDetailed(ctx, dto.FeedbackQuery{RatingMin: 5, RatingMax: 2})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.ListDetailed(ctx, dto.FeedbackQuery{RatingMax: 9})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetText_AusenteEsNotFound(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	uc := newQueryUC(e)
	ctx := context.Background()

	_, err := uc.GetText(ctx, "FBK-a")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, e.docs.FeedbackTexts().Upsert(ctx, &entity.FeedbackText{FeedbackID: "FBK-a", LongComment: "largo"}))
	out, err := uc.GetText(ctx, "FBK-a")
	require.NoError(t, err)
	assert.Equal(t, "largo", out.LongComment)
	assert.NotNil(t, out.Tags)
}

func TestListResponses(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e)
	uc := newQueryUC(e)
	ctx := context.Background()

	_, err := uc.ListResponses(ctx, "FBK-nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, e.store.Repos().Responses.Create(ctx, &entity.Response{FeedbackID: "FBK-a", AnalystID: adminUser.UserID, ResponseText: "gracias"}))
	out, err := uc.ListResponses(ctx, "FBK-a")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Ana", out[0].AnalystName)
}
