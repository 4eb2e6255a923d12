package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

func TestGenerateRankingPDF(t *testing.T) {
	rows := []repository.ProductRankingRow{
		{ProductID: "PRD-A", ProductName: "Café", Category: "Bebidas", Active: true, FeedbackCount: 3, AverageRating: decimal.RequireFromString("4.67")},
		{ProductID: "PRD-B", ProductName: "Té", Category: "Bebidas", Active: false, FeedbackCount: 0, AverageRating: decimal.Zero},
	}

	out, err := NewMarotoPDFGenerator().GenerateRankingPDF(rows, time.Date(2025, 11, 12, 15, 30, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateRankingPDF_SinFilas(t *testing.T) {
	out, err := NewMarotoPDFGenerator().GenerateRankingPDF(nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestLevelLabel(t *testing.T) {
	assert.Equal(t, "Alta", levelLabel(repository.ProductRankingRow{FeedbackCount: 2, AverageRating: decimal.RequireFromString("4.5")}))
	assert.Equal(t, "Media", levelLabel(repository.ProductRankingRow{FeedbackCount: 2, AverageRating: decimal.RequireFromString("3.49")}))
	assert.Equal(t, "Baja", levelLabel(repository.ProductRankingRow{FeedbackCount: 1, AverageRating: decimal.NewFromInt(1)}))
	assert.Equal(t, "N/D", levelLabel(repository.ProductRankingRow{}))
}
