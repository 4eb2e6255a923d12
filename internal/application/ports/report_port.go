package ports

import (
	"time"

	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

// RankingPDFGenerator renderiza el ranking de productos como PDF.
type RankingPDFGenerator interface {
	GenerateRankingPDF(rows []repository.ProductRankingRow, generatedAt time.Time) ([]byte, error)
}
