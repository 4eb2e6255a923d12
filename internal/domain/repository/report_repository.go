package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductRankingRow fila del ranking de productos por satisfacción.
type ProductRankingRow struct {
	ProductID     string
	ProductName   string
	Category      string
	Active        bool
	FeedbackCount int64
	AverageRating decimal.Decimal
}

// ProductSatisfaction estadísticas de un producto en un período.
type ProductSatisfaction struct {
	ProductID     string
	ProductName   string
	FeedbackCount int64
	AverageRating decimal.Decimal
	// Distribution cantidad de feedbacks por nota (1..5).
	Distribution map[int]int64
}

// ReportRepository consultas de solo lectura para reportes.
type ReportRepository interface {
	ProductRanking(ctx context.Context) ([]ProductRankingRow, error)
	ProductSatisfaction(ctx context.Context, productID string, from, to *time.Time) (*ProductSatisfaction, error)
}
