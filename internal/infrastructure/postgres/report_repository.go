package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación de solo lectura.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// ProductRanking media y cantidad de feedback por producto (incluye productos sin feedback).
func (r *ReportRepo) ProductRanking(ctx context.Context) ([]repository.ProductRankingRow, error) {
	query := `
		SELECT p.id, p.name, p.category, p.active,
		       COUNT(f.id) AS feedback_count,
		       COALESCE(ROUND(AVG(f.rating)::numeric, 2), 0) AS average_rating
		FROM products p
		LEFT JOIN feedbacks f ON f.product_id = p.id
		GROUP BY p.id, p.name, p.category, p.active
		ORDER BY average_rating DESC, feedback_count DESC, p.name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapReadError("product ranking", err)
	}
	defer rows.Close()
	out := []repository.ProductRankingRow{}
	for rows.Next() {
		var row repository.ProductRankingRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Category, &row.Active, &row.FeedbackCount, &row.AverageRating); err != nil {
			return nil, mapReadError("scan ranking", err)
		}
		out = append(out, row)
	}
	return out, mapReadError("product ranking", rows.Err())
}

// ProductSatisfaction distribución de notas de un producto en [from, to]. nil si el producto no existe.
func (r *ReportRepo) ProductSatisfaction(ctx context.Context, productID string, from, to *time.Time) (*repository.ProductSatisfaction, error) {
	out := &repository.ProductSatisfaction{ProductID: productID, Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	err := r.pool.QueryRow(ctx, `SELECT name FROM products WHERE id = $1`, productID).Scan(&out.ProductName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapReadError("get product", err)
	}

	query := `
		SELECT rating, COUNT(*)
		FROM feedbacks
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		GROUP BY rating`
	rows, err := r.pool.Query(ctx, query, productID, from, to)
	if err != nil {
		return nil, mapReadError("product satisfaction", err)
	}
	defer rows.Close()
	var sum int64
	for rows.Next() {
		var rating int
		var count int64
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, mapReadError("scan satisfaction", err)
		}
		out.Distribution[rating] = count
		out.FeedbackCount += count
		sum += int64(rating) * count
	}
	if err := rows.Err(); err != nil {
		return nil, mapReadError("product satisfaction", err)
	}
	if out.FeedbackCount > 0 {
		out.AverageRating = decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(out.FeedbackCount), 2)
	}
	return out, nil
}
