package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

type reportRepo struct{ s *Store }

func average(sum, n int64) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(n), 2)
}

func (r *reportRepo) ProductRanking(_ context.Context) ([]repository.ProductRankingRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sums := map[string]int64{}
	counts := map[string]int64{}
	for _, f := range r.s.t.feedbacks {
		sums[f.ProductID] += int64(f.Rating)
		counts[f.ProductID]++
	}
	rows := make([]repository.ProductRankingRow, 0, len(r.s.t.products))
	for _, p := range r.s.t.products {
		rows = append(rows, repository.ProductRankingRow{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Category:      p.Category,
			Active:        p.Active,
			FeedbackCount: counts[p.ID],
			AverageRating: average(sums[p.ID], counts[p.ID]),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].AverageRating.Cmp(rows[j].AverageRating); c != 0 {
			return c > 0
		}
		if rows[i].FeedbackCount != rows[j].FeedbackCount {
			return rows[i].FeedbackCount > rows[j].FeedbackCount
		}
		return rows[i].ProductName < rows[j].ProductName
	})
	return rows, nil
}

func (r *reportRepo) ProductSatisfaction(_ context.Context, productID string, from, to *time.Time) (*repository.ProductSatisfaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.t.products[productID]
	if !ok {
		return nil, nil
	}
	out := &repository.ProductSatisfaction{
		ProductID:    p.ID,
		ProductName:  p.Name,
		Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	var sum int64
	for _, f := range r.s.t.feedbacks {
		if f.ProductID != productID {
			continue
		}
		if (from != nil && f.CreatedAt.Before(*from)) || (to != nil && f.CreatedAt.After(*to)) {
			continue
		}
		out.FeedbackCount++
		out.Distribution[f.Rating]++
		sum += int64(f.Rating)
	}
	out.AverageRating = average(sum, out.FeedbackCount)
	return out, nil
}
