package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/application/ports"
	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/feedback"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

const rankingCacheKey = "products:ranking"

// ReportUseCase reportes de satisfacción por producto.
// El ranking (JSON y PDF) se sirve desde una caché en memoria durante ttl.
type ReportUseCase struct {
	repo  repository.ReportRepository
	pdf   ports.RankingPDFGenerator
	cache *cache.Cache
	now   func() time.Time
}

// NewReportUseCase construye el caso de uso. ttl 0 usa un minuto.
func NewReportUseCase(repo repository.ReportRepository, pdf ports.RankingPDFGenerator, ttl time.Duration) *ReportUseCase {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ReportUseCase{repo: repo, pdf: pdf, cache: cache.New(ttl, 2*ttl), now: time.Now}
}

// Ranking devuelve los productos ordenados por nota media descendente.
func (uc *ReportUseCase) Ranking(ctx context.Context) ([]dto.ProductRankingItem, error) {
	rows, err := uc.rankingRows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductRankingItem, 0, len(rows))
	for i, r := range rows {
		out = append(out, dto.ProductRankingItem{
			Position:       i + 1,
			ProductID:      r.ProductID,
			ProductName:    r.ProductName,
			Category:       r.Category,
			Active:         r.Active,
			FeedbackCount:  r.FeedbackCount,
			AverageRating:  r.AverageRating,
			Classification: classifyAverage(r.FeedbackCount, r.AverageRating.Round(0).IntPart()),
		})
	}
	return out, nil
}

// RankingPDF renderiza el ranking como PDF.
func (uc *ReportUseCase) RankingPDF(ctx context.Context) ([]byte, error) {
	rows, err := uc.rankingRows(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateRankingPDF(rows, uc.now())
}

func (uc *ReportUseCase) rankingRows(ctx context.Context) ([]repository.ProductRankingRow, error) {
	if cached, ok := uc.cache.Get(rankingCacheKey); ok {
		return cached.([]repository.ProductRankingRow), nil
	}
	rows, err := uc.repo.ProductRanking(ctx)
	if err != nil {
		return nil, err
	}
	uc.cache.SetDefault(rankingCacheKey, rows)
	return rows, nil
}

// ProductSatisfaction estadísticas de un producto en el período (fechas inclusivas).
func (uc *ReportUseCase) ProductSatisfaction(ctx context.Context, productID string, period dto.ReportPeriod) (*dto.ProductSatisfactionResponse, error) {
	from, err := dto.ParseDay(period.DateFrom)
	if err != nil {
		return nil, domain.NewValidationError("dateFrom", "formato YYYY-MM-DD")
	}
	to, err := dto.ParseDay(period.DateTo)
	if err != nil {
		return nil, domain.NewValidationError("dateTo", "formato YYYY-MM-DD")
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, domain.NewValidationError("dateFrom", "posterior a dateTo")
	}
	stats, err := uc.repo.ProductSatisfaction(ctx, productID, from, dto.EndOfDay(to))
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, domain.ErrNotFound
	}
	out := &dto.ProductSatisfactionResponse{
		ProductID:      stats.ProductID,
		ProductName:    stats.ProductName,
		DateFrom:       period.DateFrom,
		DateTo:         period.DateTo,
		FeedbackCount:  stats.FeedbackCount,
		AverageRating:  stats.AverageRating,
		Classification: classifyAverage(stats.FeedbackCount, stats.AverageRating.Round(0).IntPart()),
		Distribution:   make(map[string]int64, 5),
	}
	for r := 1; r <= 5; r++ {
		out.Distribution[strconv.Itoa(r)] = stats.Distribution[r]
	}
	return out, nil
}

// classifyAverage clasifica la media redondeada; sin feedbacks no hay etiqueta.
func classifyAverage(count, rounded int64) string {
	if count == 0 {
		return ""
	}
	label, err := feedback.Classify(int(rounded))
	if err != nil {
		return ""
	}
	return string(label)
}
