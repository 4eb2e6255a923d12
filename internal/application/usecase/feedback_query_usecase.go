package usecase

import (
	"context"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/feedback"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

// FeedbackQueryUseCase lecturas de feedback: vista detallada, texto largo y respuestas.
// Ninguna lectura es transaccional.
type FeedbackQueryUseCase struct {
	feedbacks repository.FeedbackRepository
	responses repository.ResponseRepository
	texts     repository.FeedbackTextRepository
}

// NewFeedbackQueryUseCase construye el caso de uso.
func NewFeedbackQueryUseCase(feedbacks repository.FeedbackRepository, responses repository.ResponseRepository, texts repository.FeedbackTextRepository) *FeedbackQueryUseCase {
	return &FeedbackQueryUseCase{feedbacks: feedbacks, responses: responses, texts: texts}
}

// ListDetailed devuelve filas feedback+producto+cliente con su clasificación.
func (uc *FeedbackQueryUseCase) ListDetailed(ctx context.Context, q dto.FeedbackQuery) ([]dto.FeedbackDetailResponse, error) {
	from, err := dto.ParseDay(q.DateFrom)
	if err != nil {
		return nil, domain.NewValidationError("dateFrom", "formato YYYY-MM-DD")
	}
	to, err := dto.ParseDay(q.DateTo)
	if err != nil {
		return nil, domain.NewValidationError("dateTo", "formato YYYY-MM-DD")
	}
	filter := repository.FeedbackFilter{
		ProductID: q.ProductID,
		ClientID:  q.ClientID,
		DateFrom:  from,
		DateTo:    dto.EndOfDay(to),
	}
	if q.RatingMin != 0 {
		if err := feedback.ValidateRating(q.RatingMin); err != nil {
			return nil, domain.NewValidationError("ratingMin", "debe estar entre 1 y 5")
		}
		filter.RatingMin = &q.RatingMin
	}
	if q.RatingMax != 0 {
		if err := feedback.ValidateRating(q.RatingMax); err != nil {
			return nil, domain.NewValidationError("ratingMax", "debe estar entre 1 y 5")
		}
		filter.RatingMax = &q.RatingMax
	}
	if filter.RatingMin != nil && filter.RatingMax != nil && *filter.RatingMin > *filter.RatingMax {
		return nil, domain.NewValidationError("ratingMin", "no puede ser mayor que ratingMax")
	}

	rows, err := uc.feedbacks.ListDetailed(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FeedbackDetailResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDetailResponse(r))
	}
	return out, nil
}

// GetText devuelve el documento de texto largo. ErrNotFound si no existe:
// un feedback sin texto es un estado válido.
func (uc *FeedbackQueryUseCase) GetText(ctx context.Context, feedbackID string) (*dto.FeedbackTextResponse, error) {
	doc, err := uc.texts.GetByFeedbackID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	out := &dto.FeedbackTextResponse{
		FeedbackID:  doc.FeedbackID,
		LongComment: doc.LongComment,
		Tags:        doc.Tags,
		Sentiment:   doc.Sentiment,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	for _, a := range doc.Attachments {
		out.Attachments = append(out.Attachments, dto.AttachmentDTO{Type: a.Type, URL: a.URL})
	}
	return out, nil
}

// ListResponses devuelve las respuestas de un feedback existente.
func (uc *FeedbackQueryUseCase) ListResponses(ctx context.Context, feedbackID string) ([]dto.ResponseDTO, error) {
	fb, err := uc.feedbacks.GetByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if fb == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.responses.ListByFeedback(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ResponseDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ResponseDTO{
			ID:           r.ID,
			FeedbackID:   r.FeedbackID,
			AnalystID:    r.AnalystID,
			AnalystName:  r.AnalystName,
			ResponseText: r.ResponseText,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out, nil
}

func toDetailResponse(r *entity.FeedbackDetail) dto.FeedbackDetailResponse {
	// las filas ya pasaron el CHECK de rango; un error aquí deja la etiqueta vacía
	label, _ := feedback.Classify(r.Rating)
	return dto.FeedbackDetailResponse{
		ID:             r.ID,
		ClientID:       r.ClientID,
		ClientName:     r.ClientName,
		ProductID:      r.ProductID,
		ProductName:    r.ProductName,
		Category:       r.Category,
		Rating:         r.Rating,
		Classification: string(label),
		ShortComment:   r.ShortComment,
		CreatedAt:      r.CreatedAt,
	}
}
