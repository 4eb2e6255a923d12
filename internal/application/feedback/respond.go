package feedback

import (
	"context"
	"strconv"
	"strings"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/domain"
	domaudit "github.com/davihchagas/feedback-system-project/internal/domain/audit"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

// RespondResult respuesta persistida y fallos secundarios.
type RespondResult struct {
	Response        dto.ResponseDTO
	SecondaryErrors []*domain.SecondaryWriteError
}

// RespondToFeedback agrega la respuesta del analista actor a un feedback existente.
func (o *Orchestrator) RespondToFeedback(ctx context.Context, actor entity.Actor, feedbackID string, in dto.CreateResponseRequest) (*RespondResult, error) {
	text := strings.TrimSpace(in.ResponseText)
	if text == "" {
		return nil, domain.NewValidationError("responseText", "es obligatorio")
	}
	if feedbackID == "" {
		return nil, domain.NewValidationError("id", "es obligatorio")
	}

	resp := &entity.Response{
		FeedbackID:   feedbackID,
		AnalystID:    actor.UserID,
		AnalystName:  actor.Name,
		ResponseText: text,
		CreatedAt:    o.now().UTC(),
	}
	err := o.tx.Run(ctx, func(r repository.Repos) error {
		fb, err := r.Feedbacks.GetByID(ctx, feedbackID)
		if err != nil {
			return err
		}
		if fb == nil {
			return domain.ErrNotFound
		}
		return r.Responses.Create(ctx, resp)
	})
	if err != nil {
		return nil, err
	}

	result := &RespondResult{Response: dto.ResponseDTO{
		ID:           resp.ID,
		FeedbackID:   resp.FeedbackID,
		AnalystID:    resp.AnalystID,
		AnalystName:  resp.AnalystName,
		ResponseText: resp.ResponseText,
		CreatedAt:    resp.CreatedAt,
	}}
	entry := entity.AuditLogEntry{
		Action:  domaudit.ActionResponseCreated,
		Actor:   &actor,
		Entity:  &entity.EntityRef{Type: domaudit.EntityResponse, ID: strconv.FormatInt(resp.ID, 10)},
		Context: map[string]any{domaudit.CtxFeedbackID: feedbackID},
	}
	if swe := o.audit.Record(ctx, entry); swe != nil {
		result.SecondaryErrors = append(result.SecondaryErrors, swe)
	}
	return result, nil
}
