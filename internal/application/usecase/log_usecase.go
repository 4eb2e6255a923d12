package usecase

import (
	"context"
	"strings"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/audit"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

// LogUseCase lectura paginada de la auditoría, cruda o humanizada.
type LogUseCase struct {
	repo repository.AuditLogRepository
}

// NewLogUseCase construye el caso de uso.
func NewLogUseCase(repo repository.AuditLogRepository) *LogUseCase {
	return &LogUseCase{repo: repo}
}

// ListRaw devuelve registros tal como se almacenaron, de más reciente a más antiguo.
func (uc *LogUseCase) ListRaw(ctx context.Context, q dto.LogQuery) (*dto.RawLogPage, error) {
	filter, page, err := buildLogFilter(q)
	if err != nil {
		return nil, err
	}
	if q.Action != "" {
		filter.Actions = []string{q.Action}
	}
	items, total, err := uc.repo.Query(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return &dto.RawLogPage{
		PageResponse: dto.PageResponse{Page: page.Number, Limit: page.Limit, Total: total},
		Items:        items,
	}, nil
}

// ListHuman devuelve frases legibles. Sin action ni all solo incluye acciones de negocio.
func (uc *LogUseCase) ListHuman(ctx context.Context, q dto.LogQuery) (*dto.HumanLogPage, error) {
	filter, page, err := buildLogFilter(q)
	if err != nil {
		return nil, err
	}
	switch {
	case q.Action != "":
		filter.Actions = []string{q.Action}
	case !q.All:
		filter.Actions = audit.BusinessActions()
	}
	items, total, err := uc.repo.Query(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	out := &dto.HumanLogPage{
		PageResponse: dto.PageResponse{Page: page.Number, Limit: page.Limit, Total: total},
		Items:        make([]audit.HumanEntry, 0, len(items)),
	}
	for _, e := range items {
		out.Items = append(out.Items, audit.Humanize(e))
	}
	return out, nil
}

func buildLogFilter(q dto.LogQuery) (repository.AuditLogFilter, repository.Page, error) {
	q.DefaultPage()
	from, err := dto.ParseDay(q.DateFrom)
	if err != nil {
		return repository.AuditLogFilter{}, repository.Page{}, domain.NewValidationError("dateFrom", "formato YYYY-MM-DD")
	}
	to, err := dto.ParseDay(q.DateTo)
	if err != nil {
		return repository.AuditLogFilter{}, repository.Page{}, domain.NewValidationError("dateTo", "formato YYYY-MM-DD")
	}
	filter := repository.AuditLogFilter{
		UserID:   strings.TrimSpace(q.UserID),
		Role:     strings.ToUpper(strings.TrimSpace(q.Role)),
		Path:     strings.TrimSpace(q.Path),
		DateFrom: from,
		DateTo:   dto.EndOfDay(to),
	}
	return filter, repository.Page{Number: q.Page, Limit: q.Limit}, nil
}
