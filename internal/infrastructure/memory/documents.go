package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

// Documents almacén documental en memoria: textos de feedback y log de auditoría.
type Documents struct {
	mu    sync.Mutex
	texts map[string]entity.FeedbackText
	logs  []entity.AuditLogEntry
	fail  map[string]error
}

// NewDocuments crea un almacén documental vacío.
func NewDocuments() *Documents {
	return &Documents{texts: map[string]entity.FeedbackText{}, fail: map[string]error{}}
}

// FailOn hace que op (OpTextUpsert, OpAuditAppend, OpAuditQuery) devuelva err.
func (d *Documents) FailOn(op string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fail[op] = err
}

// ClearFailures elimina los fallos inyectados.
func (d *Documents) ClearFailures() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fail = map[string]error{}
}

// FeedbackTexts devuelve el repositorio de textos.
func (d *Documents) FeedbackTexts() repository.FeedbackTextRepository { return &textRepo{d: d} }

// AuditLogs devuelve el repositorio de auditoría.
func (d *Documents) AuditLogs() repository.AuditLogRepository { return &auditRepo{d: d} }

// TextCount número de documentos de texto.
func (d *Documents) TextCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.texts)
}

// Entries copia de los registros de auditoría en orden de inserción.
func (d *Documents) Entries() []entity.AuditLogEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]entity.AuditLogEntry, len(d.logs))
	copy(out, d.logs)
	return out
}

type textRepo struct{ d *Documents }

// Upsert conserva CreatedAt del primer insert y sobrescribe el contenido.
func (r *textRepo) Upsert(_ context.Context, t *entity.FeedbackText) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if err := r.d.fail[OpTextUpsert]; err != nil {
		return err
	}
	doc := *t
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if existing, ok := r.d.texts[t.FeedbackID]; ok {
		doc.CreatedAt = existing.CreatedAt
	}
	r.d.texts[t.FeedbackID] = doc
	return nil
}

func (r *textRepo) GetByFeedbackID(_ context.Context, feedbackID string) (*entity.FeedbackText, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	t, ok := r.d.texts[feedbackID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

type auditRepo struct{ d *Documents }

func (r *auditRepo) Append(_ context.Context, e entity.AuditLogEntry) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if err := r.d.fail[OpAuditAppend]; err != nil {
		return err
	}
	r.d.logs = append(r.d.logs, e)
	return nil
}

func (r *auditRepo) Query(_ context.Context, f repository.AuditLogFilter, page repository.Page) ([]entity.AuditLogEntry, int64, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if err := r.d.fail[OpAuditQuery]; err != nil {
		return nil, 0, err
	}
	matched := []entity.AuditLogEntry{}
	for _, e := range r.d.logs {
		if matchAudit(e, f) {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].When.After(matched[j].When) })
	total := int64(len(matched))
	start := page.Skip()
	if start >= total {
		return []entity.AuditLogEntry{}, total, nil
	}
	end := start + int64(page.Limit)
	if page.Limit <= 0 || end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func matchAudit(e entity.AuditLogEntry, f repository.AuditLogFilter) bool {
	if f.UserID != "" && (e.Actor == nil || e.Actor.UserID != f.UserID) {
		return false
	}
	if f.Role != "" && (e.Actor == nil || e.Actor.Role != f.Role) {
		return false
	}
	if f.Path != "" && e.Path != f.Path {
		return false
	}
	if len(f.Actions) > 0 && !slices.Contains(f.Actions, e.Action) {
		return false
	}
	if f.DateFrom != nil && e.When.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && e.When.After(*f.DateTo) {
		return false
	}
	return true
}
