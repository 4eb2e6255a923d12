// Package feedback coordina las escrituras entre el almacén relacional, el almacén
// documental y la auditoría para los casos de uso de feedback.
//
// Orden fijo por caso de uso:
//
//	validar → escritura relacional transaccional → texto documental (best-effort) → auditoría → responder
//
// El commit relacional es el punto sin compensación: nada posterior lo revierte.
package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/davihchagas/feedback-system-project/internal/application/audit"
	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/application/ports"
	"github.com/davihchagas/feedback-system-project/internal/domain"
	domaudit "github.com/davihchagas/feedback-system-project/internal/domain/audit"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	domfeedback "github.com/davihchagas/feedback-system-project/internal/domain/feedback"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
	"github.com/davihchagas/feedback-system-project/pkg/ids"
	"github.com/davihchagas/feedback-system-project/pkg/logger"
)

// IDGenerator genera IDs legibles por tipo de entidad.
type IDGenerator interface {
	Generate(kind ids.Kind) (string, error)
}

// AuditRecorder escritura de auditoría esperada (ver audit.Writer.Record).
type AuditRecorder interface {
	Record(ctx context.Context, entry entity.AuditLogEntry) *domain.SecondaryWriteError
}

// Config parámetros del orquestador.
type Config struct {
	// MaxIDAttempts intentos de la transacción ante colisión de ID (mínimo 2).
	MaxIDAttempts    int
	SentimentTimeout time.Duration
	IdempotencyTTL   time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxIDAttempts < 2 {
		c.MaxIDAttempts = domain.DefaultIDAttempts
	}
	if c.SentimentTimeout <= 0 {
		c.SentimentTimeout = 5 * time.Second
	}
	if c.IdempotencyTTL <= 0 {
		c.IdempotencyTTL = 24 * time.Hour
	}
	return c
}

// Orchestrator implementa create-feedback y respond-to-feedback.
type Orchestrator struct {
	tx        repository.TxRunner
	texts     repository.FeedbackTextRepository
	audit     AuditRecorder
	sink      audit.ErrorSink
	ids       IDGenerator
	sentiment ports.SentimentAnalyzer
	idem      ports.IdempotencyStore
	log       *logger.Logger
	cfg       Config
	now       func() time.Time
}

// Option configura dependencias opcionales.
type Option func(*Orchestrator)

// WithSentiment activa el enriquecimiento de sentimiento del comentario largo.
func WithSentiment(s ports.SentimentAnalyzer) Option {
	return func(o *Orchestrator) { o.sentiment = s }
}

// WithIdempotency activa las claves de idempotencia de create-feedback.
func WithIdempotency(s ports.IdempotencyStore) Option {
	return func(o *Orchestrator) { o.idem = s }
}

// WithClock fija el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator construye el orquestador.
func NewOrchestrator(
	tx repository.TxRunner,
	texts repository.FeedbackTextRepository,
	recorder AuditRecorder,
	sink audit.ErrorSink,
	gen IDGenerator,
	log *logger.Logger,
	cfg Config,
	opts ...Option,
) *Orchestrator {
	if sink == nil {
		sink = audit.NopSink{}
	}
	o := &Orchestrator{
		tx:    tx,
		texts: texts,
		audit: recorder,
		sink:  sink,
		ids:   gen,
		log:   log.Component("orchestrator"),
		cfg:   cfg.withDefaults(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CreateResult resultado de create-feedback. SecondaryErrors nunca convierte el resultado en fallo.
type CreateResult struct {
	FeedbackID      string
	Replayed        bool
	SecondaryErrors []*domain.SecondaryWriteError
}

// Response cuerpo HTTP del resultado.
func (r *CreateResult) Response() dto.CreateFeedbackResponse {
	out := dto.CreateFeedbackResponse{FeedbackID: r.FeedbackID, Replayed: r.Replayed}
	for _, e := range r.SecondaryErrors {
		out.SecondaryFailures = append(out.SecondaryFailures, e.Leg)
	}
	return out
}

// CreateFeedback registra un feedback del usuario actor.
// idempotencyKey vacío desactiva la deduplicación.
func (o *Orchestrator) CreateFeedback(ctx context.Context, actor entity.Actor, in dto.CreateFeedbackRequest, idempotencyKey string) (*CreateResult, error) {
	in.ShortComment = strings.TrimSpace(in.ShortComment)
	in.ProductID = strings.TrimSpace(in.ProductID)
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	key := ""
	if o.idem != nil && idempotencyKey != "" {
		key = "idem:feedback:" + actor.UserID + ":" + idempotencyKey
		prior, err := o.idem.Reserve(ctx, key, o.cfg.IdempotencyTTL)
		switch {
		case err != nil:
			// sin almacén de claves se procesa como una petición normal
			o.log.Warn().Err(err).Msg("idempotencia no disponible")
			key = ""
		case prior == ports.IdempotencyPending:
			return nil, fmt.Errorf("%w: petición con la misma clave en curso", domain.ErrConflict)
		case prior != "":
			return &CreateResult{FeedbackID: prior, Replayed: true}, nil
		}
	}

	var (
		fb      *entity.Feedback
		product *entity.Product
	)
	err := domain.RetryOnDuplicateID(ctx, o.cfg.MaxIDAttempts, func() error {
		var txErr error
		fb, product, txErr = o.insertFeedbackTx(ctx, actor, in)
		return txErr
	}, func(attempt int) {
		o.log.Warn().Int("attempt", attempt).Msg("colisión de ID, regenerando")
	})
	if err != nil {
		if key != "" {
			if relErr := o.idem.Release(context.WithoutCancel(ctx), key); relErr != nil {
				o.log.Warn().Err(relErr).Str("key", key).Msg("no se pudo liberar la clave de idempotencia")
			}
		}
		return nil, err
	}

	// Punto sin compensación: la fila relacional ya está confirmada.
	result := &CreateResult{FeedbackID: fb.ID}
	if key != "" {
		if err := o.idem.Complete(context.WithoutCancel(ctx), key, fb.ID, o.cfg.IdempotencyTTL); err != nil {
			o.log.Warn().Err(err).Str("feedback_id", fb.ID).Msg("no se pudo completar la clave de idempotencia")
		}
	}

	if swe := o.upsertText(ctx, fb, in); swe != nil {
		result.SecondaryErrors = append(result.SecondaryErrors, swe)
	}

	entry := entity.AuditLogEntry{
		Action: domaudit.ActionFeedbackCreated,
		Actor:  &actor,
		Entity: &entity.EntityRef{Type: domaudit.EntityFeedback, ID: fb.ID},
		Context: map[string]any{
			domaudit.CtxProductID:   product.ID,
			domaudit.CtxProductName: product.Name,
			"client_id":             fb.ClientID,
			"rating":                fb.Rating,
			"has_text":              hasText(in),
		},
	}
	if swe := o.audit.Record(ctx, entry); swe != nil {
		result.SecondaryErrors = append(result.SecondaryErrors, swe)
	}
	return result, nil
}

func validateCreate(in dto.CreateFeedbackRequest) error {
	if in.ProductID == "" {
		return domain.NewValidationError("productId", "es obligatorio")
	}
	if err := domfeedback.ValidateRating(in.Rating); err != nil {
		return err
	}
	if in.ShortComment == "" {
		return domain.NewValidationError("shortComment", "es obligatorio")
	}
	return nil
}

// insertFeedbackTx valida el producto, resuelve (o crea) el cliente del actor e inserta
// el feedback en una sola transacción. Un producto inactivo aborta sin escribir nada.
func (o *Orchestrator) insertFeedbackTx(ctx context.Context, actor entity.Actor, in dto.CreateFeedbackRequest) (*entity.Feedback, *entity.Product, error) {
	var (
		fb      *entity.Feedback
		product *entity.Product
	)
	err := o.tx.Run(ctx, func(r repository.Repos) error {
		p, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil || !p.Active {
			return domain.NewValidationError("productId", "el producto no existe o está inactivo")
		}
		product = p

		client, err := o.resolveClient(ctx, r, actor)
		if err != nil {
			return err
		}

		id, err := o.ids.Generate(ids.KindFeedback)
		if err != nil {
			return err
		}
		fb = &entity.Feedback{
			ID:           id,
			ClientID:     client.ID,
			ProductID:    p.ID,
			Rating:       in.Rating,
			ShortComment: in.ShortComment,
			CreatedAt:    o.now().UTC(),
		}
		return r.Feedbacks.Insert(ctx, fb)
	})
	return fb, product, err
}

// resolveClient devuelve el cliente del usuario, creándolo si falta.
func (o *Orchestrator) resolveClient(ctx context.Context, r repository.Repos, actor entity.Actor) (*entity.Client, error) {
	client, err := r.Clients.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if client != nil {
		return client, nil
	}
	id, err := o.ids.Generate(ids.KindClient)
	if err != nil {
		return nil, err
	}
	name := actor.Name
	if name == "" {
		name = actor.Email
	}
	client = &entity.Client{ID: id, UserID: actor.UserID, Name: name, CreatedAt: o.now().UTC()}
	if err := r.Clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func hasText(in dto.CreateFeedbackRequest) bool {
	return strings.TrimSpace(in.LongComment) != "" || len(in.Tags) > 0 || len(in.Attachments) > 0 || in.Sentiment != ""
}

// upsertText escribe el documento de texto largo si la petición trae contenido para él.
// Un fallo se reporta al sink y se devuelve; la fila relacional se conserva.
func (o *Orchestrator) upsertText(ctx context.Context, fb *entity.Feedback, in dto.CreateFeedbackRequest) *domain.SecondaryWriteError {
	if !hasText(in) {
		return nil
	}
	now := o.now().UTC()
	doc := &entity.FeedbackText{
		FeedbackID:  fb.ID,
		LongComment: strings.TrimSpace(in.LongComment),
		Tags:        normalizeTags(in.Tags),
		Sentiment:   in.Sentiment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, a := range in.Attachments {
		doc.Attachments = append(doc.Attachments, entity.Attachment{Type: a.Type, URL: a.URL})
	}
	if doc.Sentiment == "" && doc.LongComment != "" {
		doc.Sentiment = o.inferSentiment(ctx, doc.LongComment)
	}

	writeCtx := context.WithoutCancel(ctx)
	if err := o.texts.Upsert(writeCtx, doc); err != nil {
		swe := &domain.SecondaryWriteError{
			Leg:      domain.LegFeedbackText,
			Action:   domaudit.ActionFeedbackCreated,
			EntityID: fb.ID,
			Err:      err,
		}
		o.sink.Report(swe)
		return swe
	}
	o.sink.Written(domain.LegFeedbackText)
	return nil
}

// inferSentiment consulta el analizador con timeout; cualquier fallo deja el campo vacío.
func (o *Orchestrator) inferSentiment(ctx context.Context, text string) string {
	if o.sentiment == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, o.cfg.SentimentTimeout)
	defer cancel()
	label, err := o.sentiment.AnalyzeSentiment(ctx, text)
	if err != nil {
		o.log.Debug().Err(err).Msg("sentimiento no inferido")
		return ""
	}
	switch label {
	case ports.SentimentPositive, ports.SentimentNeutral, ports.SentimentNegative:
		return label
	}
	return ""
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
