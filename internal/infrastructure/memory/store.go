// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y en demos locales; no está pensado para producción.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

// Operaciones donde se puede inyectar un fallo con FailOn.
const (
	OpUserCreate      = "users.create"
	OpClientCreate    = "clients.create"
	OpProductCreate   = "products.create"
	OpFeedbackInsert  = "feedbacks.insert"
	OpResponseCreate  = "responses.create"
	OpTextUpsert      = "feedback_texts.upsert"
	OpAuditAppend     = "audit_logs.append"
	OpAuditQuery      = "audit_logs.query"
	OpFeedbackListing = "feedbacks.list"
)

type tables struct {
	users     map[string]entity.User
	clients   map[string]entity.Client
	products  map[string]entity.Product
	feedbacks map[string]entity.Feedback
	responses []entity.Response
	nextResp  int64
}

func (t tables) clone() tables {
	return tables{
		users:     maps.Clone(t.users),
		clients:   maps.Clone(t.clients),
		products:  maps.Clone(t.products),
		feedbacks: maps.Clone(t.feedbacks),
		responses: append([]entity.Response(nil), t.responses...),
		nextResp:  t.nextResp,
	}
}

// Store almacén relacional en memoria con transacciones por snapshot:
// Run serializa las transacciones y restaura el snapshot si fn falla.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	t    tables
	fail map[string]error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		t: tables{
			users:     map[string]entity.User{},
			clients:   map[string]entity.Client{},
			products:  map[string]entity.Product{},
			feedbacks: map[string]entity.Feedback{},
		},
		fail: map[string]error{},
	}
}

// FailOn hace que op devuelva err hasta que se llame ClearFailures.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op] = err
}

// ClearFailures elimina los fallos inyectados.
func (s *Store) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = map[string]error{}
}

// injected se llama con s.mu tomado.
func (s *Store) injected(op string) error {
	return s.fail[op]
}

// Repos devuelve los repositorios fuera de transacción.
func (s *Store) Repos() repository.Repos {
	return repository.Repos{
		Users:     &userRepo{s: s},
		Clients:   &clientRepo{s: s},
		Products:  &productRepo{s: s},
		Feedbacks: &feedbackRepo{s: s},
		Responses: &responseRepo{s: s},
	}
}

// Reports devuelve el repositorio de reportes.
func (s *Store) Reports() repository.ReportRepository {
	return &reportRepo{s: s}
}

// Run implementa repository.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.t.clone()
	s.mu.Unlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.t = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// FeedbackCount número de filas de feedback (aserciones en tests).
func (s *Store) FeedbackCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.t.feedbacks)
}

// ClientCount número de filas de cliente.
func (s *Store) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.t.clients)
}

var _ repository.TxRunner = (*Store)(nil)
