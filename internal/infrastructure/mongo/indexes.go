package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/davihchagas/feedback-system-project/pkg/logger"
)

// Nombres de índices declarados.
const (
	IndexUniqFeedbackID = "uniq_id_feedback"
	IndexWhenDesc       = "when_desc"
	IndexActorWhen      = "actor_when"
	IndexPathWhen       = "path_when"
)

// IndexSpec definición declarada de un índice.
type IndexSpec struct {
	Collection string
	Name       string
	Keys       bson.D
	Unique     bool
}

// DeclaredIndexes contrato de índices del almacén documental.
func DeclaredIndexes() []IndexSpec {
	return []IndexSpec{
		{Collection: CollectionFeedbackTexts, Name: IndexUniqFeedbackID, Keys: bson.D{{Key: "feedback_id", Value: 1}}, Unique: true},
		{Collection: CollectionAuditLogs, Name: IndexWhenDesc, Keys: bson.D{{Key: "when", Value: -1}}},
		{Collection: CollectionAuditLogs, Name: IndexActorWhen, Keys: bson.D{{Key: "actor.user_id", Value: 1}, {Key: "when", Value: -1}}},
		{Collection: CollectionAuditLogs, Name: IndexPathWhen, Keys: bson.D{{Key: "path", Value: 1}, {Key: "when", Value: -1}}},
	}
}

// existingIndex índice tal como lo reporta el servidor.
type existingIndex struct {
	Name   string
	Keys   bson.D
	Unique bool
}

// indexManager operaciones mínimas sobre los índices de una colección.
type indexManager interface {
	List(ctx context.Context) ([]existingIndex, error)
	Drop(ctx context.Context, name string) error
	Create(ctx context.Context, spec IndexSpec) error
}

// IndexAction resultado de reconciliar un índice.
type IndexAction string

const (
	IndexUnchanged IndexAction = "unchanged"
	IndexCreated   IndexAction = "created"
	IndexRecreated IndexAction = "recreated"
)

// EnsureIndex compara el índice declarado con el existente: no hace nada si coincide,
// lo crea si falta y lo borra y recrea si el nombre existe con otra forma o unicidad.
func EnsureIndex(ctx context.Context, m indexManager, spec IndexSpec) (IndexAction, error) {
	current, err := m.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listar índices de %s: %w", spec.Collection, err)
	}
	for _, idx := range current {
		if idx.Name != spec.Name {
			continue
		}
		if idx.Unique == spec.Unique && sameKeys(idx.Keys, spec.Keys) {
			return IndexUnchanged, nil
		}
		if err := m.Drop(ctx, spec.Name); err != nil {
			return "", fmt.Errorf("borrar índice %s: %w", spec.Name, err)
		}
		if err := m.Create(ctx, spec); err != nil {
			return "", fmt.Errorf("recrear índice %s: %w", spec.Name, err)
		}
		return IndexRecreated, nil
	}
	if err := m.Create(ctx, spec); err != nil {
		return "", fmt.Errorf("crear índice %s: %w", spec.Name, err)
	}
	return IndexCreated, nil
}

// Reconcile aplica EnsureIndex a todos los índices declarados. Se ejecuta una vez al arrancar.
func Reconcile(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	for _, spec := range DeclaredIndexes() {
		action, err := EnsureIndex(ctx, collectionIndexes{view: db.Collection(spec.Collection).Indexes()}, spec)
		if err != nil {
			return mapError("reconcile indexes", err)
		}
		if action != IndexUnchanged {
			log.Info().Str("collection", spec.Collection).Str("index", spec.Name).Str("action", string(action)).Msg("índice reconciliado")
		}
	}
	return nil
}

// sameKeys compara campos, orden y dirección; el servidor puede devolver int32, int64 o double.
func sameKeys(a, b bson.D) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key {
			return false
		}
		da, okA := direction(a[i].Value)
		db, okB := direction(b[i].Value)
		if !okA || !okB || da != db {
			return false
		}
	}
	return true
}

func direction(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// collectionIndexes adapta mongo.IndexView a indexManager.
type collectionIndexes struct {
	view mongo.IndexView
}

func (c collectionIndexes) List(ctx context.Context) ([]existingIndex, error) {
	specs, err := c.view.ListSpecifications(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]existingIndex, 0, len(specs))
	for _, s := range specs {
		var keys bson.D
		if err := bson.Unmarshal(s.KeysDocument, &keys); err != nil {
			return nil, fmt.Errorf("decodificar claves de %s: %w", s.Name, err)
		}
		out = append(out, existingIndex{Name: s.Name, Keys: keys, Unique: s.Unique != nil && *s.Unique})
	}
	return out, nil
}

func (c collectionIndexes) Drop(ctx context.Context, name string) error {
	_, err := c.view.DropOne(ctx, name)
	return err
}

func (c collectionIndexes) Create(ctx context.Context, spec IndexSpec) error {
	opts := options.Index().SetName(spec.Name)
	if spec.Unique {
		opts.SetUnique(true)
	}
	_, err := c.view.CreateOne(ctx, mongo.IndexModel{Keys: spec.Keys, Options: opts})
	return err
}
