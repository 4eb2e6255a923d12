package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo colección append-only de auditoría y accesos.
type AuditLogRepo struct {
	coll *mongo.Collection
}

// NewAuditLogRepository construye el repositorio sobre db.
func NewAuditLogRepository(db *mongo.Database) *AuditLogRepo {
	return &AuditLogRepo{coll: db.Collection(CollectionAuditLogs)}
}

// Append inserta el registro; nunca actualiza.
func (r *AuditLogRepo) Append(ctx context.Context, entry entity.AuditLogEntry) error {
	if entry.When.IsZero() {
		entry.When = time.Now()
	}
	entry.When = entry.When.UTC()
	_, err := r.coll.InsertOne(ctx, entry)
	return mapError("append audit log", err)
}

// Query devuelve la página pedida, de la más reciente a la más antigua, y el total filtrado.
func (r *AuditLogRepo) Query(ctx context.Context, f repository.AuditLogFilter, page repository.Page) ([]entity.AuditLogEntry, int64, error) {
	filter := auditFilter(f)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mapError("count audit logs", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "when", Value: -1}}).
		SetSkip(page.Skip())
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, mapError("find audit logs", err)
	}
	defer cur.Close(ctx)

	entries := []entity.AuditLogEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, 0, mapError("decode audit logs", err)
	}
	return entries, total, nil
}

// auditFilter traduce los filtros a una consulta; los campos vacíos no restringen.
func auditFilter(f repository.AuditLogFilter) bson.D {
	filter := bson.D{}
	if f.UserID != "" {
		filter = append(filter, bson.E{Key: "actor.user_id", Value: f.UserID})
	}
	if f.Role != "" {
		filter = append(filter, bson.E{Key: "actor.role", Value: f.Role})
	}
	if f.Path != "" {
		filter = append(filter, bson.E{Key: "path", Value: f.Path})
	}
	if len(f.Actions) == 1 {
		filter = append(filter, bson.E{Key: "action", Value: f.Actions[0]})
	} else if len(f.Actions) > 1 {
		filter = append(filter, bson.E{Key: "action", Value: bson.D{{Key: "$in", Value: f.Actions}}})
	}
	when := bson.D{}
	if f.DateFrom != nil {
		when = append(when, bson.E{Key: "$gte", Value: f.DateFrom.UTC()})
	}
	if f.DateTo != nil {
		when = append(when, bson.E{Key: "$lte", Value: f.DateTo.UTC()})
	}
	if len(when) > 0 {
		filter = append(filter, bson.E{Key: "when", Value: when})
	}
	return filter
}
