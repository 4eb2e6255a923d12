package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

var _ repository.FeedbackTextRepository = (*FeedbackTextRepo)(nil)

// FeedbackTextRepo textos largos de feedback, un documento por feedback_id.
type FeedbackTextRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewFeedbackTextRepository construye el repositorio sobre db.
func NewFeedbackTextRepository(db *mongo.Database) *FeedbackTextRepo {
	return &FeedbackTextRepo{coll: db.Collection(CollectionFeedbackTexts), now: time.Now}
}

// Upsert reemplaza el contenido y fija created_at solo en la inserción.
func (r *FeedbackTextRepo) Upsert(ctx context.Context, t *entity.FeedbackText) error {
	filter, update := textUpsert(t, r.now().UTC())
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return mapError("upsert feedback text", err)
}

// GetByFeedbackID devuelve (nil, nil) si no hay documento.
func (r *FeedbackTextRepo) GetByFeedbackID(ctx context.Context, feedbackID string) (*entity.FeedbackText, error) {
	var t entity.FeedbackText
	err := r.coll.FindOne(ctx, bson.D{{Key: "feedback_id", Value: feedbackID}}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, mapError("get feedback text", err)
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return &t, nil
}

// textUpsert arma filtro y actualización: $set con el contenido, $setOnInsert con la clave y la creación.
func textUpsert(t *entity.FeedbackText, now time.Time) (bson.D, bson.D) {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	created := t.CreatedAt
	if created.IsZero() {
		created = now
	}
	updated := t.UpdatedAt
	if updated.IsZero() {
		updated = now
	}
	set := bson.D{
		{Key: "long_comment", Value: t.LongComment},
		{Key: "tags", Value: tags},
		{Key: "sentiment", Value: t.Sentiment},
		{Key: "attachments", Value: t.Attachments},
		{Key: "updated_at", Value: updated},
	}
	filter := bson.D{{Key: "feedback_id", Value: t.FeedbackID}}
	update := bson.D{
		{Key: "$set", Value: set},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "feedback_id", Value: t.FeedbackID},
			{Key: "created_at", Value: created},
		}},
	}
	return filter, update
}
