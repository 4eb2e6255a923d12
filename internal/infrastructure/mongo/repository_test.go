package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

// ─── textUpsert ──────────────────────────────────────────────────────────────

func TestTextUpsert_CreatedAtSoloEnInsercion(t *testing.T) {
	now := time.Date(2025, 11, 12, 15, 30, 45, 0, time.UTC)
	filter, update := textUpsert(&entity.FeedbackText{FeedbackID: "FBK-1", LongComment: "largo"}, now)

	assert.Equal(t, bson.D{{Key: "feedback_id", Value: "FBK-1"}}, filter)
	set := update[0].Value.(bson.D)
	onInsert := update[1].Value.(bson.D)
	assert.Equal(t, "$set", update[0].Key)
	assert.Equal(t, "$setOnInsert", update[1].Key)
	assert.Equal(t, bson.D{{Key: "feedback_id", Value: "FBK-1"}, {Key: "created_at", Value: now}}, onInsert)
	for _, e := range set {
		assert.NotEqual(t, "created_at", e.Key)
	}
}

func TestTextUpsert_TagsNilComoVacio(t *testing.T) {
	_, update := textUpsert(&entity.FeedbackText{FeedbackID: "FBK-1"}, time.Now())
	set := update[0].Value.(bson.D)
	assert.Equal(t, "tags", set[1].Key)
	assert.Equal(t, []string{}, set[1].Value)
}

// ─── auditFilter ─────────────────────────────────────────────────────────────

func TestAuditFilter_Vacio(t *testing.T) {
	assert.Equal(t, bson.D{}, auditFilter(repository.AuditLogFilter{}))
}

func TestAuditFilter_Completo(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
	got := auditFilter(repository.AuditLogFilter{
		UserID:   "USR-1",
		Role:     "ADMIN",
		Actions:  []string{"A", "B"},
		DateFrom: &from,
		DateTo:   &to,
	})
	want := bson.D{
		{Key: "actor.user_id", Value: "USR-1"},
		{Key: "actor.role", Value: "ADMIN"},
		{Key: "action", Value: bson.D{{Key: "$in", Value: []string{"A", "B"}}}},
		{Key: "when", Value: bson.D{{Key: "$gte", Value: from}, {Key: "$lte", Value: to}}},
	}
	assert.Equal(t, want, got)
}

func TestAuditFilter_UnaAccionSinIn(t *testing.T) {
	got := auditFilter(repository.AuditLogFilter{Actions: []string{"HTTP_ACCESS"}, Path: "/api/products"})
	assert.Equal(t, bson.D{{Key: "path", Value: "/api/products"}, {Key: "action", Value: "HTTP_ACCESS"}}, got)
}
