package mongo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeIndexes struct {
	indexes []existingIndex
	drops   []string
	creates []string
	listErr error
}

func (f *fakeIndexes) List(context.Context) ([]existingIndex, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]existingIndex(nil), f.indexes...), nil
}

func (f *fakeIndexes) Drop(_ context.Context, name string) error {
	f.drops = append(f.drops, name)
	kept := f.indexes[:0]
	for _, idx := range f.indexes {
		if idx.Name != name {
			kept = append(kept, idx)
		}
	}
	f.indexes = kept
	return nil
}

func (f *fakeIndexes) Create(_ context.Context, spec IndexSpec) error {
	f.creates = append(f.creates, spec.Name)
	f.indexes = append(f.indexes, existingIndex{Name: spec.Name, Keys: spec.Keys, Unique: spec.Unique})
	return nil
}

func uniqFeedbackSpec() IndexSpec {
	return DeclaredIndexes()[0]
}

func TestEnsureIndex_CreaSiNoExiste(t *testing.T) {
	f := &fakeIndexes{indexes: []existingIndex{{Name: "_id_", Keys: bson.D{{Key: "_id", Value: int32(1)}}}}}

	action, err := EnsureIndex(context.Background(), f, uniqFeedbackSpec())

	require.NoError(t, err)
	assert.Equal(t, IndexCreated, action)
	assert.Empty(t, f.drops)
	assert.Equal(t, []string{IndexUniqFeedbackID}, f.creates)
}

func TestEnsureIndex_FormaDistintaRecreaYLuegoNoOp(t *testing.T) {
	f := &fakeIndexes{indexes: []existingIndex{
		{Name: IndexUniqFeedbackID, Keys: bson.D{{Key: "id_feedback", Value: int32(1)}}, Unique: true},
	}}
	spec := uniqFeedbackSpec()

	action, err := EnsureIndex(context.Background(), f, spec)
	require.NoError(t, err)
	assert.Equal(t, IndexRecreated, action)
	assert.Equal(t, []string{IndexUniqFeedbackID}, f.drops)
	assert.Equal(t, []string{IndexUniqFeedbackID}, f.creates)

	// segunda pasada: ya coincide, sin llamadas
	f.drops, f.creates = nil, nil
	action, err = EnsureIndex(context.Background(), f, spec)
	require.NoError(t, err)
	assert.Equal(t, IndexUnchanged, action)
	assert.Empty(t, f.drops)
	assert.Empty(t, f.creates)
}

func TestEnsureIndex_UnicidadDistintaRecrea(t *testing.T) {
	f := &fakeIndexes{indexes: []existingIndex{
		{Name: IndexUniqFeedbackID, Keys: bson.D{{Key: "feedback_id", Value: int32(1)}}, Unique: false},
	}}

	action, err := EnsureIndex(context.Background(), f, uniqFeedbackSpec())

	require.NoError(t, err)
	assert.Equal(t, IndexRecreated, action)
}

func TestEnsureIndex_DireccionComoDouble(t *testing.T) {
	spec := DeclaredIndexes()[1]
	f := &fakeIndexes{indexes: []existingIndex{
		{Name: IndexWhenDesc, Keys: bson.D{{Key: "when", Value: float64(-1)}}},
	}}

	action, err := EnsureIndex(context.Background(), f, spec)

	require.NoError(t, err)
	assert.Equal(t, IndexUnchanged, action)
}

func TestEnsureIndex_ErrorAlListar(t *testing.T) {
	f := &fakeIndexes{listErr: errors.New("boom")}

	_, err := EnsureIndex(context.Background(), f, uniqFeedbackSpec())

	assert.Error(t, err)
	assert.Empty(t, f.creates)
}
