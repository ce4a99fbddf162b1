package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgen/internal/models"
)

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  []string
}

func (f *fakeEmbedder) Name() string { return "fake" }

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls = append(f.calls, text)
	return f.vector, f.err
}

type fakeStore struct {
	results      []models.RetrievalResult
	err          error
	gotNamespace string
	gotVector    []float32
	gotK         int
}

func (f *fakeStore) Upsert(context.Context, string, []models.EmbeddingRecord) error {
	return nil
}

func (f *fakeStore) Query(_ context.Context, namespace string, vector []float32, k int) ([]models.RetrievalResult, error) {
	f.gotNamespace = namespace
	f.gotVector = vector
	f.gotK = k
	return f.results, f.err
}

func TestRetrieve(t *testing.T) {
	emb := &fakeEmbedder{vector: []float32{0.1, 0.2}}
	store := &fakeStore{results: []models.RetrievalResult{
		{RecordID: "rec-1", Score: 0.9, Text: "first"},
		{RecordID: "rec-2", Score: 0.8, Text: "second"},
	}}

	results, err := New(emb, store).Retrieve(context.Background(), "how to assemble", "plant-a", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"how to assemble"}, emb.calls)
	assert.Equal(t, "plant-a", store.gotNamespace)
	assert.Equal(t, []float32{0.1, 0.2}, store.gotVector)
	assert.Equal(t, 2, store.gotK)
	assert.Equal(t, store.results, results)
}

func TestRetrieve_DefaultTopK(t *testing.T) {
	store := &fakeStore{}
	_, err := New(&fakeEmbedder{vector: []float32{1}}, store).Retrieve(context.Background(), "q", "plant-a", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, store.gotK)
}

func TestRetrieve_EmbedderError(t *testing.T) {
	embedErr := errors.New("gateway timeout")
	store := &fakeStore{}
	_, err := New(&fakeEmbedder{err: embedErr}, store).Retrieve(context.Background(), "q", "plant-a", 3)
	require.ErrorIs(t, err, embedErr)
	assert.Empty(t, store.gotNamespace, "store must not be queried when embedding fails")
}

func TestRetrieve_StoreError(t *testing.T) {
	store := &fakeStore{err: models.ErrIndexUnavailable}
	_, err := New(&fakeEmbedder{vector: []float32{1}}, store).Retrieve(context.Background(), "q", "plant-a", 3)
	assert.ErrorIs(t, err, models.ErrIndexUnavailable)
}

func TestRetrieve_EmptyNamespace(t *testing.T) {
	store := &fakeStore{results: nil}
	results, err := New(&fakeEmbedder{vector: []float32{1}}, store).Retrieve(context.Background(), "q", "empty", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}
