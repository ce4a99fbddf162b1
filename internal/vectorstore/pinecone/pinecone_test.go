package pinecone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgen/internal/config"
	"docgen/internal/models"
)

func newTestStore(t *testing.T, url string) *Store {
	t.Helper()
	s, err := NewStore(&config.PineconeConfig{Host: url, TimeoutSecs: 5}, "test-key")
	require.NoError(t, err)
	return s
}

func TestUpsert_RequestShape(t *testing.T) {
	var got struct {
		Vectors []struct {
			ID       string            `json:"id"`
			Values   []float32         `json:"values"`
			Metadata map[string]string `json:"metadata"`
		} `json:"vectors"`
		Namespace string `json:"namespace"`
	}
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL)
	err := s.Upsert(context.Background(), "plant-a", []models.EmbeddingRecord{
		{ID: "rec-1", Vector: []float32{0.1, 0.2}, Text: "press the start button"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/vectors/upsert", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "plant-a", got.Namespace)
	require.Len(t, got.Vectors, 1)
	assert.Equal(t, "rec-1", got.Vectors[0].ID)
	assert.Equal(t, []float32{0.1, 0.2}, got.Vectors[0].Values)
	assert.Equal(t, "press the start button", got.Vectors[0].Metadata["text"])
}

func TestUpsert_NoRecordsSkipsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty batch")
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL)
	require.NoError(t, s.Upsert(context.Background(), "plant-a", nil))
}

func TestQuery_ParsesMatches(t *testing.T) {
	var got struct {
		Vector          []float32 `json:"vector"`
		TopK            int       `json:"topK"`
		Namespace       string    `json:"namespace"`
		IncludeMetadata bool      `json:"includeMetadata"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"matches":[
			{"id":"rec-1","score":0.91,"metadata":{"text":"first"}},
			{"id":"rec-2","score":0.85,"metadata":{"text":"second"}}
		]}`))
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL)
	results, err := s.Query(context.Background(), "plant-a", []float32{0.5, 0.5}, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, got.TopK)
	assert.Equal(t, "plant-a", got.Namespace)
	assert.True(t, got.IncludeMetadata)

	require.Len(t, results, 2)
	assert.Equal(t, models.RetrievalResult{RecordID: "rec-1", Score: 0.91, Text: "first"}, results[0])
	assert.Equal(t, models.RetrievalResult{RecordID: "rec-2", Score: 0.85, Text: "second"}, results[1])
}

func TestQuery_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index is initializing", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL)
	_, err := s.Query(context.Background(), "plant-a", []float32{0.5}, 1)
	assert.ErrorIs(t, err, models.ErrIndexUnavailable)
}

func TestQuery_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	s := newTestStore(t, srv.URL)
	_, err := s.Query(context.Background(), "plant-a", []float32{0.5}, 1)
	assert.ErrorIs(t, err, models.ErrIndexUnavailable)
}

func TestNewStore_DefaultsToHTTPS(t *testing.T) {
	s, err := NewStore(&config.PineconeConfig{Host: "index-abc123.svc.pinecone.io"}, "k")
	require.NoError(t, err)
	assert.Equal(t, "https://index-abc123.svc.pinecone.io", s.host)
}

func TestNewStore_MissingHost(t *testing.T) {
	_, err := NewStore(&config.PineconeConfig{}, "k")
	assert.Error(t, err)
}
