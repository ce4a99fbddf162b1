// Package chromemdb backs the vector index with a local chromem-go
// database, in memory or persisted on disk. Each namespace maps to one
// collection.
package chromemdb

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/philippgille/chromem-go"

	"docgen/internal/models"
)

// Store wraps a chromem database. Collections are created lazily on first
// upsert into a namespace.
type Store struct {
	db *chromem.DB

	mu          sync.Mutex
	collections map[string]*chromem.Collection
}

// NewStore opens a persistent database at path, or an in-memory one when
// inMemory is set.
func NewStore(path string, inMemory bool) (*Store, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(path, false)
		if err != nil {
			return nil, fmt.Errorf("opening vector database: %w", err)
		}
	}
	return &Store{db: db, collections: make(map[string]*chromem.Collection)}, nil
}

func (s *Store) collection(namespace string) (*chromem.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.collections[namespace]; ok {
		return c, nil
	}
	c, err := s.db.GetOrCreateCollection(namespace, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("creating collection %s: %w", namespace, err)
	}
	s.collections[namespace] = c
	return c, nil
}

func (s *Store) Upsert(ctx context.Context, namespace string, records []models.EmbeddingRecord) error {
	if len(records) == 0 {
		return nil
	}
	col, err := s.collection(namespace)
	if err != nil {
		return err
	}
	docs := make([]chromem.Document, len(records))
	for i, r := range records {
		docs[i] = chromem.Document{
			ID:        r.ID,
			Content:   r.Text,
			Embedding: r.Vector,
		}
	}
	if err := col.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("adding documents to %s: %w", namespace, err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, namespace string, vector []float32, k int) ([]models.RetrievalResult, error) {
	col, err := s.collection(namespace)
	if err != nil {
		return nil, err
	}
	// chromem rejects queries asking for more results than stored documents.
	if count := col.Count(); k > count {
		k = count
	}
	if k <= 0 {
		return nil, nil
	}
	matches, err := col.QueryEmbedding(ctx, vector, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", namespace, err)
	}
	results := make([]models.RetrievalResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, models.RetrievalResult{
			RecordID: m.ID,
			Score:    m.Similarity,
			Text:     m.Content,
		})
	}
	return results, nil
}
