// Package vectorstore defines the vector index boundary shared by the
// ingestion and generation pipelines.
package vectorstore

import (
	"context"

	"docgen/internal/models"
)

// Store persists embedding records and answers nearest-neighbor queries.
// Namespace is a required partition key isolating one logical collection;
// cross-namespace queries are not supported.
type Store interface {
	// Upsert inserts or overwrites records by id within the namespace.
	// Upserting an existing id replaces its vector, it never duplicates.
	Upsert(ctx context.Context, namespace string, records []models.EmbeddingRecord) error

	// Query returns up to k results ranked by descending similarity.
	// An empty or unknown namespace yields an empty slice, not an error.
	Query(ctx context.Context, namespace string, vector []float32, k int) ([]models.RetrievalResult, error)
}
