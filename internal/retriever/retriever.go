// Package retriever answers free-text queries with the top-K most relevant
// stored chunks.
package retriever

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"docgen/internal/embedding"
	"docgen/internal/models"
	"docgen/internal/vectorstore"
)

// DefaultTopK is used when the caller asks for zero or fewer results.
const DefaultTopK = 5

// Retriever embeds a query through the single-item embedder path and
// delegates the lookup to the vector store.
type Retriever struct {
	embedder embedding.Embedder
	store    vectorstore.Store
}

func New(embedder embedding.Embedder, store vectorstore.Store) *Retriever {
	return &Retriever{embedder: embedder, store: store}
}

// Retrieve returns at most k results; fewer if the namespace holds fewer
// records, and none (without error) if the namespace is empty or unknown.
func (r *Retriever) Retrieve(ctx context.Context, query, namespace string, k int) ([]models.RetrievalResult, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	results, err := r.store.Query(ctx, namespace, vector, k)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("namespace", namespace).Int("requested", k).Int("returned", len(results)).Msg("retrieved context")
	return results, nil
}
