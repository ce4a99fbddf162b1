// Package embedding converts text chunks into fixed-dimension vectors via a
// remote embedding model and builds the records stored in the vector index.
package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"docgen/internal/models"
)

// Embedder converts one text into its vector representation.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float32, error)
}

// RecordID derives a collision-resistant record id from the document id,
// the chunk's sequence index, and its text. Deterministic ids make
// re-ingestion of an unchanged document an overwrite instead of a duplicate.
func RecordID(docID string, index int, text string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d\x00%s", docID, index, text)
	return hex.EncodeToString(h.Sum(nil))
}

// BuildRecords embeds every chunk and returns records in chunk order.
// Embedding calls run sequentially, or with bounded fan-out when workers > 1;
// either way the output order matches the input and no successfully embedded
// chunk is dropped. A failed chunk aborts the build with an
// *models.EmbeddingError carrying its sequence index.
func BuildRecords(ctx context.Context, embedder Embedder, docID string, chunks []models.TextChunk, workers int) ([]models.EmbeddingRecord, error) {
	if len(chunks) == 0 {
		log.Info().Str("document", docID).Msg("no chunks to embed")
		return nil, nil
	}
	if workers <= 1 {
		return buildSequential(ctx, embedder, docID, chunks)
	}
	return buildParallel(ctx, embedder, docID, chunks, workers)
}

func buildSequential(ctx context.Context, embedder Embedder, docID string, chunks []models.TextChunk) ([]models.EmbeddingRecord, error) {
	records := make([]models.EmbeddingRecord, 0, len(chunks))
	for _, chunk := range chunks {
		vector, err := embedder.Embed(ctx, chunk.Text)
		if err != nil {
			return nil, &models.EmbeddingError{ChunkIndex: chunk.Index, Err: err}
		}
		records = append(records, models.EmbeddingRecord{
			ID:     RecordID(docID, chunk.Index, chunk.Text),
			Vector: vector,
			Text:   chunk.Text,
		})
	}
	return records, nil
}

func buildParallel(parent context.Context, embedder Embedder, docID string, chunks []models.TextChunk, workers int) ([]models.EmbeddingRecord, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	records := make([]models.EmbeddingRecord, len(chunks))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr *models.EmbeddingError

	for i, chunk := range chunks {
		mu.Lock()
		failed := firstErr != nil
		mu.Unlock()
		if failed {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, chunk models.TextChunk) {
			defer wg.Done()
			defer func() { <-sem }()

			vector, err := embedder.Embed(ctx, chunk.Text)
			if err != nil {
				mu.Lock()
				if firstErr == nil || chunk.Index < firstErr.ChunkIndex {
					firstErr = &models.EmbeddingError{ChunkIndex: chunk.Index, Err: err}
				}
				mu.Unlock()
				cancel()
				return
			}
			records[i] = models.EmbeddingRecord{
				ID:     RecordID(docID, chunk.Index, chunk.Text),
				Vector: vector,
				Text:   chunk.Text,
			}
		}(i, chunk)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return records, nil
}
