// Package service wires the ingestion and generation pipelines together.
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"docgen/internal/chunker"
	"docgen/internal/embedding"
	"docgen/internal/helper"
	"docgen/internal/llm"
	"docgen/internal/models"
	"docgen/internal/parser"
	"docgen/internal/prompt"
	"docgen/internal/retriever"
	"docgen/internal/synthesizer"
	"docgen/internal/vectorstore"
)

// Pipeline owns explicitly constructed client handles for every remote
// boundary. Nothing here is ambient process-wide state; the caller builds
// the components and hands them in.
type Pipeline struct {
	parser    *parser.Parser
	chunker   *chunker.Chunker
	embedder  embedding.Embedder
	store     vectorstore.Store
	retriever *retriever.Retriever
	prompts   *prompt.Builder
	generator llm.Generator
	workers   int
	topK      int
}

// Options tunes pipeline behavior.
type Options struct {
	// Workers bounds parallel embedding calls per document; 1 or less means
	// sequential.
	Workers int
	// TopK is the default retrieval depth for generation.
	TopK int
}

func New(p *parser.Parser, c *chunker.Chunker, e embedding.Embedder, s vectorstore.Store, g llm.Generator, b *prompt.Builder, opts Options) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.TopK <= 0 {
		opts.TopK = retriever.DefaultTopK
	}
	return &Pipeline{
		parser:    p,
		chunker:   c,
		embedder:  e,
		store:     s,
		retriever: retriever.New(e, s),
		prompts:   b,
		generator: g,
		workers:   opts.Workers,
		topK:      opts.TopK,
	}
}

// IngestRequest carries one document into the ingestion pipeline.
type IngestRequest struct {
	// DocumentID identifies the document; generated when empty.
	DocumentID string
	// Namespace partitions the vector index.
	Namespace string
	// Data is the raw document content.
	Data []byte
	// FormatHint is the declared format, recorded but not trusted.
	FormatHint string
}

// IngestReport summarizes a completed ingestion.
type IngestReport struct {
	DocumentID string
	Namespace  string
	Segments   int
	Chunks     int
	Indexed    int
}

// Ingest runs parse → chunk → embed → upsert. The complete record batch is
// upserted once at the end so all chunks of a document become visible
// together. A parse failure leaves the namespace untouched; an embedding
// failure aborts before upsert and names the failed chunk; an upsert failure
// reports the embedded-but-not-indexed state. Aborting mid-flight never rolls
// back records upserted by earlier calls.
func (p *Pipeline) Ingest(ctx context.Context, req IngestRequest) (*IngestReport, error) {
	docID := req.DocumentID
	if docID == "" {
		docID = helper.NewDocumentID()
	}

	segments, err := p.parser.Parse(req.Data, req.FormatHint)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", docID, err)
	}

	chunks := p.chunker.Chunk(segments)
	log.Info().Str("document", docID).Str("namespace", req.Namespace).Int("segments", len(segments)).Int("chunks", len(chunks)).Msg("document parsed")

	records, err := embedding.BuildRecords(ctx, p.embedder, docID, chunks, p.workers)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", docID, err)
	}

	if err := p.store.Upsert(ctx, req.Namespace, records); err != nil {
		return nil, fmt.Errorf("document %s: %d chunks embedded but not indexed: %w", docID, len(records), err)
	}

	log.Info().Str("document", docID).Str("namespace", req.Namespace).Int("indexed", len(records)).Msg("document ingested")
	return &IngestReport{
		DocumentID: docID,
		Namespace:  req.Namespace,
		Segments:   len(segments),
		Chunks:     len(chunks),
		Indexed:    len(records),
	}, nil
}

// Generate runs retrieve → prompt → model → synthesize. An artifact is only
// returned on full pipeline success; there is no partial artifact.
func (p *Pipeline) Generate(ctx context.Context, req models.GenerationRequest) (*models.SynthesizedArtifact, error) {
	query := req.Instruction
	if query == "" {
		query = string(req.UseCase)
	}
	topK := req.TopK
	if topK <= 0 {
		topK = p.topK
	}

	results, err := p.retriever.Retrieve(ctx, query, req.Namespace, topK)
	if err != nil {
		return nil, fmt.Errorf("use case %s: %w", req.UseCase, err)
	}

	contexts := make([]string, len(results))
	for i, r := range results {
		contexts[i] = r.Text
	}

	promptText, err := p.prompts.Build(req.UseCase, contexts, req.Instruction)
	if err != nil {
		return nil, err
	}

	generated, err := p.generator.Generate(ctx, promptText)
	if err != nil {
		return nil, fmt.Errorf("use case %s: %w", req.UseCase, err)
	}

	log.Info().Str("use_case", string(req.UseCase)).Str("namespace", req.Namespace).Int("contexts", len(contexts)).Int("generated_chars", len(generated)).Msg("artifact generated")
	return synthesizer.Synthesize(req.UseCase, generated)
}

// Query exposes raw retrieval for inspection tooling.
func (p *Pipeline) Query(ctx context.Context, query, namespace string, k int) ([]models.RetrievalResult, error) {
	return p.retriever.Retrieve(ctx, query, namespace, k)
}
