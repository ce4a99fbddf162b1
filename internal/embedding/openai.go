package embedding

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"docgen/internal/config"
)

// OpenAIEmbedder embeds text through an OpenAI-compatible endpoint via
// langchaingo.
type OpenAIEmbedder struct {
	impl *embeddings.EmbedderImpl
}

// NewOpenAIEmbedder builds a langchaingo-backed embedder from config.
func NewOpenAIEmbedder(cfg *config.OpenAIConfig, apiKey string) (*OpenAIEmbedder, error) {
	if cfg == nil {
		return nil, errors.New("openai embedder: not configured")
	}
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(apiKey, "Bearer ")),
		openai.WithModel(cfg.Model),
		openai.WithEmbeddingModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	impl, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, err
	}
	return &OpenAIEmbedder{impl: impl}, nil
}

func (e *OpenAIEmbedder) Name() string { return "openai" }

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.impl.EmbedQuery(ctx, text)
}
