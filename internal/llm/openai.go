package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"docgen/internal/config"
	"docgen/internal/models"
)

// OpenAIGenerator invokes an OpenAI-compatible chat model via langchaingo.
type OpenAIGenerator struct {
	llm       *openai.LLM
	maxTokens int
}

// NewOpenAIGenerator builds the client once; it is injected into the
// pipeline rather than constructed per call.
func NewOpenAIGenerator(cfg *config.OpenAIConfig, apiKey string, maxTokens int) (*OpenAIGenerator, error) {
	if cfg == nil {
		return nil, errors.New("openai generator: not configured")
	}
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(apiKey, "Bearer ")),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	return &OpenAIGenerator{llm: llm, maxTokens: maxTokens}, nil
}

func (g *OpenAIGenerator) Name() string { return "openai" }

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}
	res, err := g.llm.GenerateContent(ctx, messages, llms.WithMaxTokens(g.maxTokens))
	if err != nil {
		return "", &models.GenerationError{Reason: "model call failed", Err: err}
	}
	if len(res.Choices) == 0 || res.Choices[0].Content == "" {
		return "", &models.GenerationError{Reason: "response missing content"}
	}
	return res.Choices[0].Content, nil
}
