package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"docgen/internal/config"
	"docgen/internal/models"
)

// ClaudeGenerator invokes a claude-style model through an HTTP model
// gateway. The wire contract is fixed by the provider: a versioned,
// role-based message payload with a hard output ceiling, answered by a list
// of content blocks of which only the first is consumed.
type ClaudeGenerator struct {
	endpoint  string
	model     string
	apiKey    string
	version   string
	maxTokens int
	client    *http.Client
}

// NewClaudeGenerator builds a gateway client from config.
func NewClaudeGenerator(cfg *config.ClaudeConfig, apiKey string) (*ClaudeGenerator, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, errors.New("claude generator: endpoint not configured")
	}
	return &ClaudeGenerator{
		endpoint:  cfg.Endpoint,
		model:     cfg.Model,
		apiKey:    apiKey,
		version:   cfg.AnthropicVersion,
		maxTokens: cfg.MaxTokens,
		client:    &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
	}, nil
}

func (g *ClaudeGenerator) Name() string { return "claude" }

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeMessage struct {
	Role    string          `json:"role"`
	Content []claudeContent `json:"content"`
}

func (g *ClaudeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(struct {
		AnthropicVersion string          `json:"anthropic_version"`
		MaxTokens        int             `json:"max_tokens"`
		Messages         []claudeMessage `json:"messages"`
	}{
		AnthropicVersion: g.version,
		MaxTokens:        g.maxTokens,
		Messages: []claudeMessage{
			{Role: "user", Content: []claudeContent{{Type: "text", Text: prompt}}},
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/model/%s/invoke", g.endpoint, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &models.GenerationError{Reason: "gateway unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &models.GenerationError{
			Reason: fmt.Sprintf("gateway returned %d: %s", resp.StatusCode, string(body)),
		}
	}

	var out struct {
		Content []claudeContent `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &models.GenerationError{Reason: "malformed response body", Err: err}
	}
	if len(out.Content) == 0 || out.Content[0].Text == "" {
		return "", &models.GenerationError{Reason: "response missing content"}
	}
	return out.Content[0].Text, nil
}
