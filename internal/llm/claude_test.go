package llm

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

func claudeConfig(endpoint string) *config.ClaudeConfig {
	return &config.ClaudeConfig{
		Endpoint:         endpoint,
		Model:            "us.anthropic.claude-3-5-haiku-20241022-v1:0",
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        1000,
		TimeoutSecs:      5,
	}
}

func TestClaudeGenerator_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/model/us.anthropic.claude-3-5-haiku-20241022-v1:0/invoke", r.URL.Path)

		var req struct {
			AnthropicVersion string `json:"anthropic_version"`
			MaxTokens        int    `json:"max_tokens"`
			Messages         []struct {
				Role    string `json:"role"`
				Content []struct {
					Type string `json:"type"`
					Text string `json:"text"`
				} `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "bedrock-2023-05-31", req.AnthropicVersion)
		assert.Equal(t, 1000, req.MaxTokens)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		require.Len(t, req.Messages[0].Content, 1)
		assert.Equal(t, "text", req.Messages[0].Content[0].Type)
		assert.Equal(t, "the prompt", req.Messages[0].Content[0].Text)

		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "Name: Alice\nRole: Engineer"},
				{"type": "text", "text": "ignored second block"},
			},
		})
	}))
	defer srv.Close()

	g, err := NewClaudeGenerator(claudeConfig(srv.URL), "key")
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "Name: Alice\nRole: Engineer", text, "only the first content element is consumed")
}

func TestClaudeGenerator_MissingContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	g, err := NewClaudeGenerator(claudeConfig(srv.URL), "")
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "prompt")
	require.Error(t, err)

	var genErr *models.GenerationError
	assert.ErrorAs(t, err, &genErr)
}

func TestClaudeGenerator_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g, err := NewClaudeGenerator(claudeConfig(srv.URL), "")
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "prompt")
	var genErr *models.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Reason, "500")
}

func TestClaudeGenerator_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	g, err := NewClaudeGenerator(claudeConfig(srv.URL), "")
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "prompt")
	var genErr *models.GenerationError
	assert.ErrorAs(t, err, &genErr)
}
