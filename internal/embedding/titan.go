package embedding

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
)

// TitanEmbedder calls a titan-style embedding model through an HTTP model
// gateway. The wire contract is fixed by the provider: the request carries
// the input text and the response carries a dense vector.
type TitanEmbedder struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// NewTitanEmbedder builds a gateway client from config. The API key is
// resolved by the caller so no ambient environment lookups happen here.
func NewTitanEmbedder(cfg *config.TitanConfig, apiKey string) (*TitanEmbedder, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, errors.New("titan embedder: endpoint not configured")
	}
	return &TitanEmbedder{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
	}, nil
}

func (e *TitanEmbedder) Name() string { return "titan" }

func (e *TitanEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(struct {
		InputText string `json:"inputText"`
	}{InputText: text})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/model/%s/invoke", e.endpoint, e.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding model returned %d: %s", resp.StatusCode, string(body))
	}

	var out struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Embedding) == 0 {
		return nil, errors.New("embedding model response missing embedding")
	}
	return out.Embedding, nil
}
