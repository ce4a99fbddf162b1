// Package pinecone is a minimal REST client to a managed remote vector
// index. The index is keyed by an API credential and an index host, both
// externally configured.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"docgen/internal/config"
	"docgen/internal/models"
)

// Store talks to one index host. It does not retry: transport failures are
// surfaced as models.ErrIndexUnavailable and retry policy belongs to the
// caller.
type Store struct {
	host   string
	apiKey string
	client *http.Client
}

// NewStore builds a client from config. The API key is resolved by the
// caller.
func NewStore(cfg *config.PineconeConfig, apiKey string) (*Store, error) {
	if cfg == nil || cfg.Host == "" {
		return nil, fmt.Errorf("pinecone: index host not configured")
	}
	host := cfg.Host
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	return &Store{
		host:   strings.TrimRight(host, "/"),
		apiKey: apiKey,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
	}, nil
}

type vector struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (s *Store) Upsert(ctx context.Context, namespace string, records []models.EmbeddingRecord) error {
	if len(records) == 0 {
		return nil
	}
	vectors := make([]vector, len(records))
	for i, r := range records {
		vectors[i] = vector{
			ID:       r.ID,
			Values:   r.Vector,
			Metadata: map[string]string{"text": r.Text},
		}
	}
	body := struct {
		Vectors   []vector `json:"vectors"`
		Namespace string   `json:"namespace"`
	}{Vectors: vectors, Namespace: namespace}

	return s.postJSON(ctx, s.host+"/vectors/upsert", body, nil)
}

func (s *Store) Query(ctx context.Context, namespace string, queryVector []float32, k int) ([]models.RetrievalResult, error) {
	body := struct {
		Vector          []float32 `json:"vector"`
		TopK            int       `json:"topK"`
		Namespace       string    `json:"namespace"`
		IncludeMetadata bool      `json:"includeMetadata"`
	}{Vector: queryVector, TopK: k, Namespace: namespace, IncludeMetadata: true}

	var resp struct {
		Matches []struct {
			ID       string            `json:"id"`
			Score    float32           `json:"score"`
			Metadata map[string]string `json:"metadata"`
		} `json:"matches"`
	}
	if err := s.postJSON(ctx, s.host+"/query", body, &resp); err != nil {
		return nil, err
	}

	results := make([]models.RetrievalResult, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		results = append(results, models.RetrievalResult{
			RecordID: m.ID,
			Score:    m.Score,
			Text:     m.Metadata["text"],
		})
	}
	return results, nil
}

func (s *Store) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrIndexUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: POST %s returned %d: %s", models.ErrIndexUnavailable, url, resp.StatusCode, string(msg))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
