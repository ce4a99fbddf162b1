// Package llm wraps remote generative model invocation.
package llm

import "context"

// DefaultMaxTokens is the fixed response-size ceiling for one generation.
const DefaultMaxTokens = 1000

// Generator invokes a remote generative model once per call. No internal
// retry: transient failures surface as *models.GenerationError and retry
// policy belongs to the caller.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}
