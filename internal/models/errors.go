package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat indicates no extractor could read the document.
	// Non-retryable; the ingestion is rejected as a whole.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrIndexUnavailable indicates the vector index could not be reached.
	// Retryable with backoff; retry policy belongs to the caller.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)

// EmbeddingError reports a failed embedding call for a single chunk. The
// chunk index lets the caller retry or report partial ingestion instead of
// silently dropping the chunk.
type EmbeddingError struct {
	ChunkIndex int
	Err        error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding chunk %d: %v", e.ChunkIndex, e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// GenerationError is a hard failure of one generative model invocation.
// No partial text is ever returned alongside it.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }
