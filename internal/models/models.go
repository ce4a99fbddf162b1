package models

import "fmt"

// UseCase selects which structured artifact the generation pipeline produces.
type UseCase string

const (
	UseCaseChecksheet      UseCase = "checksheet"
	UseCaseWorkInstruction UseCase = "work_instruction"
)

// ParseUseCase validates a caller-supplied use case string.
func ParseUseCase(s string) (UseCase, error) {
	switch UseCase(s) {
	case UseCaseChecksheet, UseCaseWorkInstruction:
		return UseCase(s), nil
	}
	return "", fmt.Errorf("unknown use case: %q", s)
}

// FileExtension returns the artifact file extension for the use case,
// including the leading dot.
func (u UseCase) FileExtension() string {
	switch u {
	case UseCaseChecksheet:
		return ".xlsx"
	case UseCaseWorkInstruction:
		return ".docx"
	}
	return ".txt"
}

// TextChunk is an ordered unit of extracted document text. Index preserves
// document order; it carries no meaning across documents.
type TextChunk struct {
	Index int
	Text  string
}

// EmbeddingRecord is an (id, vector, text) tuple stored in a vector index
// namespace. Written once, never mutated; the id is content-derived so that
// re-ingesting the same document overwrites rather than duplicates.
type EmbeddingRecord struct {
	ID     string
	Vector []float32
	Text   string
}

// RetrievalResult is one ranked match from a vector index query.
type RetrievalResult struct {
	RecordID string
	Score    float32
	Text     string
}

// GenerationRequest describes one artifact generation call.
type GenerationRequest struct {
	UseCase     UseCase
	Namespace   string
	Instruction string
	TopK        int
}

// SynthesizedArtifact is the terminal output of the generation pipeline.
// Ownership passes to the caller on return.
type SynthesizedArtifact struct {
	UseCase UseCase
	Data    []byte
}
