package parser

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"docgen/internal/models"
)

// Extractor reads paragraph-level text segments out of one document format.
// Extract must be a pure transformation: no partial state on failure.
type Extractor interface {
	Name() string
	Extract(data []byte) ([]string, error)
}

// Parser tries an ordered list of extractor strategies until one succeeds.
// Declared format hints are unreliable, so every extractor is attempted in
// priority order regardless of the hint.
type Parser struct {
	extractors []Extractor
}

// New returns a parser with the default extractor order: PDF, DOCX, XLSX,
// then markdown/plain text.
func New() *Parser {
	return NewWithExtractors(
		&PDFExtractor{},
		&DOCXExtractor{},
		&XLSXExtractor{},
		&TextExtractor{},
	)
}

// NewWithExtractors returns a parser with a caller-supplied strategy order.
func NewWithExtractors(extractors ...Extractor) *Parser {
	return &Parser{extractors: extractors}
}

// Parse extracts text segments from raw document bytes. The first extractor
// that succeeds wins; if all fail the document is rejected with
// models.ErrUnsupportedFormat. Extraction is all-or-nothing per document.
func (p *Parser) Parse(data []byte, hint string) ([]string, error) {
	for _, ex := range p.extractors {
		segments, err := ex.Extract(data)
		if err != nil {
			log.Debug().Str("extractor", ex.Name()).Err(err).Msg("extractor rejected document")
			continue
		}
		log.Debug().Str("extractor", ex.Name()).Int("segments", len(segments)).Str("hint", hint).Msg("document extracted")
		return segments, nil
	}
	if hint != "" {
		return nil, fmt.Errorf("%w (declared format %q)", models.ErrUnsupportedFormat, hint)
	}
	return nil, models.ErrUnsupportedFormat
}

// splitSegments splits extracted text into paragraph-level segments on blank
// lines, dropping whitespace-only entries.
func splitSegments(text string) []string {
	parts := strings.Split(text, "\n\n")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}
