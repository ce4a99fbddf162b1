// Package chunker turns extracted text segments into bounded chunks ready
// for embedding.
package chunker

import (
	"strings"
	"unicode/utf8"

	"docgen/internal/models"
)

// DefaultMaxChars bounds chunk size before embedding. Remote embedding
// models reject oversized inputs without this guard; 4000 characters keeps a
// chunk comfortably inside common input limits.
const DefaultMaxChars = 4000

// Chunker filters and bounds text segments while preserving document order.
type Chunker struct {
	maxChars int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithMaxChars sets the per-chunk character budget.
func WithMaxChars(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxChars = n
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{maxChars: DefaultMaxChars}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk converts segments into ordered TextChunks. Whitespace-only segments
// are dropped, order is preserved, and segments over the character budget are
// split at word boundaries. No returned chunk is empty after trimming.
func (c *Chunker) Chunk(segments []string) []models.TextChunk {
	var chunks []models.TextChunk
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		for _, part := range c.split(segment) {
			chunks = append(chunks, models.TextChunk{
				Index: len(chunks),
				Text:  part,
			})
		}
	}
	return chunks
}

// split cuts a segment into pieces of at most maxChars bytes, breaking at a
// space or newline near the end of each piece when one exists. The cut point
// always lands on a rune boundary, so text without whitespace (CJK prose in
// particular) is never sliced mid-rune.
func (c *Chunker) split(segment string) []string {
	if len(segment) <= c.maxChars {
		return []string{segment}
	}

	var parts []string
	rest := segment
	for len(rest) > c.maxChars {
		end := c.maxChars
		// Prefer a break point within the last tenth of the piece.
		lookBack := c.maxChars / 10
		if lookBack < 1 {
			lookBack = 1
		}
		found := false
		for i := end - 1; i >= end-lookBack && i > 0; i-- {
			if rest[i] == ' ' || rest[i] == '\n' {
				end = i
				found = true
				break
			}
		}
		if !found {
			for end > 0 && !utf8.RuneStart(rest[end]) {
				end--
			}
			if end == 0 {
				// Budget smaller than the first rune; keep the rune whole.
				_, size := utf8.DecodeRuneInString(rest)
				end = size
			}
		}
		part := strings.TrimSpace(rest[:end])
		if part != "" {
			parts = append(parts, part)
		}
		rest = strings.TrimSpace(rest[end:])
	}
	if rest != "" {
		parts = append(parts, rest)
	}
	return parts
}
