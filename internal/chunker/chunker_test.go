package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_FiltersEmptySegments(t *testing.T) {
	c := New()
	chunks := c.Chunk([]string{"first", "", "   ", "\t\n", "second"})

	require.Len(t, chunks, 2)
	assert.Equal(t, "first", chunks[0].Text)
	assert.Equal(t, "second", chunks[1].Text)
}

func TestChunk_PreservesOrderAndIndexes(t *testing.T) {
	c := New()
	chunks := c.Chunk([]string{"a", "b", "c"})

	require.Len(t, chunks, 3)
	for i, ch := range chunks {
		assert.Equal(t, i, ch.Index)
	}
	assert.Equal(t, []string{"a", "b", "c"}, []string{chunks[0].Text, chunks[1].Text, chunks[2].Text})
}

func TestChunk_NeverReturnsEmptyAfterTrim(t *testing.T) {
	c := New(WithMaxChars(10))
	segments := []string{
		"word " + strings.Repeat("x", 50),
		"  padded  ",
		strings.Repeat("y", 25),
	}
	for _, ch := range c.Chunk(segments) {
		assert.NotEmpty(t, strings.TrimSpace(ch.Text))
	}
}

func TestChunk_SplitsLongSegments(t *testing.T) {
	c := New(WithMaxChars(10))
	chunks := c.Chunk([]string{"aaaa bbbb cccc dddd"})

	require.Greater(t, len(chunks), 1)
	var rejoined []string
	for _, ch := range chunks {
		assert.LessOrEqual(t, len(ch.Text), 10)
		rejoined = append(rejoined, ch.Text)
	}
	assert.Equal(t, "aaaa bbbb cccc dddd", strings.Join(rejoined, " "))
}

func TestChunk_SplitsWithoutWordBoundary(t *testing.T) {
	c := New(WithMaxChars(8))
	chunks := c.Chunk([]string{strings.Repeat("z", 20)})

	require.Len(t, chunks, 3)
	total := 0
	for _, ch := range chunks {
		total += len(ch.Text)
	}
	assert.Equal(t, 20, total)
}

func TestChunk_SplitStaysOnRuneBoundaries(t *testing.T) {
	c := New(WithMaxChars(10))
	text := strings.Repeat("安全手順を確認してください。", 5)
	chunks := c.Chunk([]string{text})

	require.Greater(t, len(chunks), 1)
	var rejoined strings.Builder
	for i, ch := range chunks {
		assert.Truef(t, utf8.ValidString(ch.Text), "chunk %d is not valid UTF-8: %q", i, ch.Text)
		rejoined.WriteString(ch.Text)
	}
	assert.Equal(t, text, rejoined.String())
}

func TestChunk_MixedScriptSplit(t *testing.T) {
	c := New(WithMaxChars(12))
	text := "step1 ネジを締める step2 カバーを戻す"
	for _, ch := range c.Chunk([]string{text}) {
		assert.True(t, utf8.ValidString(ch.Text))
		assert.LessOrEqual(t, len(ch.Text), 12)
	}
}

func TestChunk_BudgetBelowRuneWidth(t *testing.T) {
	c := New(WithMaxChars(1))
	chunks := c.Chunk([]string{"日本語"})

	require.Len(t, chunks, 3)
	for _, ch := range chunks {
		assert.True(t, utf8.ValidString(ch.Text))
	}
}

func TestChunk_ShortSegmentUntouched(t *testing.T) {
	c := New()
	chunks := c.Chunk([]string{"short paragraph"})

	require.Len(t, chunks, 1)
	assert.Equal(t, "short paragraph", chunks[0].Text)
}
