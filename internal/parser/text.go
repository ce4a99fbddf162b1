package parser

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gtext "github.com/yuin/goldmark/text"
)

// TextExtractor handles markdown and plain text. It is the last strategy in
// the default order and rejects anything that is not valid UTF-8 text, which
// is what makes unreadable binary input fail the whole parse.
type TextExtractor struct{}

func (e *TextExtractor) Name() string { return "text" }

func (e *TextExtractor) Extract(data []byte) ([]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty document")
	}
	if !utf8.Valid(data) || bytes.ContainsRune(data, 0) {
		return nil, errors.New("not a text document")
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(gtext.NewReader(data))

	var segments []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		seg := strings.TrimSpace(blockText(n, data))
		if seg == "" {
			continue
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// blockText collects the visible text of one top-level markdown block.
func blockText(n ast.Node, source []byte) string {
	var buf strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.FencedCodeBlock:
			writeLines(&buf, t.Lines(), source)
		case *ast.CodeBlock:
			writeLines(&buf, t.Lines(), source)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func writeLines(buf *strings.Builder, lines *gtext.Segments, source []byte) {
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
}
