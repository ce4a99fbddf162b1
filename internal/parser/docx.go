package parser

import (
	"bytes"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// DOCXExtractor extracts paragraph text from DOCX documents.
type DOCXExtractor struct{}

func (e *DOCXExtractor) Name() string { return "docx" }

func (e *DOCXExtractor) Extract(data []byte) ([]string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	// GetContent returns the raw document.xml markup; paragraphs are w:p
	// elements and visible text lives in w:t runs.
	content := r.Editable().GetContent()
	var segments []string
	for _, para := range strings.Split(content, "</w:p>") {
		text := strings.TrimSpace(extractTagText(para, "<w:t", "</w:t>"))
		if text == "" {
			continue
		}
		segments = append(segments, text)
	}
	return segments, nil
}

// extractTagText concatenates the character data of every occurrence of the
// given tag in an XML fragment.
func extractTagText(xmlContent, openTag, closeTag string) string {
	var text strings.Builder
	parts := strings.Split(xmlContent, openTag)
	for i, part := range parts {
		if i == 0 {
			continue
		}
		// Guard against longer tag names sharing the prefix (w:tbl, w:tab).
		if !strings.HasPrefix(part, ">") && !strings.HasPrefix(part, " ") {
			continue
		}
		gt := strings.Index(part, ">")
		if gt < 0 {
			continue
		}
		part = part[gt+1:]
		if end := strings.Index(part, closeTag); end >= 0 {
			text.WriteString(part[:end])
		}
	}
	return text.String()
}
