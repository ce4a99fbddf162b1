package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts plain text from PDF documents, page by page.
type PDFExtractor struct{}

func (e *PDFExtractor) Name() string { return "pdf" }

func (e *PDFExtractor) Extract(data []byte) (segments []string, err error) {
	// The pdf library panics on some malformed inputs; this extractor is
	// handed arbitrary bytes, so panics are converted into a rejection.
	defer func() {
		if r := recover(); r != nil {
			segments = nil
			err = fmt.Errorf("pdf extraction panicked: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		text.WriteString(pageText)
		text.WriteString("\n\n")
	}
	return splitSegments(text.String()), nil
}
