package parser

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx"
)

// XLSXExtractor extracts cell text from spreadsheet documents, one segment
// per sheet.
type XLSXExtractor struct{}

func (e *XLSXExtractor) Name() string { return "xlsx" }

func (e *XLSXExtractor) Extract(data []byte) ([]string, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, err
	}

	var segments []string
	for _, sheet := range f.Sheets {
		var text strings.Builder
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			var cells []string
			for _, cell := range row.Cells {
				cells = append(cells, cell.String())
			}
			text.WriteString(strings.Join(cells, "\t"))
			text.WriteString("\n")
		}
		if strings.TrimSpace(text.String()) != "" {
			segments = append(segments, strings.TrimRight(text.String(), "\n"))
		}
	}
	return segments, nil
}
