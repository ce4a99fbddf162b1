package synthesizer

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const checksheetSheet = "Checksheet"

// buildChecksheet renders generated text as a two-column spreadsheet. Each
// non-empty line is split on its FIRST colon into a (field, value) pair, so
// values containing colons survive intact; a line without a colon becomes a
// field with an empty value. The prompt template asks the model for exactly
// this line shape.
func buildChecksheet(generatedText string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", checksheetSheet)

	if err := writeRow(f, 1, "Field", "Value"); err != nil {
		return nil, err
	}
	row := 2
	for _, line := range strings.Split(generatedText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		field, value := splitFieldValue(line)
		if err := writeRow(f, row, field, value); err != nil {
			return nil, err
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, field, value string) error {
	if err := f.SetCellValue(checksheetSheet, fmt.Sprintf("A%d", row), field); err != nil {
		return err
	}
	return f.SetCellValue(checksheetSheet, fmt.Sprintf("B%d", row), value)
}

func splitFieldValue(line string) (string, string) {
	field, value, found := strings.Cut(line, ":")
	if !found {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(field), strings.TrimSpace(value)
}
