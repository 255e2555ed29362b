package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/freud/split-text-smartly/internal/core/domain"
)

// extractXLSX flattens every sheet: cells joined by tabs, rows by newlines,
// sheets separated by a blank line.
func extractXLSX(raw []byte) (string, error) {
	book, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "open xlsx", err)
	}
	defer book.Close()

	sheets := make([]string, 0, len(book.GetSheetList()))
	for _, sheet := range book.GetSheetList() {
		rows, err := book.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		lines := make([]string, 0, len(rows))
		for _, cells := range rows {
			lines = append(lines, strings.Join(cells, "\t"))
		}
		sheets = append(sheets, strings.Join(lines, "\n"))
	}
	return strings.Join(sheets, "\n\n"), nil
}
