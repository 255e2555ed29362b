package extractor

import (
	"fmt"
	"unicode/utf8"

	"github.com/freud/split-text-smartly/internal/core/domain"
)

// extractPlainText returns the document verbatim; surrounding whitespace is
// left for the splitter's trim option to decide.
func extractPlainText(filename string, raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "extract plain text", fmt.Errorf("not valid utf-8: %s", filename))
	}
	return string(raw), nil
}
