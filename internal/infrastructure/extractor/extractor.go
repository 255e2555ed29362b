package extractor

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/freud/split-text-smartly/internal/core/domain"
)

type format string

const (
	formatPlainText format = "text"
	formatPDF       format = "pdf"
	formatXLSX      format = "xlsx"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Extractor picks a decoder by MIME type, falling back to the file extension
// when the type is missing or generic.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, filename, mimeType string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read source document: %w", err)
	}

	switch detectFormat(filename, mimeType) {
	case formatPDF:
		return extractPDF(raw)
	case formatXLSX:
		return extractXLSX(raw)
	case formatPlainText:
		return extractPlainText(filename, raw)
	default:
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "extract", fmt.Errorf("file=%s type=%s", filename, mimeType))
	}
}

func detectFormat(filename, mimeType string) format {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType = ""
	}
	switch {
	case mediaType == mimePDF:
		return formatPDF
	case mediaType == mimeXLSX:
		return formatXLSX
	case strings.HasPrefix(mediaType, "text/"):
		return formatPlainText
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return formatPDF
	case ".xlsx":
		return formatXLSX
	case ".txt", ".text", ".md", ".csv", ".log", "":
		return formatPlainText
	default:
		return ""
	}
}
