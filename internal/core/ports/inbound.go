package ports

import (
	"context"
	"io"

	"github.com/freud/split-text-smartly/internal/core/domain"
)

// TextSplitService is the inbound contract for splitting a text into rows.
type TextSplitService interface {
	Split(ctx context.Context, req domain.SplitRequest) (*domain.SplitResult, error)
}

// DocumentSplitService extracts text from an uploaded document and splits it.
type DocumentSplitService interface {
	SplitDocument(ctx context.Context, filename, mimeType string, body io.Reader, options domain.SplitOptionsPatch, profile string) (*domain.SplitResult, error)
}

// ProfileCatalog lists the named option presets known to the service.
type ProfileCatalog interface {
	Profiles() []domain.SplitProfile
}
