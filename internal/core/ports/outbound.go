package ports

import (
	"context"
	"io"

	"github.com/freud/split-text-smartly/internal/core/domain"
)

// Chunker lays text out into rows under a fixed configuration.
type Chunker interface {
	SplitDetailed(text domain.Text) domain.SplitResult
}

// ChunkerFactory builds a Chunker, rejecting invalid options.
type ChunkerFactory func(opts domain.SplitOptions) (Chunker, error)

// ProfileStore resolves named option presets.
type ProfileStore interface {
	Get(name string) (domain.SplitOptionsPatch, error)
	List() []domain.SplitProfile
}

// TextExtractor extracts plain text from an uploaded document.
type TextExtractor interface {
	Extract(ctx context.Context, filename, mimeType string, body io.Reader) (string, error)
}

// SplitRequestQueue serves split requests arriving over a message bus.
type SplitRequestQueue interface {
	ServeSplitRequests(ctx context.Context, handler func(context.Context, domain.SplitRequest) (*domain.SplitResult, error)) error
}
