package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/freud/split-text-smartly/internal/core/domain"
	"github.com/freud/split-text-smartly/internal/core/ports"
)

type SplitDocumentUseCase struct {
	extractor ports.TextExtractor
	splitter  ports.TextSplitService
}

func NewSplitDocumentUseCase(extractor ports.TextExtractor, splitter ports.TextSplitService) *SplitDocumentUseCase {
	return &SplitDocumentUseCase{
		extractor: extractor,
		splitter:  splitter,
	}
}

func (uc *SplitDocumentUseCase) SplitDocument(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
	options domain.SplitOptionsPatch,
	profile string,
) (*domain.SplitResult, error) {
	text, err := uc.extractor.Extract(ctx, filename, mimeType, body)
	if err != nil {
		return nil, fmt.Errorf("extract document text: %w", err)
	}
	return uc.splitter.Split(ctx, domain.SplitRequest{
		Text:    domain.PresentText(text),
		Options: options,
		Profile: profile,
	})
}
