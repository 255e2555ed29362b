package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/freud/split-text-smartly/internal/core/domain"
	"github.com/freud/split-text-smartly/internal/core/ports"
)

type SplitObserver interface {
	ObserveSplit(source string, result *domain.SplitResult, duration time.Duration)
}

type SplitTextUseCase struct {
	defaults   domain.SplitOptions
	newChunker ports.ChunkerFactory
	profiles   ports.ProfileStore
	observer   SplitObserver
	source     string
}

func NewSplitTextUseCase(
	defaults domain.SplitOptions,
	newChunker ports.ChunkerFactory,
	profiles ports.ProfileStore,
) *SplitTextUseCase {
	return &SplitTextUseCase{
		defaults:   defaults,
		newChunker: newChunker,
		profiles:   profiles,
		source:     "text",
	}
}

// WithObserver returns a copy of the use case reporting every split to observer
// under the given source label.
func (uc *SplitTextUseCase) WithObserver(source string, observer SplitObserver) *SplitTextUseCase {
	out := *uc
	out.observer = observer
	if strings.TrimSpace(source) != "" {
		out.source = source
	}
	return &out
}

// ResolveOptions layers the request patch over the named profile over the
// configured defaults, then validates the result.
func (uc *SplitTextUseCase) ResolveOptions(patch domain.SplitOptionsPatch, profile string) (domain.SplitOptions, error) {
	opts := uc.defaults
	if name := strings.TrimSpace(profile); name != "" {
		if uc.profiles == nil {
			return domain.SplitOptions{}, domain.WrapError(domain.ErrProfileNotFound, "resolve options", fmt.Errorf("name=%s", name))
		}
		profilePatch, err := uc.profiles.Get(name)
		if err != nil {
			return domain.SplitOptions{}, err
		}
		opts = profilePatch.Apply(opts)
	}
	opts = patch.Apply(opts)
	if err := opts.Validate(); err != nil {
		return domain.SplitOptions{}, err
	}
	return opts, nil
}

func (uc *SplitTextUseCase) Split(ctx context.Context, req domain.SplitRequest) (*domain.SplitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts, err := uc.ResolveOptions(req.Options, req.Profile)
	if err != nil {
		return nil, err
	}
	chunker, err := uc.newChunker(opts)
	if err != nil {
		return nil, fmt.Errorf("build chunker: %w", err)
	}

	start := time.Now()
	result := chunker.SplitDetailed(req.Text)
	result.Profile = strings.TrimSpace(req.Profile)
	duration := time.Since(start)

	if uc.observer != nil {
		uc.observer.ObserveSplit(uc.source, &result, duration)
	}
	slog.DebugContext(ctx, "split_completed",
		"source", uc.source,
		"absent", req.Text.IsAbsent(),
		"rows", len(result.Rows),
		"tokens", result.Tokens,
		"overflowed", result.Overflowed,
		"padded", result.Padded,
		"duration_ms", float64(duration.Microseconds())/1000.0,
	)
	return &result, nil
}

func (uc *SplitTextUseCase) Profiles() []domain.SplitProfile {
	if uc.profiles == nil {
		return []domain.SplitProfile{}
	}
	return uc.profiles.List()
}
