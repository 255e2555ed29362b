// Package chunking lays text out into rows of bounded code-point length.
//
// A split runs four stages: a guard for absent and blank input, a tokenizer
// that separates words from control characters, a chunker that cuts words
// longer than a row, and a packer that fills rows greedily. Concatenating the
// rows always gives back the (optionally trimmed) NFC-normalized input.
package chunking

import (
	"strings"
	"unicode"

	"github.com/freud/split-text-smartly/internal/core/domain"
	"github.com/freud/split-text-smartly/internal/core/ports"
)

type Splitter struct {
	opts domain.SplitOptions
}

// NewSplitter validates opts and returns a splitter bound to them. A Splitter
// holds no mutable state and may be shared between goroutines.
func NewSplitter(opts domain.SplitOptions) (*Splitter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Splitter{opts: opts}, nil
}

// NewPositionalSplitter builds a splitter from the two bounds only, with
// trimming and padding disabled.
func NewPositionalSplitter(maxRowLength, maxRows int) (*Splitter, error) {
	return NewSplitter(domain.SplitOptions{
		MaxRowLength: maxRowLength,
		MaxRows:      maxRows,
	})
}

// DefaultOptions is 100 code points per row, 10 rows, no trimming or padding.
func DefaultOptions() domain.SplitOptions {
	return domain.DefaultSplitOptions()
}

// NewChunker adapts NewSplitter to ports.ChunkerFactory.
func NewChunker(opts domain.SplitOptions) (ports.Chunker, error) {
	s, err := NewSplitter(opts)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Split returns the rows for text.
func (s *Splitter) Split(text domain.Text) []string {
	return s.SplitDetailed(text).Rows
}

// SplitString is Split for text that is known to be present.
func (s *Splitter) SplitString(text string) []string {
	return s.Split(domain.PresentText(text))
}

func (s *Splitter) SplitDetailed(text domain.Text) domain.SplitResult {
	result := domain.SplitResult{
		Rows:    []string{},
		Options: s.opts,
	}

	value, ok := text.Value()
	if !ok {
		return result
	}
	if isBlank(value) {
		result.Rows = []string{value}
		return result
	}

	if s.opts.TrimSentence {
		value = strings.TrimFunc(value, isSpace)
	}

	tokens := chunkTokens(tokenize(value), s.opts.MaxRowLength)
	result.Tokens = len(tokens)

	packed := packRows(tokens, s.opts.MaxRowLength, s.opts.MaxRows)
	result.Rows = packed.strings()
	result.Overflowed = packed.overflowed

	if s.opts.FulfillEmptyRows {
		for len(result.Rows) < s.opts.MaxRows {
			result.Rows = append(result.Rows, "")
			result.Padded++
		}
	}
	return result
}

// isSpace matches the whitespace class used for blank detection and trimming:
// Unicode white space plus the byte order mark, without NEL (U+0085).
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func isBlank(s string) bool {
	for _, r := range s {
		if !isSpace(r) {
			return false
		}
	}
	return true
}
