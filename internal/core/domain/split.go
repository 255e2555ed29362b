package domain

import (
	"errors"
	"fmt"
)

const (
	DefaultMaxRowLength = 100
	DefaultMaxRows      = 10
)

// SplitOptions is the complete, immutable configuration of a splitter.
type SplitOptions struct {
	TrimSentence     bool `json:"trim_sentence" yaml:"trim_sentence"`
	MaxRowLength     int  `json:"max_row_length" yaml:"max_row_length"`
	MaxRows          int  `json:"max_rows" yaml:"max_rows"`
	FulfillEmptyRows bool `json:"fulfill_empty_rows" yaml:"fulfill_empty_rows"`
}

func DefaultSplitOptions() SplitOptions {
	return SplitOptions{
		MaxRowLength: DefaultMaxRowLength,
		MaxRows:      DefaultMaxRows,
	}
}

func (o SplitOptions) Validate() error {
	var errs []error
	if o.MaxRowLength <= 0 {
		errs = append(errs, fmt.Errorf("max_row_length must be positive, got %d", o.MaxRowLength))
	}
	if o.MaxRows <= 0 {
		errs = append(errs, fmt.Errorf("max_rows must be positive, got %d", o.MaxRows))
	}
	if len(errs) == 0 {
		return nil
	}
	return WrapError(ErrInvalidConfig, "validate split options", errors.Join(errs...))
}

// SplitOptionsPatch carries caller-supplied overrides. Nil fields keep the
// value of whatever options the patch is applied to.
type SplitOptionsPatch struct {
	TrimSentence     *bool `json:"trim_sentence,omitempty" yaml:"trim_sentence,omitempty"`
	MaxRowLength     *int  `json:"max_row_length,omitempty" yaml:"max_row_length,omitempty"`
	MaxRows          *int  `json:"max_rows,omitempty" yaml:"max_rows,omitempty"`
	FulfillEmptyRows *bool `json:"fulfill_empty_rows,omitempty" yaml:"fulfill_empty_rows,omitempty"`
}

func (p SplitOptionsPatch) Apply(base SplitOptions) SplitOptions {
	out := base
	if p.TrimSentence != nil {
		out.TrimSentence = *p.TrimSentence
	}
	if p.MaxRowLength != nil {
		out.MaxRowLength = *p.MaxRowLength
	}
	if p.MaxRows != nil {
		out.MaxRows = *p.MaxRows
	}
	if p.FulfillEmptyRows != nil {
		out.FulfillEmptyRows = *p.FulfillEmptyRows
	}
	return out
}

func (p SplitOptionsPatch) IsEmpty() bool {
	return p.TrimSentence == nil && p.MaxRowLength == nil && p.MaxRows == nil && p.FulfillEmptyRows == nil
}

type SplitResult struct {
	Rows       []string     `json:"rows"`
	Options    SplitOptions `json:"options"`
	Profile    string       `json:"profile,omitempty"`
	Tokens     int          `json:"tokens"`
	Overflowed bool         `json:"overflowed"`
	Padded     int          `json:"padded"`
}

// SplitRequest is the transport-neutral form of a split call. A missing or
// null text field decodes as absent text.
type SplitRequest struct {
	Text    Text              `json:"text"`
	Options SplitOptionsPatch `json:"options"`
	Profile string            `json:"profile,omitempty"`
}

type SplitProfile struct {
	Name    string            `json:"name" yaml:"name"`
	Options SplitOptionsPatch `json:"options" yaml:"options"`
}
