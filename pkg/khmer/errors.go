package khmer

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by every conversion.
var (
	ErrSegmentation        = errors.New("cannot segment word")
	ErrGrammar             = errors.New("invalid number grammar")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrEmptyInput          = errors.New("empty input")
	ErrOverflow            = errors.New("value overflows int64")
	ErrOutOfRange          = errors.New("value out of range")
)

// SegmentationError reports text the lexicon cannot segment.
type SegmentationError struct {
	Input   string
	Offset  int // rune offset of Residue in the cleaned input
	Residue string
}

func (e *SegmentationError) Error() string {
	return fmt.Sprintf("cannot segment word: unrecognised %q at offset %d", e.Residue, e.Offset)
}

func (e *SegmentationError) Unwrap() error { return ErrSegmentation }

// GrammarError reports a token sequence that segments but cannot be resolved.
type GrammarError struct {
	Token  string
	Reason string
	Err    error
}

func (e *GrammarError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid number grammar: %s", e.Reason)
	}
	return fmt.Sprintf("invalid number grammar at %q: %s", e.Token, e.Reason)
}

// Unwrap exposes both ErrGrammar and the underlying cause, if any.
func (e *GrammarError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrGrammar, e.Err}
	}
	return []error{ErrGrammar}
}

// InvalidNumberFormatError names a numeral token that cannot be rendered.
type InvalidNumberFormatError struct {
	Token string
	Err   error
}

func (e *InvalidNumberFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid number format: %s: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("invalid number format: %s", e.Token)
}

func (e *InvalidNumberFormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidNumberFormat, e.Err}
	}
	return []error{ErrInvalidNumberFormat}
}

// ExpressionError identifies which whitespace-separated expression of a
// multi-expression input failed.
type ExpressionError struct {
	Index      int
	Expression string
	Err        error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("expression %d (%q): %v", e.Index+1, e.Expression, e.Err)
}

func (e *ExpressionError) Unwrap() error { return e.Err }

// ErrorCode returns a stable identifier for the failure class of err, or ""
// for nil. Surfaces use it for status mapping and metric labels.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSegmentation):
		return "segmentation_error"
	case errors.Is(err, ErrGrammar):
		return "grammar_error"
	case errors.Is(err, ErrInvalidNumberFormat):
		return "invalid_number_format"
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	default:
		return "internal_error"
	}
}
