package syntax

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Parse errors. Every error returned by Parse is an *Error wrapping one of
// these, so callers can test the cause with errors.Is.
var (
	// ErrMissingParen indicates a '(' without its closing ')'.
	ErrMissingParen = errors.New("missing closing )")

	// ErrUnexpectedParen indicates a ')' without a matching '('.
	ErrUnexpectedParen = errors.New("unexpected )")

	// ErrMissingRepeatArgument indicates a quantifier with nothing to repeat,
	// including a quantifier applied to another quantifier ("a**").
	ErrMissingRepeatArgument = errors.New("missing argument to repetition operator")

	// ErrMissingExpression indicates an empty pattern, an empty group or an
	// empty alternative.
	ErrMissingExpression = errors.New("missing expression")

	// ErrInvalidChar indicates a character that is neither an ASCII letter or
	// digit nor an operator.
	ErrInvalidChar = errors.New("invalid character")

	// ErrNestingDepth indicates groups nested deeper than the parser allows.
	ErrNestingDepth = errors.New("expression nests too deeply")
)

// Error is a syntax error in a pattern.
// No partial tree is ever returned alongside an Error.
type Error struct {
	// Pattern is the complete pattern text.
	Pattern string

	// Pos is the byte offset in Pattern at which parsing failed.
	Pos int

	// Err is the cause, one of the Err* values of this package.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at position %d in pattern %q: %v", e.Pos, e.Pattern, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}
