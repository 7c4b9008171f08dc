// Package parser builds skyline documents from token streams: a recursive
// descent structural parser over bodies and blocks, with a Pratt
// expression parser for attribute values.
package parser

import (
	"fmt"

	"github.com/genelet/skyline/token"
)

// SyntaxError is a hard parse failure. It aborts the parse that produced
// it; there is no partial-AST recovery. The range always points at the
// offending token.
type SyntaxError struct {
	Range   token.Range
	Message string
}

// Error returns the message prefixed with the source range.
func (e *SyntaxError) Error() string {
	if e.Range.Start.IsValid() {
		return fmt.Sprintf("%s: %s", e.Range, e.Message)
	}
	return e.Message
}

// errorf creates a SyntaxError at the given range.
func errorf(rng token.Range, format string, args ...any) *SyntaxError {
	return &SyntaxError{Range: rng, Message: fmt.Sprintf(format, args...)}
}

// expectedError reports an unexpected token.
func expectedError(rng token.Range, want, got string) *SyntaxError {
	return errorf(rng, "expected %s, got %s", want, got)
}
