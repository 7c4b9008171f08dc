// Package diag defines structured, non-throwing syntax diagnostics.
//
// Diagnostics are the representable-problem half of the module's error
// design: the validator accumulates them for any input and never fails,
// while the parser aborts with hard errors. A Diagnostic is self-contained
// for comparison against expectation fixtures; it never references AST
// nodes.
package diag

import (
	"fmt"
	"strings"

	"github.com/genelet/skyline/token"
)

// Severity ranks a diagnostic.
type Severity int

const (
	// Error marks input the language does not accept.
	Error Severity = iota
	// Warning marks advisory findings that leave the input valid, such
	// as an attribute defined more than once in the same body.
	Warning
)

// String returns "error" or "warning".
func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one problem found in source text, with the exact range it
// covers.
type Diagnostic struct {
	Severity Severity
	Message  string
	Range    token.Range
}

// String returns "severity: range: message".
func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Range, d.Message)
}

// Diagnostics is an ordered accumulation of diagnostics. It implements
// error so callers may surface a non-empty list directly.
type Diagnostics []*Diagnostic

// Append adds a diagnostic and returns the extended list.
func (ds Diagnostics) Append(severity Severity, rng token.Range, format string, args ...any) Diagnostics {
	return append(ds, &Diagnostic{
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
		Range:    rng,
	})
}

// HasErrors returns true if any diagnostic has Error severity.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Error joins all messages, satisfying the error interface.
func (ds Diagnostics) Error() string {
	switch len(ds) {
	case 0:
		return "no diagnostics"
	case 1:
		return ds[0].String()
	default:
		var sb strings.Builder
		sb.WriteString(ds[0].String())
		fmt.Fprintf(&sb, " (and %d more diagnostics)", len(ds)-1)
		return sb.String()
	}
}
