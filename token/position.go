package token

import "fmt"

// Pos is a position in source text.
//
// Line and Column are 1-based. Column counts Unicode codepoints, not
// bytes; Byte is the 0-based byte offset into the UTF-8 source. This split
// is a compatibility contract with the external specification corpus and
// must not change.
type Pos struct {
	Line   int // Line number, 1-based
	Column int // Column in codepoints, 1-based
	Byte   int // Byte offset, 0-based
}

// String returns "line:column".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid returns true if the position has been set.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// Before returns true if p is before other in the source.
func (p Pos) Before(other Pos) bool {
	return p.Byte < other.Byte
}

// Range is a contiguous span of source text from Start (inclusive) to End
// (exclusive).
type Range struct {
	Filename string
	Start    Pos
	End      Pos
}

// MakeRange builds a Range between two positions.
func MakeRange(start, end Pos) Range {
	return Range{Start: start, End: end}
}

// String returns "filename:line:column-line:column", omitting the filename
// when unset and the end when the range covers a single line.
func (r Range) String() string {
	prefix := ""
	if r.Filename != "" {
		prefix = r.Filename + ":"
	}
	if r.Start.Line == r.End.Line {
		return fmt.Sprintf("%s%d:%d-%d", prefix, r.Start.Line, r.Start.Column, r.End.Column)
	}
	return fmt.Sprintf("%s%s-%s", prefix, r.Start, r.End)
}

// Contains returns true if the position falls inside the range.
func (r Range) Contains(p Pos) bool {
	return p.Byte >= r.Start.Byte && p.Byte < r.End.Byte
}
