// Package ast defines the abstract syntax tree produced by parsing skyline
// configuration text.
//
// Values form a closed set of variants behind the Value interface, so
// consumers dispatch with a type switch instead of a runtime kind string.
// Every node is immutable after parsing and owns its children exclusively:
// the result is a tree, never a graph, and is safe to share read-only
// across goroutines.
package ast

import "github.com/genelet/skyline/token"

// Value is the interface implemented by all expression-value nodes.
type Value interface {
	// Range returns the source span of the node.
	Range() token.Range

	valueNode() // marker to keep the variant set closed
}

// BaseValue carries the source range common to all value nodes.
type BaseValue struct {
	SrcRange token.Range
}

func (b BaseValue) Range() token.Range { return b.SrcRange }
func (b BaseValue) valueNode()         {}

// MakeBase builds the embedded range for a value node.
func MakeBase(rng token.Range) BaseValue {
	return BaseValue{SrcRange: rng}
}

// -----------------------------------------------------------------------------
// Literals
// -----------------------------------------------------------------------------

// StringLit is a fully decoded string literal with no interpolation.
// Heredoc content also lands here once indentation handling is done.
type StringLit struct {
	BaseValue
	Value string
}

// NumberLit is a numeric literal. Raw keeps the exact source spelling so
// serialization does not reformat the number.
type NumberLit struct {
	BaseValue
	Raw   string
	Value float64
}

// BoolLit is true or false.
type BoolLit struct {
	BaseValue
	Value bool
}

// NullLit is the null keyword.
type NullLit struct {
	BaseValue
}

// TemplateLit is a string or heredoc containing ${ interpolation. The raw
// template text is preserved verbatim; the embedded expressions are not
// parsed or substituted here.
type TemplateLit struct {
	BaseValue
	Raw    string
	Marked bool
}

// -----------------------------------------------------------------------------
// Collections
// -----------------------------------------------------------------------------

// ArrayLit is an ordered sequence of values: [a, b, c].
type ArrayLit struct {
	BaseValue
	Items []Value
}

// ObjectEntry is one key/value pair of an object literal, in source order.
type ObjectEntry struct {
	Key      string
	Value    Value
	KeyRange token.Range
}

// ObjectLit is an object literal: {k = v, ...}. Entry order is the source
// order.
type ObjectLit struct {
	BaseValue
	Entries []*ObjectEntry
}

// -----------------------------------------------------------------------------
// Calls, references, operators
// -----------------------------------------------------------------------------

// CallExpr is a function call: name(arg, ...). The call is recorded, not
// evaluated.
type CallExpr struct {
	BaseValue
	Name string
	Args []Value
}

// RefExpr is a dotted reference such as self.host, held as its identifier
// parts in order.
type RefExpr struct {
	BaseValue
	Parts []string
}

// BinaryExpr is a binary operation. Operator expressions are uninterpreted
// pass-through nodes; no reduction to literals happens anywhere in this
// module.
type BinaryExpr struct {
	BaseValue
	Op    token.Kind
	Left  Value
	Right Value
}

// UnaryExpr is a prefix operation: !x or -x.
type UnaryExpr struct {
	BaseValue
	Op      token.Kind
	Operand Value
}

// CondExpr is a ternary conditional: cond ? then : else.
type CondExpr struct {
	BaseValue
	Cond Value
	Then Value
	Else Value
}

// IndexExpr is a bracket index: target[index].
type IndexExpr struct {
	BaseValue
	Target Value
	Index  Value
}

// AttrExpr is attribute access on a non-reference target, such as
// f(x).name. Plain identifier chains collapse into RefExpr instead.
type AttrExpr struct {
	BaseValue
	Target Value
	Name   string
}
