package ast

import (
	"strconv"
	"strings"

	"github.com/genelet/skyline/lexer"
	"github.com/genelet/skyline/token"
)

// ValueText renders a value node back to skyline source text. The text is
// canonical rather than byte-identical to the input: spacing is normalized
// and redundant parentheses dropped, but literal values, ordering and
// operator structure are preserved exactly.
func ValueText(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v, 0)
	return sb.String()
}

// DocumentText renders a whole document as formatted source text with
// two-space indentation.
func DocumentText(d *Document) string {
	var sb strings.Builder
	writeBody(&sb, d.Body, 0)
	return sb.String()
}

// writeBody writes attributes then blocks, each on its own line.
func writeBody(sb *strings.Builder, body *Body, level int) {
	leading := indent(level)
	for _, attr := range body.Attributes {
		sb.WriteString(leading)
		sb.WriteString(attr.Name)
		sb.WriteString(" = ")
		writeValue(sb, attr.Value, level)
		sb.WriteByte('\n')
	}
	for _, blk := range body.Blocks {
		sb.WriteString(leading)
		sb.WriteString(blk.Type)
		for _, label := range blk.Labels {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Quote(label))
		}
		sb.WriteString(" {\n")
		writeBody(sb, blk.Body, level+1)
		sb.WriteString(leading)
		sb.WriteString("}\n")
	}
}

func indent(level int) string {
	return strings.Repeat("  ", level)
}

// objectKey writes keys bare only when they would lex as an identifier.
func objectKey(k string) string {
	if lexer.IsIdentifier(k) {
		return k
	}
	return strconv.Quote(k)
}

// HeredocDelimiter picks a terminator for rendering content as a heredoc.
// A content line closes a heredoc when it equals the delimiter after its
// leading whitespace is trimmed, so the delimiter is extended until no
// line can close the body early.
func HeredocDelimiter(content string) string {
	delim := "EOT"
	for closesEarly(content, delim) {
		delim += "_"
	}
	return delim
}

func closesEarly(content, delim string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimLeft(line, " \t") == delim {
			return true
		}
	}
	return false
}

// binding powers used only for minimal parenthesization on output
const (
	bindCond = iota + 1
	bindOr
	bindAnd
	bindEq
	bindRel
	bindAdd
	bindMul
	bindUnary
	bindAtom
)

func opBinding(op token.Kind) int {
	switch op {
	case token.OrOr:
		return bindOr
	case token.AndAnd:
		return bindAnd
	case token.EqEq, token.NotEq:
		return bindEq
	case token.Less, token.LessEq, token.Greater, token.GreaterEq:
		return bindRel
	case token.Plus, token.Minus:
		return bindAdd
	case token.Star, token.Slash, token.Percent:
		return bindMul
	default:
		return bindAtom
	}
}

func valueBinding(v Value) int {
	switch t := v.(type) {
	case *CondExpr:
		return bindCond
	case *BinaryExpr:
		return opBinding(t.Op)
	case *UnaryExpr:
		return bindUnary
	default:
		return bindAtom
	}
}

func writeValue(sb *strings.Builder, v Value, level int) {
	switch t := v.(type) {
	case *StringLit:
		sb.WriteString(strconv.Quote(t.Value))
	case *TemplateLit:
		if strings.Contains(t.Raw, "\n") {
			delim := HeredocDelimiter(t.Raw)
			sb.WriteString("<<")
			sb.WriteString(delim)
			sb.WriteByte('\n')
			sb.WriteString(t.Raw)
			sb.WriteByte('\n')
			sb.WriteString(delim)
			return
		}
		sb.WriteByte('"')
		sb.WriteString(t.Raw)
		sb.WriteByte('"')
	case *NumberLit:
		if t.Raw != "" {
			sb.WriteString(t.Raw)
		} else {
			sb.WriteString(strconv.FormatFloat(t.Value, 'g', -1, 64))
		}
	case *BoolLit:
		sb.WriteString(strconv.FormatBool(t.Value))
	case *NullLit:
		sb.WriteString("null")
	case *ArrayLit:
		sb.WriteByte('[')
		for i, item := range t.Items {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, item, level)
		}
		sb.WriteByte(']')
	case *ObjectLit:
		if len(t.Entries) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{\n")
		inner := indent(level + 1)
		for _, entry := range t.Entries {
			sb.WriteString(inner)
			sb.WriteString(objectKey(entry.Key))
			sb.WriteString(" = ")
			writeValue(sb, entry.Value, level+1)
			sb.WriteByte('\n')
		}
		sb.WriteString(indent(level))
		sb.WriteByte('}')
	case *CallExpr:
		sb.WriteString(t.Name)
		sb.WriteByte('(')
		for i, arg := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, arg, level)
		}
		sb.WriteByte(')')
	case *RefExpr:
		sb.WriteString(strings.Join(t.Parts, "."))
	case *BinaryExpr:
		bind := opBinding(t.Op)
		writeOperand(sb, t.Left, bind, level)
		sb.WriteByte(' ')
		sb.WriteString(t.Op.String())
		sb.WriteByte(' ')
		// left-associative: same-strength right operand keeps parens
		writeOperand(sb, t.Right, bind+1, level)
	case *UnaryExpr:
		sb.WriteString(t.Op.String())
		writeOperand(sb, t.Operand, bindUnary, level)
	case *CondExpr:
		writeOperand(sb, t.Cond, bindCond+1, level)
		sb.WriteString(" ? ")
		writeOperand(sb, t.Then, bindCond+1, level)
		sb.WriteString(" : ")
		// right-associative: a nested conditional stays bare
		writeOperand(sb, t.Else, bindCond, level)
	case *IndexExpr:
		writeOperand(sb, t.Target, bindAtom, level)
		sb.WriteByte('[')
		writeValue(sb, t.Index, level)
		sb.WriteByte(']')
	case *AttrExpr:
		writeOperand(sb, t.Target, bindAtom, level)
		sb.WriteByte('.')
		sb.WriteString(t.Name)
	}
}

func writeOperand(sb *strings.Builder, v Value, minBinding, level int) {
	if valueBinding(v) < minBinding {
		sb.WriteByte('(')
		writeValue(sb, v, level)
		sb.WriteByte(')')
		return
	}
	writeValue(sb, v, level)
}
