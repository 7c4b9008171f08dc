package parser

import (
	"strconv"

	"github.com/genelet/skyline/ast"
	"github.com/genelet/skyline/token"
)

// Precedence levels for Pratt parsing, low to high. Parenthesized groups
// restart at lowest.
const (
	lowest  int = iota
	condID      // ?:
	logicOr     // ||
	logicAnd    // &&
	equality    // == !=
	relation    // < <= > >=
	sum         // + -
	product     // * / %
	prefix      // !x -x
	postfix     // .attr [index] call()
)

// precedences maps infix operator tokens to their binding strength.
var precedences = map[token.Kind]int{
	token.Question:  condID,
	token.OrOr:      logicOr,
	token.AndAnd:    logicAnd,
	token.EqEq:      equality,
	token.NotEq:     equality,
	token.Less:      relation,
	token.LessEq:    relation,
	token.Greater:   relation,
	token.GreaterEq: relation,
	token.Plus:      sum,
	token.Minus:     sum,
	token.Star:      product,
	token.Slash:     product,
	token.Percent:   product,
	token.Dot:       postfix,
	token.LBracket:  postfix,
}

// parseExpr is the precedence-climbing entry point. All binary operators
// are left-associative; the conditional operator is right-associative.
func (p *Parser) parseExpr(prec int) (ast.Value, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		opPrec, ok := precedences[p.cur().Kind]
		if !ok || opPrec <= prec {
			return left, nil
		}
		left, err = p.parseInfix(left, opPrec)
		if err != nil {
			return nil, err
		}
	}
}

// parsePrefix dispatches on the leading token of an expression.
func (p *Parser) parsePrefix() (ast.Value, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.String, token.Heredoc:
		p.advance()
		if tok.Interpolated {
			return &ast.TemplateLit{Raw: tok.Value, Marked: true, // interpolation recorded, never substituted
				BaseValue: ast.MakeBase(tok.Range)}, nil
		}
		return &ast.StringLit{Value: tok.Value, BaseValue: ast.MakeBase(tok.Range)}, nil

	case token.Number:
		p.advance()
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, errorf(tok.Range, "malformed number literal %q", tok.Text)
		}
		return &ast.NumberLit{Raw: tok.Text, Value: f, BaseValue: ast.MakeBase(tok.Range)}, nil

	case token.Bool:
		p.advance()
		return &ast.BoolLit{Value: tok.Text == "true", BaseValue: ast.MakeBase(tok.Range)}, nil

	case token.Null:
		p.advance()
		return &ast.NullLit{BaseValue: ast.MakeBase(tok.Range)}, nil

	case token.Ident:
		return p.parseIdent()

	case token.Minus, token.Bang:
		p.advance()
		operand, err := p.parseExpr(prefix)
		if err != nil {
			return nil, err
		}
		rng := token.Range{Filename: tok.Range.Filename, Start: tok.Range.Start, End: operand.Range().End}
		return &ast.UnaryExpr{Op: tok.Kind, Operand: operand, BaseValue: ast.MakeBase(rng)}, nil

	case token.LParen:
		p.advance()
		p.nesting++
		inner, err := p.parseExpr(lowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, errorf(p.cur().Range, "unmatched '(', expected ')'")
		}
		p.nesting--
		return inner, nil

	case token.LBracket:
		return p.parseArray()

	case token.LBrace:
		return p.parseObject()

	case token.Invalid:
		return nil, errorf(tok.Range, "%s", tok.Value)

	default:
		return nil, expectedError(tok.Range, "expression", describe(tok))
	}
}

func (p *Parser) parseInfix(left ast.Value, opPrec int) (ast.Value, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.Question:
		return p.parseConditional(left)
	case token.Dot:
		return p.parseAttrAccess(left)
	case token.LBracket:
		return p.parseIndex(left)
	default:
		p.advance()
		right, err := p.parseExpr(opPrec)
		if err != nil {
			return nil, err
		}
		rng := token.Range{Filename: tok.Range.Filename, Start: left.Range().Start, End: right.Range().End}
		return &ast.BinaryExpr{Op: tok.Kind, Left: left, Right: right, BaseValue: ast.MakeBase(rng)}, nil
	}
}

// parseConditional parses cond ? then : else. The else branch re-enters
// below the conditional level, making ?: right-associative.
func (p *Parser) parseConditional(cond ast.Value) (ast.Value, error) {
	p.advance() // ?
	then, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	els, err := p.parseExpr(condID - 1)
	if err != nil {
		return nil, err
	}
	rng := token.Range{Filename: cond.Range().Filename, Start: cond.Range().Start, End: els.Range().End}
	return &ast.CondExpr{Cond: cond, Then: then, Else: els, BaseValue: ast.MakeBase(rng)}, nil
}

// parseIdent parses an identifier head: a function call when immediately
// followed by an argument list, otherwise a reference.
func (p *Parser) parseIdent() (ast.Value, error) {
	name := p.cur()
	p.advance()

	if p.cur().Kind == token.LParen {
		return p.parseCall(name)
	}
	return &ast.RefExpr{Parts: []string{name.Text}, BaseValue: ast.MakeBase(name.Range)}, nil
}

func (p *Parser) parseCall(name token.Token) (ast.Value, error) {
	p.advance() // (
	p.nesting++
	var args []ast.Value
	for p.cur().Kind != token.RParen {
		arg, err := p.parseExpr(lowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}
	closing, err := p.expect(token.RParen)
	if err != nil {
		return nil, errorf(p.cur().Range, "unterminated function call, expected ')'")
	}
	p.nesting--
	rng := token.Range{Filename: name.Range.Filename, Start: name.Range.Start, End: closing.Range.End}
	return &ast.CallExpr{Name: name.Text, Args: args, BaseValue: ast.MakeBase(rng)}, nil
}

// parseAttrAccess extends a plain reference chain in place; any other
// target becomes an attribute-access node.
func (p *Parser) parseAttrAccess(target ast.Value) (ast.Value, error) {
	p.advance() // .
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	rng := token.Range{Filename: target.Range().Filename, Start: target.Range().Start, End: name.Range.End}
	if ref, ok := target.(*ast.RefExpr); ok {
		parts := make([]string, len(ref.Parts)+1)
		copy(parts, ref.Parts)
		parts[len(ref.Parts)] = name.Text
		return &ast.RefExpr{Parts: parts, BaseValue: ast.MakeBase(rng)}, nil
	}
	return &ast.AttrExpr{Target: target, Name: name.Text, BaseValue: ast.MakeBase(rng)}, nil
}

func (p *Parser) parseIndex(target ast.Value) (ast.Value, error) {
	p.advance() // [
	p.nesting++
	index, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	closing, err := p.expect(token.RBracket)
	if err != nil {
		return nil, errorf(p.cur().Range, "unmatched '[', expected ']'")
	}
	p.nesting--
	rng := token.Range{Filename: target.Range().Filename, Start: target.Range().Start, End: closing.Range.End}
	return &ast.IndexExpr{Target: target, Index: index, BaseValue: ast.MakeBase(rng)}, nil
}

// parseArray parses [e, e, ...] with a tolerated trailing comma.
func (p *Parser) parseArray() (ast.Value, error) {
	open := p.cur()
	p.advance()
	p.nesting++
	var items []ast.Value
	for p.cur().Kind != token.RBracket {
		item, err := p.parseExpr(lowest)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.cur().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}
	closing, err := p.expect(token.RBracket)
	if err != nil {
		return nil, errorf(p.cur().Range, "unterminated array, expected ']'")
	}
	p.nesting--
	rng := token.Range{Filename: open.Range.Filename, Start: open.Range.Start, End: closing.Range.End}
	return &ast.ArrayLit{Items: items, BaseValue: ast.MakeBase(rng)}, nil
}

// parseObject parses {k = v, ...}. Keys are identifiers or plain strings;
// '=' and ':' separate keys from values interchangeably. Entries end with
// a comma or a newline; the trailing comma is tolerated.
func (p *Parser) parseObject() (ast.Value, error) {
	open := p.cur()
	p.advance()
	p.nesting++
	var entries []*ast.ObjectEntry
	for p.cur().Kind != token.RBrace {
		keyTok := p.cur()
		var key string
		switch keyTok.Kind {
		case token.Ident:
			key = keyTok.Text
		case token.String:
			if keyTok.Interpolated {
				return nil, errorf(keyTok.Range, "object key must be a plain string")
			}
			key = keyTok.Value
		default:
			return nil, expectedError(keyTok.Range, "object key", describe(keyTok))
		}
		p.advance()

		if sep := p.cur(); sep.Kind != token.Assign && sep.Kind != token.Colon {
			return nil, expectedError(sep.Range, "'=' or ':' after object key", describe(sep))
		}
		p.advance()

		value, err := p.parseExpr(lowest)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &ast.ObjectEntry{Key: key, Value: value, KeyRange: keyTok.Range})

		if p.cur().Kind == token.Comma {
			p.advance()
		}
	}
	closing, err := p.expect(token.RBrace)
	if err != nil {
		return nil, errorf(p.cur().Range, "unterminated object, expected '}'")
	}
	p.nesting--
	rng := token.Range{Filename: open.Range.Filename, Start: open.Range.Start, End: closing.Range.End}
	return &ast.ObjectLit{Entries: entries, BaseValue: ast.MakeBase(rng)}, nil
}
