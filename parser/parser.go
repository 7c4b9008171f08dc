package parser

import (
	"github.com/genelet/skyline/ast"
	"github.com/genelet/skyline/lexer"
	"github.com/genelet/skyline/token"
)

// Parser consumes a token slice and produces a Document. A fresh Parser is
// created per parse call; nothing is shared between calls.
type Parser struct {
	toks    []token.Token
	i       int // cursor into toks
	nesting int // bracket depth; newlines are skippable noise when > 0
}

// Parse tokenizes and parses a complete document. The filename is attached
// to all ranges and may be empty.
func Parse(src []byte, filename string) (*ast.Document, error) {
	toks := lexer.Tokenize(src, filename)
	p := &Parser{toks: toks}
	body, err := p.parseBody(true)
	if err != nil {
		return nil, err
	}
	return &ast.Document{Filename: filename, Body: body}, nil
}

// ParseString is Parse over a string with no filename.
func ParseString(src string) (*ast.Document, error) {
	return Parse([]byte(src), "")
}

// ParseExpression parses one expression from a token slice starting at
// pos. It returns the value and the index of the first token after the
// expression.
func ParseExpression(toks []token.Token, pos int) (ast.Value, int, error) {
	p := &Parser{toks: toks, i: pos}
	v, err := p.parseExpr(lowest)
	if err != nil {
		return nil, p.i, err
	}
	return v, p.i, nil
}

// ParseValue parses a single expression from source text, failing if
// trailing tokens remain.
func ParseValue(src string) (ast.Value, error) {
	toks := lexer.Tokenize([]byte(src), "")
	p := &Parser{toks: toks}
	v, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	if tok := p.cur(); tok.Kind != token.EOF && tok.Kind != token.Newline {
		return nil, expectedError(tok.Range, "end of expression", describe(tok))
	}
	return v, nil
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// skipNoise moves the cursor past comments, and past newlines while
// inside brackets. Comments are skippable whitespace everywhere between
// grammar tokens; newlines are significant only at body level.
func (p *Parser) skipNoise() {
	for p.i < len(p.toks) {
		k := p.toks[p.i].Kind
		if k == token.Comment || (k == token.Newline && p.nesting > 0) {
			p.i++
			continue
		}
		return
	}
}

// cur returns the current significant token. The stream always ends with
// EOF, which is returned forever once reached.
func (p *Parser) cur() token.Token {
	p.skipNoise()
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

// advance moves past the current significant token.
func (p *Parser) advance() {
	p.skipNoise()
	if p.i < len(p.toks) {
		p.i++
	}
}

// expect consumes a token of the given kind or fails.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok := p.cur()
	if tok.Kind != kind {
		return tok, expectedError(tok.Range, kind.String(), describe(tok))
	}
	p.advance()
	return tok, nil
}

// describe renders a token for error messages.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Ident, token.Number:
		return "'" + tok.Text + "'"
	case token.Invalid:
		return tok.Value
	default:
		return tok.Kind.String()
	}
}

// -----------------------------------------------------------------------------
// Structural grammar
// -----------------------------------------------------------------------------

// parseBody parses attributes and blocks until EOF (top level) or the
// closing brace of the enclosing block, which is left unconsumed.
func (p *Parser) parseBody(top bool) (*ast.Body, error) {
	body := &ast.Body{}
	start := p.cur().Range

	for {
		p.skipSeparators()
		tok := p.cur()

		switch tok.Kind {
		case token.EOF:
			if !top {
				return nil, errorf(tok.Range, "unexpected end of file, unclosed block")
			}
			body.SrcRange = token.Range{Filename: start.Filename, Start: start.Start, End: tok.Range.End}
			return body, nil

		case token.RBrace:
			if top {
				return nil, errorf(tok.Range, "unexpected '}' outside of any block")
			}
			body.SrcRange = token.Range{Filename: start.Filename, Start: start.Start, End: tok.Range.End}
			return body, nil

		case token.Invalid:
			return nil, errorf(tok.Range, "%s", tok.Value)

		case token.Ident:
			if err := p.parseBodyItem(body); err != nil {
				return nil, err
			}

		default:
			return nil, expectedError(tok.Range, "attribute name or block keyword", describe(tok))
		}
	}
}

// skipSeparators consumes newlines between body items. Comments are
// already noise for the cursor.
func (p *Parser) skipSeparators() {
	for p.cur().Kind == token.Newline {
		p.advance()
	}
}

// parseBodyItem parses one attribute or block starting at an identifier.
func (p *Parser) parseBodyItem(body *ast.Body) error {
	name := p.cur()
	p.advance()

	if p.cur().Kind == token.Assign {
		p.advance()
		value, err := p.parseExpr(lowest)
		if err != nil {
			return err
		}
		if err := p.expectTerminator(); err != nil {
			return err
		}
		body.Attributes = append(body.Attributes, &ast.Attribute{
			Name:      name.Text,
			Value:     value,
			NameRange: name.Range,
			SrcRange:  token.Range{Filename: name.Range.Filename, Start: name.Range.Start, End: value.Range().End},
		})
		return nil
	}

	// Block: zero or more string labels, then a braced body.
	var labels []string
	for {
		tok := p.cur()
		if tok.Kind == token.String {
			if tok.Interpolated {
				return errorf(tok.Range, "block label must be a plain string")
			}
			labels = append(labels, tok.Value)
			p.advance()
			continue
		}
		break
	}

	if tok := p.cur(); tok.Kind != token.LBrace {
		return expectedError(tok.Range, "'=' or block body", describe(tok))
	}
	p.advance()

	inner, err := p.parseBody(false)
	if err != nil {
		return err
	}
	closing, err := p.expect(token.RBrace)
	if err != nil {
		return err
	}

	body.Blocks = append(body.Blocks, &ast.Block{
		Type:      name.Text,
		Labels:    labels,
		Body:      inner,
		TypeRange: name.Range,
		SrcRange:  token.Range{Filename: name.Range.Filename, Start: name.Range.Start, End: closing.Range.End},
	})
	return nil
}

// expectTerminator requires a newline, EOF or closing brace after an
// attribute definition. The brace stays in the stream.
func (p *Parser) expectTerminator() error {
	tok := p.cur()
	switch tok.Kind {
	case token.Newline:
		p.advance()
		return nil
	case token.EOF, token.RBrace:
		return nil
	case token.Comma:
		return errorf(tok.Range, "attribute definitions must be separated by newlines, not commas")
	default:
		return expectedError(tok.Range, "newline after attribute definition", describe(tok))
	}
}
