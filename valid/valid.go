// Package valid implements the structural syntax validator.
//
// Validation is a separate pass from parsing on purpose: it walks the
// token stream without building an AST, never fails regardless of input,
// and reports every problem it finds as a diagnostic with an exact source
// range. Callers who need parsed values use the parser and accept hard
// errors instead; the two entry points stay independent.
package valid

import (
	"github.com/genelet/skyline/diag"
	"github.com/genelet/skyline/lexer"
	"github.com/genelet/skyline/token"
)

// ValidationResult is the outcome of a validation pass. Invalid input is a
// normal, representable result, not an error.
type ValidationResult struct {
	Valid       bool
	Diagnostics diag.Diagnostics
}

// Validate checks source text for structural validity.
func Validate(src []byte, filename string) ValidationResult {
	v := &validator{toks: lexer.Tokenize(src, filename)}
	v.run()
	return ValidationResult{
		Valid:       !v.diags.HasErrors(),
		Diagnostics: v.diags,
	}
}

// ValidateString is Validate over a string with no filename.
func ValidateString(src string) ValidationResult {
	return Validate([]byte(src), "")
}

// openBlock tracks one unclosed brace while scanning.
type openBlock struct {
	brace token.Token     // the opening '{'
	attrs int             // attribute definitions seen directly inside
	names map[string]bool // attribute names seen directly inside
}

type validator struct {
	toks     []token.Token
	i        int
	stack    []openBlock
	topNames map[string]bool
	diags    diag.Diagnostics
}

func (v *validator) errorf(rng token.Range, format string, args ...any) {
	v.diags = v.diags.Append(diag.Error, rng, format, args...)
}

func (v *validator) warnf(rng token.Range, format string, args ...any) {
	v.diags = v.diags.Append(diag.Warning, rng, format, args...)
}

func (v *validator) cur() token.Token {
	if v.i >= len(v.toks) {
		return v.toks[len(v.toks)-1]
	}
	return v.toks[v.i]
}

func (v *validator) advance() {
	if v.i < len(v.toks) {
		v.i++
	}
}

// skipNoise moves past comments and newlines between body items.
func (v *validator) skipNoise() {
	for {
		switch v.cur().Kind {
		case token.Comment, token.Newline:
			v.advance()
		default:
			return
		}
	}
}

// resync skips ahead to the next newline or closing brace so one mistake
// produces one diagnostic.
func (v *validator) resync() {
	for {
		switch v.cur().Kind {
		case token.Newline, token.RBrace, token.EOF:
			return
		default:
			v.advance()
		}
	}
}

func (v *validator) run() {
	for {
		v.skipNoise()
		tok := v.cur()

		switch tok.Kind {
		case token.EOF:
			for _, open := range v.stack {
				v.errorf(open.brace.Range, "unclosed block, '{' is never closed")
			}
			return

		case token.RBrace:
			v.closeBlock(tok)
			v.advance()

		case token.Invalid:
			v.errorf(tok.Range, "%s", tok.Value)
			v.advance()

		case token.Ident:
			v.scanItem()

		default:
			v.errorf(tok.Range, "expected attribute name or block keyword, got %s", tok.Kind)
			v.advance()
			v.resync()
		}
	}
}

func (v *validator) closeBlock(brace token.Token) {
	if len(v.stack) == 0 {
		v.errorf(brace.Range, "unexpected '}' outside of any block")
		return
	}
	open := v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]
	if open.brace.Range.Start.Line == brace.Range.Start.Line && open.attrs > 1 {
		v.errorf(brace.Range, "a single-line block may hold at most one attribute definition")
	}
}

// scanItem validates one attribute or block heading starting at an
// identifier.
func (v *validator) scanItem() {
	name := v.cur()
	v.advance() // identifier
	v.skipComments()

	if v.cur().Kind == token.Assign {
		v.advance()
		v.scanValue()
		v.recordAttr(name)
		return
	}

	// Block heading: string labels then '{'.
	for {
		v.skipComments()
		tok := v.cur()
		if tok.Kind == token.String {
			if tok.Interpolated {
				v.errorf(tok.Range, "block labels must be static strings")
			}
			v.advance()
			continue
		}
		if tok.Kind == token.LBrace {
			v.stack = append(v.stack, openBlock{brace: tok})
			v.advance()
			return
		}
		v.errorf(tok.Range, "invalid block definition, expected '=' or '{'")
		v.resync()
		return
	}
}

// recordAttr counts one attribute definition in the current scope and
// warns when the scope already defines the name. The later definition
// still takes effect, so the duplicate is advisory, not an error.
func (v *validator) recordAttr(name token.Token) {
	var names map[string]bool
	if len(v.stack) > 0 {
		top := &v.stack[len(v.stack)-1]
		top.attrs++
		if top.names == nil {
			top.names = make(map[string]bool)
		}
		names = top.names
	} else {
		if v.topNames == nil {
			v.topNames = make(map[string]bool)
		}
		names = v.topNames
	}
	if names[name.Text] {
		v.warnf(name.Range, "attribute %q is defined more than once", name.Text)
	}
	names[name.Text] = true
}

// scanValue walks one attribute value: a balanced token run ending at a
// newline, EOF or the enclosing block's closing brace. A comma at value
// depth means comma-separated attributes, which the language does not
// allow; a bracket still open when the value ends is unclosed.
func (v *validator) scanValue() {
	v.skipComments()
	var opens []token.Token
	seen := 0
	for {
		tok := v.cur()
		switch tok.Kind {
		case token.EOF:
			if seen == 0 {
				v.errorf(tok.Range, "missing attribute value after '='")
			}
			for _, open := range opens {
				v.errorf(open.Range, "unclosed '%s' in attribute value", open.Kind)
			}
			return
		case token.Newline:
			if len(opens) == 0 {
				if seen == 0 {
					v.errorf(tok.Range, "missing attribute value after '='")
				}
				return
			}
			v.advance()
		case token.Comment:
			v.advance()
		case token.Comma:
			if len(opens) == 0 {
				v.errorf(tok.Range, "attribute definitions must be separated by newlines, not commas")
				v.advance()
				return
			}
			v.advance()
		case token.LParen, token.LBracket, token.LBrace:
			opens = append(opens, tok)
			seen++
			v.advance()
		case token.RParen, token.RBracket:
			if len(opens) > 0 {
				opens = opens[:len(opens)-1]
			}
			seen++
			v.advance()
		case token.RBrace:
			if len(opens) == 0 {
				if seen == 0 {
					v.errorf(tok.Range, "missing attribute value after '='")
				}
				return
			}
			opens = opens[:len(opens)-1]
			v.advance()
		case token.Invalid:
			v.errorf(tok.Range, "%s", tok.Value)
			seen++
			v.advance()
		default:
			seen++
			v.advance()
		}
	}
}

func (v *validator) skipComments() {
	for v.cur().Kind == token.Comment {
		v.advance()
	}
}
