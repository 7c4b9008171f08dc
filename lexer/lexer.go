// Package lexer tokenizes skyline configuration source text.
//
// The lexer is total: any byte sequence produces a token stream ending in
// EOF. Lexical anomalies become Invalid tokens carrying a message and an
// exact range, so strict and lenient consumers can apply their own error
// policy.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/genelet/skyline/token"
)

// Lexer scans skyline source text into tokens.
type Lexer struct {
	src      []byte
	filename string

	ch    rune      // Current rune (0 at EOF)
	width int       // Byte width of current rune
	pos   token.Pos // Position of current rune
}

// New creates a Lexer for the given source. The filename is attached to
// token ranges and may be empty.
func New(src []byte, filename string) *Lexer {
	l := &Lexer{
		src:      src,
		filename: filename,
		pos:      token.Pos{Line: 1, Column: 1},
	}
	l.decode()
	return l
}

// Tokenize scans the entire source and returns all tokens including the
// trailing EOF. It never fails; see the package comment.
func Tokenize(src []byte, filename string) []token.Token {
	l := New(src, filename)
	var toks []token.Token
	for {
		tok := l.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Scan returns the next token. After EOF is returned, every further call
// returns EOF again.
func (l *Lexer) Scan() token.Token {
	l.skipSpace()

	start := l.pos

	if l.ch == 0 {
		return l.make(token.EOF, start)
	}

	switch l.ch {
	case '\n':
		l.next()
		return l.make(token.Newline, start)

	case '#':
		l.scanLineComment()
		return l.make(token.Comment, start)

	case '/':
		if l.peek() == '/' {
			l.scanLineComment()
			return l.make(token.Comment, start)
		}
		if l.peek() == '*' {
			return l.scanBlockComment(start)
		}
		l.next()
		return l.make(token.Slash, start)

	case '"':
		return l.scanString(start)

	case '<':
		l.next()
		if l.ch == '<' {
			return l.scanHeredoc(start)
		}
		if l.ch == '=' {
			l.next()
			return l.make(token.LessEq, start)
		}
		return l.make(token.Less, start)

	case '>':
		l.next()
		if l.ch == '=' {
			l.next()
			return l.make(token.GreaterEq, start)
		}
		return l.make(token.Greater, start)

	case '=':
		l.next()
		if l.ch == '=' {
			l.next()
			return l.make(token.EqEq, start)
		}
		return l.make(token.Assign, start)

	case '!':
		l.next()
		if l.ch == '=' {
			l.next()
			return l.make(token.NotEq, start)
		}
		return l.make(token.Bang, start)

	case '&':
		l.next()
		if l.ch == '&' {
			l.next()
			return l.make(token.AndAnd, start)
		}
		return l.invalid(start, "unexpected '&'")

	case '|':
		l.next()
		if l.ch == '|' {
			l.next()
			return l.make(token.OrOr, start)
		}
		return l.invalid(start, "unexpected '|'")

	case '+':
		l.next()
		return l.make(token.Plus, start)
	case '-':
		l.next()
		return l.make(token.Minus, start)
	case '*':
		l.next()
		return l.make(token.Star, start)
	case '%':
		l.next()
		return l.make(token.Percent, start)
	case '?':
		l.next()
		return l.make(token.Question, start)
	case ':':
		l.next()
		return l.make(token.Colon, start)
	case ',':
		l.next()
		return l.make(token.Comma, start)
	case '(':
		l.next()
		return l.make(token.LParen, start)
	case ')':
		l.next()
		return l.make(token.RParen, start)
	case '{':
		l.next()
		return l.make(token.LBrace, start)
	case '}':
		l.next()
		return l.make(token.RBrace, start)
	case '[':
		l.next()
		return l.make(token.LBracket, start)
	case ']':
		l.next()
		return l.make(token.RBracket, start)

	case '.':
		if isDigit(l.peek()) {
			return l.scanNumber(start)
		}
		l.next()
		return l.make(token.Dot, start)

	default:
		if isDigit(l.ch) {
			return l.scanNumber(start)
		}
		if isIdentStart(l.ch) {
			return l.scanIdent(start)
		}
		ch := l.ch
		l.next()
		return l.invalid(start, "unexpected character '"+string(ch)+"'")
	}
}

// make builds a token of the given kind spanning start to the current
// position, with Text sliced from the source.
func (l *Lexer) make(kind token.Kind, start token.Pos) token.Token {
	return token.Token{
		Kind:  kind,
		Text:  string(l.src[start.Byte:l.pos.Byte]),
		Range: l.span(start),
	}
}

func (l *Lexer) invalid(start token.Pos, msg string) token.Token {
	return token.Token{
		Kind:  token.Invalid,
		Text:  string(l.src[start.Byte:l.pos.Byte]),
		Value: msg,
		Range: l.span(start),
	}
}

func (l *Lexer) span(start token.Pos) token.Range {
	return token.Range{Filename: l.filename, Start: start, End: l.pos}
}

func (l *Lexer) scanLineComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.next()
	}
}

func (l *Lexer) scanBlockComment(start token.Pos) token.Token {
	l.next() // /
	l.next() // *
	for {
		if l.ch == 0 {
			return l.invalid(start, "unterminated block comment")
		}
		if l.ch == '*' && l.peek() == '/' {
			l.next()
			l.next()
			return l.make(token.Comment, start)
		}
		l.next()
	}
}

func (l *Lexer) scanIdent(start token.Pos) token.Token {
	for isIdentContinue(l.ch) {
		l.next()
	}
	tok := l.make(token.LookupIdent(string(l.src[start.Byte:l.pos.Byte])), start)
	return tok
}

func (l *Lexer) scanNumber(start token.Pos) token.Token {
	for isDigit(l.ch) {
		l.next()
	}
	if l.ch == '.' && isDigit(l.peek()) {
		l.next()
		for isDigit(l.ch) {
			l.next()
		}
	}
	return l.make(token.Number, start)
}

// scanString scans a double-quoted string. Escape sequences \" \\ \n \t
// and \uXXXX are decoded into Value; when the content contains ${ the
// token is marked interpolated and Value keeps the raw content verbatim.
func (l *Lexer) scanString(start token.Pos) token.Token {
	l.next() // consume opening quote
	rawStart := l.pos.Byte

	var sb strings.Builder
	for l.ch != 0 && l.ch != '"' && l.ch != '\n' {
		if l.ch == '\\' {
			l.next()
			switch l.ch {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case 'u':
				l.next()
				r, ok := l.scanHexRune()
				if !ok {
					sb.WriteString(`\u`)
					continue
				}
				sb.WriteRune(r)
				continue
			default:
				// Unknown escape passes the character through.
				sb.WriteRune(l.ch)
			}
			l.next()
		} else {
			sb.WriteRune(l.ch)
			l.next()
		}
	}

	if l.ch != '"' {
		return l.invalid(start, "unterminated string")
	}
	raw := string(l.src[rawStart:l.pos.Byte])
	l.next() // consume closing quote

	tok := l.make(token.String, start)
	if strings.Contains(raw, "${") {
		tok.Interpolated = true
		tok.Value = raw
	} else {
		tok.Value = sb.String()
	}
	return tok
}

// scanHexRune reads exactly four hex digits after \u. The cursor is left
// on the first character past the digits.
func (l *Lexer) scanHexRune() (rune, bool) {
	var n rune
	for i := 0; i < 4; i++ {
		v, ok := hexValue(l.ch)
		if !ok {
			return 0, false
		}
		n = n*16 + v
		l.next()
	}
	return n, true
}

// scanHeredoc scans <<IDENT or <<-IDENT through the terminator line. The
// cursor is on the second '<'. The newline ending the terminator line is
// left in the stream so attribute termination still sees it.
func (l *Lexer) scanHeredoc(start token.Pos) token.Token {
	l.next() // second '<'
	flush := false
	if l.ch == '-' {
		flush = true
		l.next()
	}

	delimStart := l.pos.Byte
	for isIdentContinue(l.ch) {
		l.next()
	}
	delim := string(l.src[delimStart:l.pos.Byte])
	if delim == "" {
		return l.invalid(start, "malformed heredoc delimiter")
	}

	// Only horizontal whitespace may follow the delimiter on the
	// introducer line.
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.next()
	}
	if l.ch != '\n' {
		for l.ch != 0 && l.ch != '\n' {
			l.next()
		}
		return l.invalid(start, "malformed heredoc delimiter")
	}
	l.next() // consume introducer newline

	var lines []string
	var indent string
	terminated := false
	for l.ch != 0 {
		lineStart := l.pos.Byte
		for l.ch != 0 && l.ch != '\n' {
			l.next()
		}
		line := string(l.src[lineStart:l.pos.Byte])

		if strings.TrimLeft(line, " \t") == delim {
			indent = line[:len(line)-len(delim)]
			terminated = true
			break
		}
		if l.ch == 0 {
			lines = append(lines, line)
			break
		}
		l.next() // consume content newline
		lines = append(lines, line)
	}
	if !terminated {
		return l.invalid(start, "unterminated heredoc, expected "+delim)
	}

	if flush {
		for i, line := range lines {
			lines[i] = stripIndent(line, indent)
		}
	}
	content := strings.Join(lines, "\n")

	tok := l.make(token.Heredoc, start)
	tok.Value = content
	tok.Interpolated = strings.Contains(content, "${")
	return tok
}

// stripIndent removes the longest prefix of indent that line starts with.
func stripIndent(line, indent string) string {
	n := 0
	for n < len(indent) && n < len(line) && line[n] == indent[n] {
		n++
	}
	return line[n:]
}

func (l *Lexer) skipSpace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.next()
	}
}

// peek returns the rune following the current one without advancing.
func (l *Lexer) peek() rune {
	if l.pos.Byte+l.width >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.src[l.pos.Byte+l.width:])
	return r
}

// next advances to the following rune, maintaining the line count, the
// codepoint column and the byte offset independently.
func (l *Lexer) next() {
	if l.width == 0 {
		return // already at EOF
	}
	l.pos.Byte += l.width
	if l.ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	l.decode()
}

func (l *Lexer) decode() {
	if l.pos.Byte >= len(l.src) {
		l.ch = 0
		l.width = 0
		return
	}
	r, size := utf8.DecodeRune(l.src[l.pos.Byte:])
	l.ch = r
	l.width = size
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// IsIdentifier reports whether s would scan as a single identifier token
// rather than a keyword. Serializers use it to decide when an object key
// may be written bare.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isIdentStart(r) {
				return false
			}
			continue
		}
		if !isIdentContinue(r) {
			return false
		}
	}
	return token.LookupIdent(s) == token.Ident
}

func isIdentStart(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= utf8.RuneSelf
}

func isIdentContinue(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '-'
}

func hexValue(ch rune) (rune, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}
