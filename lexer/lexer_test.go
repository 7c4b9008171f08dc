package lexer

import (
	"testing"

	"github.com/genelet/skyline/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestScanKinds(t *testing.T) {
	tests := []struct {
		src  string
		want []token.Kind
	}{
		{"", []token.Kind{token.EOF}},
		{"name = \"x\"", []token.Kind{token.Ident, token.Assign, token.String, token.EOF}},
		{"a = 1\nb = 2\n", []token.Kind{
			token.Ident, token.Assign, token.Number, token.Newline,
			token.Ident, token.Assign, token.Number, token.Newline, token.EOF}},
		{"true false null", []token.Kind{token.Bool, token.Bool, token.Null, token.EOF}},
		{"svc \"http\" {}", []token.Kind{token.Ident, token.String, token.LBrace, token.RBrace, token.EOF}},
		{"# comment\n// also\n/* block */", []token.Kind{
			token.Comment, token.Newline, token.Comment, token.Newline, token.Comment, token.EOF}},
		{"a == b != c <= d >= e < f > g", []token.Kind{
			token.Ident, token.EqEq, token.Ident, token.NotEq, token.Ident,
			token.LessEq, token.Ident, token.GreaterEq, token.Ident,
			token.Less, token.Ident, token.Greater, token.Ident, token.EOF}},
		{"!a && b || c", []token.Kind{
			token.Bang, token.Ident, token.AndAnd, token.Ident, token.OrOr, token.Ident, token.EOF}},
		{"1 + 2 - 3 * 4 / 5 % 6", []token.Kind{
			token.Number, token.Plus, token.Number, token.Minus, token.Number,
			token.Star, token.Number, token.Slash, token.Number, token.Percent, token.Number, token.EOF}},
		{"a ? b : c", []token.Kind{
			token.Ident, token.Question, token.Ident, token.Colon, token.Ident, token.EOF}},
		{"x.y[0]", []token.Kind{
			token.Ident, token.Dot, token.Ident, token.LBracket, token.Number, token.RBracket, token.EOF}},
		{"f(1, .5)", []token.Kind{
			token.Ident, token.LParen, token.Number, token.Comma, token.Number, token.RParen, token.EOF}},
		{"a-b c_d", []token.Kind{token.Ident, token.Ident, token.EOF}},
		{"@", []token.Kind{token.Invalid, token.EOF}},
		{"&", []token.Kind{token.Invalid, token.EOF}},
		{"|x", []token.Kind{token.Invalid, token.Ident, token.EOF}},
	}
	for _, tt := range tests {
		got := kinds(Tokenize([]byte(tt.src), ""))
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.src, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: token %d is %s, want %s", tt.src, i, got[i], tt.want[i])
			}
		}
	}
}

func TestScanPositions(t *testing.T) {
	toks := Tokenize([]byte("name = \"x\"\nport = 80\n"), "test.hcl")

	want := []struct {
		kind       token.Kind
		line, col  int
		byteOffset int
	}{
		{token.Ident, 1, 1, 0},
		{token.Assign, 1, 6, 5},
		{token.String, 1, 8, 7},
		{token.Newline, 1, 11, 10},
		{token.Ident, 2, 1, 11},
		{token.Assign, 2, 6, 16},
		{token.Number, 2, 8, 18},
		{token.Newline, 2, 10, 20},
		{token.EOF, 3, 1, 21},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		got := toks[i]
		if got.Kind != w.kind {
			t.Errorf("token %d kind %s, want %s", i, got.Kind, w.kind)
		}
		start := got.Range.Start
		if start.Line != w.line || start.Column != w.col || start.Byte != w.byteOffset {
			t.Errorf("token %d start %d:%d byte %d, want %d:%d byte %d",
				i, start.Line, start.Column, start.Byte, w.line, w.col, w.byteOffset)
		}
		if got.Range.Filename != "test.hcl" {
			t.Errorf("token %d filename %q", i, got.Range.Filename)
		}
	}
}

// Columns count codepoints while byte offsets count UTF-8 bytes.
func TestMultibytePositions(t *testing.T) {
	toks := Tokenize([]byte(`π = "α"`), "")

	ident := toks[0]
	if ident.Kind != token.Ident || ident.Text != "π" {
		t.Fatalf("first token %v", ident)
	}
	if ident.Range.End.Column != 2 || ident.Range.End.Byte != 2 {
		t.Errorf("ident end %d:%d", ident.Range.End.Column, ident.Range.End.Byte)
	}

	str := toks[2]
	if str.Kind != token.String || str.Value != "α" {
		t.Fatalf("third token %v", str)
	}
	if str.Range.Start.Column != 5 || str.Range.Start.Byte != 5 {
		t.Errorf("string start %d:%d", str.Range.Start.Column, str.Range.Start.Byte)
	}
	if str.Range.End.Column != 8 || str.Range.End.Byte != 9 {
		t.Errorf("string end %d:%d", str.Range.End.Column, str.Range.End.Byte)
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"plain"`, "plain"},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"quote\"inside"`, `quote"inside`},
		{`"back\\slash"`, `back\slash`},
		{`"A"`, "A"},
		{`"\q"`, "q"},
	}
	for _, tt := range tests {
		toks := Tokenize([]byte(tt.src), "")
		if toks[0].Kind != token.String {
			t.Errorf("%q: kind %s", tt.src, toks[0].Kind)
			continue
		}
		if toks[0].Value != tt.want {
			t.Errorf("%q: value %q, want %q", tt.src, toks[0].Value, tt.want)
		}
		if toks[0].Interpolated {
			t.Errorf("%q: unexpectedly interpolated", tt.src)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	toks := Tokenize([]byte("\"open\n"), "")
	if toks[0].Kind != token.Invalid {
		t.Fatalf("kind %s", toks[0].Kind)
	}
	if toks[0].Value != "unterminated string" {
		t.Errorf("message %q", toks[0].Value)
	}
}

func TestInterpolationMarking(t *testing.T) {
	toks := Tokenize([]byte(`url = "https://${host}/api"`), "")
	str := toks[2]
	if str.Kind != token.String || !str.Interpolated {
		t.Fatalf("token %v", str)
	}
	// raw text is preserved verbatim, nothing inside ${ } is touched
	if str.Value != "https://${host}/api" {
		t.Errorf("value %q", str.Value)
	}
}

func TestHeredoc(t *testing.T) {
	toks := Tokenize([]byte("doc = <<EOT\nhello\nworld\nEOT\n"), "")
	hd := toks[2]
	if hd.Kind != token.Heredoc {
		t.Fatalf("kind %s", hd.Kind)
	}
	if hd.Value != "hello\nworld" {
		t.Errorf("value %q", hd.Value)
	}
	// terminator newline stays in the stream
	if toks[3].Kind != token.Newline {
		t.Errorf("token after heredoc is %s", toks[3].Kind)
	}
}

func TestFlushHeredoc(t *testing.T) {
	toks := Tokenize([]byte("doc = <<-EOT\n    a\n    b\n    EOT\n"), "")
	hd := toks[2]
	if hd.Kind != token.Heredoc {
		t.Fatalf("kind %s", hd.Kind)
	}
	if hd.Value != "a\nb" {
		t.Errorf("value %q", hd.Value)
	}
}

func TestFlushHeredocUnevenIndent(t *testing.T) {
	// the terminator's indent is the prefix; deeper lines keep the rest
	toks := Tokenize([]byte("doc = <<-EOT\n    a\n      b\n  c\n  EOT\n"), "")
	hd := toks[2]
	if hd.Value != "  a\n    b\nc" {
		t.Errorf("value %q", hd.Value)
	}
}

func TestHeredocInterpolation(t *testing.T) {
	toks := Tokenize([]byte("doc = <<EOT\nhello ${name}\nEOT\n"), "")
	hd := toks[2]
	if !hd.Interpolated {
		t.Errorf("heredoc with ${ not marked")
	}
	if hd.Value != "hello ${name}" {
		t.Errorf("value %q", hd.Value)
	}
}

func TestMalformedHeredoc(t *testing.T) {
	tests := []string{
		"doc = <<EOT extra\nx\nEOT\n",
		"doc = <<\nx\n",
	}
	for _, src := range tests {
		toks := Tokenize([]byte(src), "")
		if toks[2].Kind != token.Invalid {
			t.Errorf("%q: kind %s", src, toks[2].Kind)
			continue
		}
		if toks[2].Value != "malformed heredoc delimiter" {
			t.Errorf("%q: message %q", src, toks[2].Value)
		}
	}
}

func TestUnterminatedHeredoc(t *testing.T) {
	toks := Tokenize([]byte("doc = <<EOT\nnever ends"), "")
	if toks[2].Kind != token.Invalid {
		t.Fatalf("kind %s", toks[2].Kind)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	toks := Tokenize([]byte("/* open"), "")
	if toks[0].Kind != token.Invalid {
		t.Fatalf("kind %s", toks[0].Kind)
	}
}

func TestNumbers(t *testing.T) {
	tests := []string{"0", "42", "3.14", ".5", "100.001"}
	for _, src := range tests {
		toks := Tokenize([]byte(src), "")
		if toks[0].Kind != token.Number || toks[0].Text != src {
			t.Errorf("%q: %v", src, toks[0])
		}
	}
}

func BenchmarkTokenize(b *testing.B) {
	src := []byte(`name = "x"
tags = ["a", "b", "c"]
svc "http" "web" {
  listen = "127.0.0.1:8080"
  retry = 3 + 2 * limit
  doc = <<EOT
multi
line
EOT
}
`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Tokenize(src, "bench.hcl")
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"name", true},
		{"_x", true},
		{"a-b", true},
		{"port2", true},
		{"π", true},
		{"", false},
		{"a b", false},
		{"9x", false},
		{"a.b", false},
		{"true", false},
		{"null", false},
	}
	for _, tt := range tests {
		if got := IsIdentifier(tt.in); got != tt.want {
			t.Errorf("IsIdentifier(%q) = %t, want %t", tt.in, got, tt.want)
		}
	}
}
