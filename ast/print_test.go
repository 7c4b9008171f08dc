package ast

import (
	"testing"

	"github.com/genelet/skyline/token"
)

func lit(f float64, raw string) *NumberLit {
	return &NumberLit{Raw: raw, Value: f}
}

func bin(op token.Kind, left, right Value) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right}
}

func TestValueTextParens(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{
			"higher precedence needs no parens",
			bin(token.Plus, lit(1, "1"), bin(token.Star, lit(2, "2"), lit(3, "3"))),
			"1 + 2 * 3",
		},
		{
			"lower precedence keeps parens",
			bin(token.Star, bin(token.Plus, lit(1, "1"), lit(2, "2")), lit(3, "3")),
			"(1 + 2) * 3",
		},
		{
			"left associativity drops parens on the left",
			bin(token.Minus, bin(token.Minus, lit(10, "10"), lit(4, "4")), lit(3, "3")),
			"10 - 4 - 3",
		},
		{
			"right operand of same strength keeps parens",
			bin(token.Minus, lit(10, "10"), bin(token.Minus, lit(4, "4"), lit(3, "3"))),
			"10 - (4 - 3)",
		},
		{
			"nested conditional stays bare in else position",
			&CondExpr{
				Cond: &RefExpr{Parts: []string{"a"}},
				Then: &RefExpr{Parts: []string{"b"}},
				Else: &CondExpr{
					Cond: &RefExpr{Parts: []string{"c"}},
					Then: &RefExpr{Parts: []string{"d"}},
					Else: &RefExpr{Parts: []string{"e"}},
				},
			},
			"a ? b : c ? d : e",
		},
		{
			"unary over access",
			&UnaryExpr{Op: token.Minus, Operand: &RefExpr{Parts: []string{"a", "b"}}},
			"-a.b",
		},
		{
			"unary over binary keeps parens",
			&UnaryExpr{Op: token.Bang, Operand: bin(token.AndAnd, &RefExpr{Parts: []string{"a"}}, &RefExpr{Parts: []string{"b"}})},
			"!(a && b)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValueText(tt.v); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueTextShapes(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{&StringLit{Value: "x"}, `"x"`},
		{&StringLit{Value: "a\nb"}, `"a\nb"`},
		{&TemplateLit{Raw: "https://${host}/api", Marked: true}, `"https://${host}/api"`},
		{&BoolLit{Value: true}, "true"},
		{&NullLit{}, "null"},
		{lit(2.5, "2.5"), "2.5"},
		{lit(2.5, ""), "2.5"},
		{&ArrayLit{Items: []Value{lit(1, "1"), &StringLit{Value: "s"}}}, `[1, "s"]`},
		{&CallExpr{Name: "vault", Args: []Value{&StringLit{Value: "kv"}}}, `vault("kv")`},
		{&RefExpr{Parts: []string{"self", "net", "ip"}}, "self.net.ip"},
		{
			&IndexExpr{Target: &RefExpr{Parts: []string{"xs"}}, Index: lit(0, "0")},
			"xs[0]",
		},
		{
			&AttrExpr{Target: &CallExpr{Name: "f"}, Name: "out"},
			"f().out",
		},
	}
	for _, tt := range tests {
		if got := ValueText(tt.v); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestTemplateTextHeredoc(t *testing.T) {
	got := ValueText(&TemplateLit{Raw: "hello ${name}\nbye", Marked: true})
	want := "<<EOT\nhello ${name}\nbye\nEOT"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDocumentText(t *testing.T) {
	doc := &Document{
		Body: &Body{
			Attributes: []*Attribute{
				{Name: "name", Value: &StringLit{Value: "x"}},
			},
			Blocks: []*Block{
				{
					Type:   "svc",
					Labels: []string{"http", "web"},
					Body: &Body{
						Attributes: []*Attribute{
							{Name: "listen", Value: &StringLit{Value: "127.0.0.1:8080"}},
						},
					},
				},
			},
		},
	}
	want := "name = \"x\"\nsvc \"http\" \"web\" {\n  listen = \"127.0.0.1:8080\"\n}\n"
	if got := DocumentText(doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestObjectText(t *testing.T) {
	obj := &ObjectLit{Entries: []*ObjectEntry{
		{Key: "cpu", Value: lit(2, "2")},
		{Key: "mem", Value: lit(512, "512")},
	}}
	want := "{\n  cpu = 2\n  mem = 512\n}"
	if got := ValueText(obj); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTemplateTextDelimiterCollision(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"x\nEOT\ny", "<<EOT_\nx\nEOT\ny\nEOT_"},
		{"EOT\nEOT_", "<<EOT__\nEOT\nEOT_\nEOT__"},
		{"a\n  EOT\nb", "<<EOT_\na\n  EOT\nb\nEOT_"},
	}
	for _, tt := range tests {
		got := ValueText(&TemplateLit{Raw: tt.raw, Marked: true})
		if got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestObjectTextQuotedKeys(t *testing.T) {
	obj := &ObjectLit{Entries: []*ObjectEntry{
		{Key: "a b", Value: lit(1, "1")},
		{Key: "true", Value: lit(2, "2")},
		{Key: "plain", Value: lit(3, "3")},
	}}
	want := "{\n  \"a b\" = 1\n  \"true\" = 2\n  plain = 3\n}"
	if got := ValueText(obj); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
