// Package token defines the lexical tokens of the skyline configuration
// language and the source positions attached to them.
package token

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	// Special tokens
	Invalid Kind = iota // <invalid>
	EOF                 // EOF
	Newline             // <newline>
	Comment             // comment

	// Literals
	Ident   // identifier
	String  // string
	Heredoc // heredoc
	Number  // number
	Bool    // bool
	Null    // null

	// Operators and delimiters
	operatorStart
	Assign    // =
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Bang      // !
	EqEq      // ==
	NotEq     // !=
	Less      // <
	LessEq    // <=
	Greater   // >
	GreaterEq // >=
	AndAnd    // &&
	OrOr      // ||
	Question  // ?
	Colon     // :
	Dot       // .
	Comma     // ,
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	operatorEnd
)

var kindNames = map[Kind]string{
	Invalid:   "invalid token",
	EOF:       "end of file",
	Newline:   "newline",
	Comment:   "comment",
	Ident:     "identifier",
	String:    "string",
	Heredoc:   "heredoc",
	Number:    "number",
	Bool:      "bool",
	Null:      "null",
	Assign:    "=",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
	Bang:      "!",
	EqEq:      "==",
	NotEq:     "!=",
	Less:      "<",
	LessEq:    "<=",
	Greater:   ">",
	GreaterEq: ">=",
	AndAnd:    "&&",
	OrOr:      "||",
	Question:  "?",
	Colon:     ":",
	Dot:       ".",
	Comma:     ",",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	LBracket:  "[",
	RBracket:  "]",
}

// String returns a human-readable name for the kind, suitable for error
// messages.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown token"
}

// IsOperator returns true if the kind is an operator or delimiter.
func (k Kind) IsOperator() bool {
	return k > operatorStart && k < operatorEnd
}

// IsLiteral returns true if the kind is a literal or identifier.
func (k Kind) IsLiteral() bool {
	switch k {
	case Ident, String, Heredoc, Number, Bool, Null:
		return true
	default:
		return false
	}
}

// keywords maps reserved identifier spellings to their token kinds. Any
// other identifier is an ordinary Ident; block keywords are not reserved.
var keywords = map[string]Kind{
	"true":  Bool,
	"false": Bool,
	"null":  Null,
}

// LookupIdent returns the token kind for an identifier spelling, resolving
// the literal keywords true, false and null.
func LookupIdent(name string) Kind {
	if k, ok := keywords[name]; ok {
		return k
	}
	return Ident
}

// Token is a single lexical token. Tokens are immutable once produced by
// the lexer.
type Token struct {
	Kind  Kind
	Text  string // Raw source text of the token
	Value string // Decoded value for strings and heredocs; error detail for Invalid
	Range Range

	// Interpolated is set on String and Heredoc tokens whose content
	// contains a ${ sequence. The lexer only marks the presence of
	// interpolation; Value then holds the raw content verbatim.
	Interpolated bool
}
