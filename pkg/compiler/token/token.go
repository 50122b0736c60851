// Package token defines the lexical tokens of the pixelpen language.
package token

// TokenType is the kind of a token.
type TokenType int

const (
	EOF TokenType = iota
	NEWLINE

	KEYWORD  // Spawn, DrawLine, GoTo, ...
	IDENT    // n, loop-start, GetActualX
	NUMBER   // 12, 3.5
	STRING   // "red"
	OPERATOR // + - * ** / % = == ! != < <= <- > >= && ||
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	COMMA    // ,
)

var typeNames = map[TokenType]string{
	EOF:      "EOF",
	NEWLINE:  "NEWLINE",
	KEYWORD:  "KEYWORD",
	IDENT:    "IDENT",
	NUMBER:   "NUMBER",
	STRING:   "STRING",
	OPERATOR: "OPERATOR",
	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	COMMA:    ",",
}

// String returns a readable name for the token type.
func (t TokenType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a single lexical token. Tokens are immutable once produced.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// Is reports whether the token has the given type and literal.
func (t Token) Is(typ TokenType, literal string) bool {
	return t.Type == typ && t.Literal == literal
}

// Describe returns the token as it should appear in a diagnostic.
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "end of file"
	case NEWLINE:
		return "end of line"
	case STRING:
		return `"` + t.Literal + `"`
	}
	return t.Literal
}

// Command keywords.
const (
	Spawn         = "Spawn"
	ReSpawn       = "ReSpawn"
	Color         = "Color"
	Size          = "Size"
	DrawLine      = "DrawLine"
	DrawCircle    = "DrawCircle"
	DrawRectangle = "DrawRectangle"
	Fill          = "Fill"
	GoTo          = "GoTo"
)

var keywords = map[string]bool{
	Spawn:         true,
	ReSpawn:       true,
	Color:         true,
	Size:          true,
	DrawLine:      true,
	DrawCircle:    true,
	DrawRectangle: true,
	Fill:          true,
	GoTo:          true,
}

// LookupIdent returns KEYWORD for reserved words and IDENT otherwise.
// Matching is case-sensitive: "spawn" is an ordinary identifier.
func LookupIdent(ident string) TokenType {
	if keywords[ident] {
		return KEYWORD
	}
	return IDENT
}
