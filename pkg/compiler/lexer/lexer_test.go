package lexer

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/zurustar/pixelpen/pkg/compiler/token"
	"github.com/zurustar/pixelpen/pkg/diag"
)

func TestNextToken(t *testing.T) {
	input := `Spawn(0, 10)
Color("dark blue")
n <- n + 1 ** 2 // comment
GoTo[loop-start](n <= 10 && !(n == 3))
`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
		expectedLine    int
	}{
		{token.KEYWORD, "Spawn", 1},
		{token.LPAREN, "(", 1},
		{token.NUMBER, "0", 1},
		{token.COMMA, ",", 1},
		{token.NUMBER, "10", 1},
		{token.RPAREN, ")", 1},
		{token.NEWLINE, "\n", 1},

		{token.KEYWORD, "Color", 2},
		{token.LPAREN, "(", 2},
		{token.STRING, "dark blue", 2},
		{token.RPAREN, ")", 2},
		{token.NEWLINE, "\n", 2},

		{token.IDENT, "n", 3},
		{token.OPERATOR, "<-", 3},
		{token.IDENT, "n", 3},
		{token.OPERATOR, "+", 3},
		{token.NUMBER, "1", 3},
		{token.OPERATOR, "**", 3},
		{token.NUMBER, "2", 3},
		{token.NEWLINE, "\n", 3},

		{token.KEYWORD, "GoTo", 4},
		{token.LBRACKET, "[", 4},
		{token.IDENT, "loop-start", 4},
		{token.RBRACKET, "]", 4},
		{token.LPAREN, "(", 4},
		{token.IDENT, "n", 4},
		{token.OPERATOR, "<=", 4},
		{token.NUMBER, "10", 4},
		{token.OPERATOR, "&&", 4},
		{token.OPERATOR, "!", 4},
		{token.LPAREN, "(", 4},
		{token.IDENT, "n", 4},
		{token.OPERATOR, "==", 4},
		{token.NUMBER, "3", 4},
		{token.RPAREN, ")", 4},
		{token.RPAREN, ")", 4},
		{token.NEWLINE, "\n", 4},

		{token.EOF, "", 5},
	}

	var diags diag.List
	l := New(input, &diags)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}

		if tok.Line != tt.expectedLine {
			t.Fatalf("tests[%d] - line wrong. expected=%d, got=%d",
				i, tt.expectedLine, tok.Line)
		}
	}

	if !diags.Empty() {
		t.Errorf("unexpected diagnostics: %v", diags.Items())
	}
}

func TestOperators(t *testing.T) {
	input := "+ - * ** / % = == ! != < <= <- > >= && ||"
	expected := []string{"+", "-", "*", "**", "/", "%", "=", "==", "!", "!=", "<", "<=", "<-", ">", ">=", "&&", "||"}

	l := New(input, nil)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != token.OPERATOR || tok.Literal != want {
			t.Fatalf("tests[%d] - expected operator %q, got %s %q", i, want, tok.Type, tok.Literal)
		}
	}
	if tok := l.NextToken(); tok.Type != token.EOF {
		t.Errorf("expected EOF, got %s", tok.Type)
	}
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	l := New("Fill fill DrawRectangle drawrectangle", nil)

	want := []token.TokenType{token.KEYWORD, token.IDENT, token.KEYWORD, token.IDENT}
	for i, typ := range want {
		if tok := l.NextToken(); tok.Type != typ {
			t.Errorf("tests[%d] - expected %s, got %s (%q)", i, typ, tok.Type, tok.Literal)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"42", []string{"42"}},
		{"3.25", []string{"3.25"}},
		// a dot not followed by a digit is not part of the number
		{"7.", []string{"7"}},
	}

	for _, tt := range tests {
		var diags diag.List
		l := New(tt.input, &diags)
		for _, want := range tt.expected {
			tok := l.NextToken()
			if tok.Type != token.NUMBER || tok.Literal != want {
				t.Errorf("%q: expected NUMBER %q, got %s %q", tt.input, want, tok.Type, tok.Literal)
			}
		}
	}
}

func TestColumns(t *testing.T) {
	l := New("x <- 5\n  Fill()", nil)

	want := []struct{ line, column int }{
		{1, 1}, {1, 3}, {1, 6}, {1, 7}, {2, 3}, {2, 7}, {2, 8},
	}
	for i, pos := range want {
		tok := l.NextToken()
		if tok.Line != pos.line || tok.Column != pos.column {
			t.Errorf("tests[%d] %q - expected %d:%d, got %d:%d", i, tok.Literal, pos.line, pos.column, tok.Line, tok.Column)
		}
	}
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedTypes []token.TokenType
		expectedDiags int
	}{
		{"lone ampersand", "a & b", []token.TokenType{token.IDENT, token.IDENT, token.EOF}, 1},
		{"lone pipe", "a | b", []token.TokenType{token.IDENT, token.IDENT, token.EOF}, 1},
		{"invalid characters", "Fill() $ @", []token.TokenType{token.KEYWORD, token.LPAREN, token.RPAREN, token.EOF}, 2},
		{"underscore is not an identifier character", "a_b", []token.TokenType{token.IDENT, token.IDENT, token.EOF}, 1},
		{"unterminated string", "Color(\"red\n", []token.TokenType{token.KEYWORD, token.LPAREN, token.STRING, token.EOF}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var diags diag.List
			l := New(tt.input, &diags)

			for i, want := range tt.expectedTypes {
				if tok := l.NextToken(); tok.Type != want {
					t.Fatalf("tokens[%d] - expected %s, got %s (%q)", i, want, tok.Type, tok.Literal)
				}
			}

			if diags.Len() != tt.expectedDiags {
				t.Fatalf("expected %d diagnostics, got %d: %v", tt.expectedDiags, diags.Len(), diags.Items())
			}
			for _, d := range diags.Items() {
				if d.Kind != diag.Unexpected {
					t.Errorf("expected Unexpected kind, got %s", d.Kind)
				}
			}
		})
	}
}

func TestUnterminatedStringReportedAtStartLine(t *testing.T) {
	var diags diag.List
	l := New("Spawn(0,0)\nColor(\"red\nblue", &diags)

	var str token.Token
	for tok := range l.All() {
		if tok.Type == token.STRING {
			str = tok
		}
	}

	if str.Literal != "red\nblue" {
		t.Errorf("expected the rest of the input as string, got %q", str.Literal)
	}
	items := diags.Items()
	if len(items) != 1 || items[0].Line != 2 {
		t.Fatalf("expected one diagnostic on line 2, got %v", items)
	}
}

func TestCommentKeepsNewline(t *testing.T) {
	l := New("// only a comment\nFill()", nil)

	if tok := l.NextToken(); tok.Type != token.NEWLINE || tok.Line != 1 {
		t.Fatalf("expected NEWLINE on line 1, got %s on line %d", tok.Type, tok.Line)
	}
	if tok := l.NextToken(); tok.Type != token.KEYWORD || tok.Line != 2 {
		t.Fatalf("expected KEYWORD on line 2, got %s on line %d", tok.Type, tok.Line)
	}
}

func TestMultilineStringAdvancesLine(t *testing.T) {
	l := New("\"a\nb\"\nFill", nil)

	l.NextToken() // string
	l.NextToken() // newline
	if tok := l.NextToken(); tok.Line != 3 {
		t.Errorf("expected Fill on line 3, got line %d", tok.Line)
	}
}

func TestAllIsSinglePass(t *testing.T) {
	l := New("a b", nil)

	count := 0
	for range l.All() {
		count++
	}
	if count != 3 {
		t.Errorf("expected 3 tokens including EOF, got %d", count)
	}

	for range l.All() {
		t.Fatal("second All() must yield nothing")
	}

	if tok := l.NextToken(); tok.Type != token.EOF {
		t.Errorf("expected EOF after exhaustion, got %s", tok.Type)
	}
}

func TestUnicodeIdentifier(t *testing.T) {
	var diags diag.List
	l := New("año <- 1", &diags)

	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "año" {
		t.Errorf("expected IDENT año, got %s %q", tok.Type, tok.Literal)
	}
	if tok := l.NextToken(); tok.Column != 5 {
		t.Errorf("expected <- at column 5, got %d", tok.Column)
	}
}

// Property: tokenizing never panics and always terminates with EOF
func TestProperty_LexerIsTotal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("any input ends in EOF and line numbers never decrease", prop.ForAll(
		func(input string) bool {
			var diags diag.List
			l := New(input, &diags)

			lastLine := 1
			for i := 0; i <= len(input)+1; i++ {
				tok := l.NextToken()
				if tok.Line < lastLine {
					return false
				}
				lastLine = tok.Line
				if tok.Type == token.EOF {
					return true
				}
			}
			return false
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
