// Package lexer provides lexical analysis for pixelpen programs.
//
// The lexer is pull-based: each call to NextToken scans just enough input to
// produce one token. Lexical errors are recorded in the diagnostics list and
// scanning carries on with the next character.
package lexer

import (
	"iter"
	"unicode"
	"unicode/utf8"

	"github.com/zurustar/pixelpen/pkg/compiler/token"
	"github.com/zurustar/pixelpen/pkg/diag"
)

const eof = rune(0)

// Lexer tokenizes pixelpen source code.
type Lexer struct {
	input        string
	position     int  // byte offset of ch
	readPosition int  // byte offset after ch
	ch           rune // current char
	line         int  // line of ch
	column       int  // column of ch, in runes
	diags        *diag.List
	done         bool // EOF already produced
	consumed     bool // All() already handed out
}

// New creates a Lexer over input. Lexical errors are appended to diags.
func New(input string, diags *diag.List) *Lexer {
	if diags == nil {
		diags = &diag.List{}
	}
	l := &Lexer{
		input: input,
		line:  1,
		diags: diags,
	}
	l.readChar()
	return l
}

// NextToken returns the next token. Once the input is exhausted it keeps
// returning EOF.
func (l *Lexer) NextToken() token.Token {
	for {
		l.skipBlanks()

		line, column := l.line, l.column

		switch ch := l.ch; {
		case ch == eof && l.position >= len(l.input):
			l.done = true
			return token.Token{Type: token.EOF, Line: line, Column: column}

		case ch == '\n':
			l.readChar()
			return token.Token{Type: token.NEWLINE, Literal: "\n", Line: line, Column: column}

		case isLetter(ch):
			ident := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(ident), Literal: ident, Line: line, Column: column}

		case isDigit(ch):
			return token.Token{Type: token.NUMBER, Literal: l.readNumber(), Line: line, Column: column}

		case ch == '"':
			return token.Token{Type: token.STRING, Literal: l.readString(), Line: line, Column: column}

		case ch == '/' && l.peekChar() == '/':
			l.skipComment()
			continue
		}

		if tok, ok := l.readPunct(line, column); ok {
			return tok
		}
	}
}

// All exposes the remaining tokens, EOF included, as a sequence. The lexer is
// forward-only, so the sequence can be ranged over once; later calls yield
// nothing.
func (l *Lexer) All() iter.Seq[token.Token] {
	if l.consumed {
		return func(func(token.Token) bool) {}
	}
	l.consumed = true
	return func(yield func(token.Token) bool) {
		for !l.done {
			if !yield(l.NextToken()) {
				return
			}
		}
	}
}

// GetSource returns the source code being tokenized.
func (l *Lexer) GetSource() string {
	return l.input
}

// Diagnostics returns the list lexical errors are recorded in.
func (l *Lexer) Diagnostics() *diag.List {
	return l.diags
}

// readPunct scans operators and delimiters. It returns false when the current
// character produced a diagnostic instead of a token.
func (l *Lexer) readPunct(line, column int) (token.Token, bool) {
	ch := l.ch
	simple := func(t token.TokenType) (token.Token, bool) {
		l.readChar()
		return token.Token{Type: t, Literal: string(ch), Line: line, Column: column}, true
	}
	op := func(lit string) (token.Token, bool) {
		for range utf8.RuneCountInString(lit) {
			l.readChar()
		}
		return token.Token{Type: token.OPERATOR, Literal: lit, Line: line, Column: column}, true
	}
	next := l.peekChar()

	switch ch {
	case '(':
		return simple(token.LPAREN)
	case ')':
		return simple(token.RPAREN)
	case '[':
		return simple(token.LBRACKET)
	case ']':
		return simple(token.RBRACKET)
	case ',':
		return simple(token.COMMA)
	case '+', '-', '/', '%':
		return op(string(ch))
	case '*':
		if next == '*' {
			return op("**")
		}
		return op("*")
	case '=', '!', '>':
		if next == '=' {
			return op(string(ch) + "=")
		}
		return op(string(ch))
	case '<':
		if next == '=' || next == '-' {
			return op(string(ch) + string(next))
		}
		return op("<")
	case '&', '|':
		if next == ch {
			return op(string(ch) + string(ch))
		}
		l.diags.Addf(diag.Unexpected, line, column, "expected %c%c but got %c", ch, ch, ch)
		l.readChar()
		return token.Token{}, false
	}

	l.diags.Addf(diag.Unexpected, line, column, "invalid character %q", ch)
	l.readChar()
	return token.Token{}, false
}

// readChar advances to the next rune.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = eof
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.readPosition += size
	l.column++
}

// peekChar returns the rune after ch without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// skipBlanks skips whitespace except newlines, which are tokens.
func (l *Lexer) skipBlanks() {
	for l.ch != '\n' && unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// skipComment skips a // comment, leaving the terminating newline in place.
func (l *Lexer) skipComment() {
	for l.ch != '\n' && !(l.ch == eof && l.position >= len(l.input)) {
		l.readChar()
	}
}

// readIdentifier reads a run of letters, digits and hyphens.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '-' {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads digits with an optional fractional part.
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[position:l.position]
}

// readString reads a double-quoted string and returns its contents. Strings may
// span lines. An unterminated string is reported at its start line and takes
// the rest of the input.
func (l *Lexer) readString() string {
	line, column := l.line, l.column
	l.readChar() // opening quote
	position := l.position
	for l.ch != '"' {
		if l.ch == eof && l.position >= len(l.input) {
			l.diags.Add(diag.Unexpected, line, column, "unterminated string")
			return l.input[position:]
		}
		l.readChar()
	}
	value := l.input[position:l.position]
	l.readChar() // closing quote
	return value
}

// isLetter checks if a character is a letter.
func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

// isDigit checks if a character is an ASCII digit.
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
