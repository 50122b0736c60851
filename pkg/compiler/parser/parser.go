// Package parser turns a token stream into a pixelpen AST.
//
// Statements are line-oriented: every statement ends at a newline or at the
// end of the input. Syntax errors are recorded as Sintactic diagnostics and the
// parser resynchronises at the next line, so one bad line never hides the
// statements after it.
package parser

import (
	"strconv"
	"strings"

	"github.com/zurustar/pixelpen/pkg/compiler/ast"
	"github.com/zurustar/pixelpen/pkg/compiler/lexer"
	"github.com/zurustar/pixelpen/pkg/compiler/token"
	"github.com/zurustar/pixelpen/pkg/diag"
)

// Precedence levels for binary operators. Unary operators and grouping bind
// tighter than all of them.
const (
	_ int = iota
	LOWEST
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // > < >= <=
	SUM         // + -
	PRODUCT     // * / %
	POWER       // **
)

var precedences = map[string]int{
	"||": OR,
	"&&": AND,
	"==": EQUALS,
	"!=": EQUALS,
	">":  LESSGREATER,
	"<":  LESSGREATER,
	">=": LESSGREATER,
	"<=": LESSGREATER,
	"+":  SUM,
	"-":  SUM,
	"*":  PRODUCT,
	"/":  PRODUCT,
	"%":  PRODUCT,
	"**": POWER,
}

// Parser parses pixelpen source code into an AST.
type Parser struct {
	l     *lexer.Lexer
	diags *diag.List

	curToken  token.Token
	peekToken token.Token

	// While a command is being parsed, errors mark it as failed instead of
	// being reported one by one.
	inCommand bool
	failed    bool
}

// New creates a new Parser. Syntax errors go to the same diagnostics list as
// the lexer's.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:     l,
		diags: l.Diagnostics(),
	}

	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Diagnostics returns the diagnostics list shared with the lexer.
func (p *Parser) Diagnostics() *diag.List {
	return p.diags
}

// ParseProgram parses the entire program.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	program.Statements = []ast.Statement{}

	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.NEWLINE:
			p.nextToken()
			continue
		case token.RPAREN, token.RBRACKET:
			p.errorAt(p.curToken, "unexpected %s", p.curToken.Describe())
			p.nextToken()
			continue
		}

		stmt := p.parseStatement()
		if stmt != nil {
			if !p.peekTokenIs(token.NEWLINE) && !p.peekTokenIs(token.EOF) {
				p.errorAt(p.peekToken, "unexpected %s after %s", p.peekToken.Describe(), stmt.TokenLiteral())
				p.skipLine()
				continue
			}
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

// parseStatement parses one statement starting at curToken. On success
// curToken is the statement's last token. On failure it returns nil with
// curToken on the end of the line.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.KEYWORD:
		return p.parseCommand()
	case token.IDENT:
		switch {
		case p.peekToken.Is(token.OPERATOR, "<-"), p.peekToken.Is(token.OPERATOR, "="):
			return p.parseAssignStatement()
		case p.peekTokenIs(token.NEWLINE), p.peekTokenIs(token.EOF):
			return &ast.LabelStatement{Token: p.curToken, Name: p.curToken.Literal}
		}
		p.errorAt(p.peekToken, "unexpected %s after %s", p.peekToken.Describe(), p.curToken.Literal)
	default:
		p.errorAt(p.curToken, "unexpected token %s", p.curToken.Describe())
	}
	p.skipLine()
	return nil
}

func (p *Parser) parseAssignStatement() ast.Statement {
	stmt := &ast.AssignStatement{Token: p.curToken, Name: p.curToken.Literal}

	p.nextToken() // <- or =
	p.nextToken()
	stmt.Value = p.parseTopExpression()
	if stmt.Value == nil {
		p.skipLine()
		return nil
	}

	return stmt
}

// parseCommand parses a keyword command. Whatever goes wrong inside it is
// reported once, as an invalid call.
func (p *Parser) parseCommand() ast.Statement {
	tok := p.curToken
	p.inCommand, p.failed = true, false

	var stmt ast.Statement
	switch tok.Literal {
	case token.Spawn:
		if args := p.parseArguments(2); args != nil {
			stmt = &ast.SpawnStatement{Token: tok, X: args[0], Y: args[1]}
		}
	case token.ReSpawn:
		if args := p.parseArguments(2); args != nil {
			stmt = &ast.ReSpawnStatement{Token: tok, X: args[0], Y: args[1]}
		}
	case token.Color:
		if args := p.parseArguments(1); args != nil {
			stmt = &ast.ColorStatement{Token: tok, Color: args[0]}
		}
	case token.Size:
		if args := p.parseArguments(1); args != nil {
			stmt = &ast.SizeStatement{Token: tok, Size: args[0]}
		}
	case token.DrawLine:
		if args := p.parseArguments(3); args != nil {
			stmt = &ast.DrawLineStatement{Token: tok, DirX: args[0], DirY: args[1], Distance: args[2]}
		}
	case token.DrawCircle:
		if args := p.parseArguments(3); args != nil {
			stmt = &ast.DrawCircleStatement{Token: tok, DirX: args[0], DirY: args[1], Radius: args[2]}
		}
	case token.DrawRectangle:
		if args := p.parseArguments(5); args != nil {
			stmt = &ast.DrawRectangleStatement{
				Token: tok,
				DirX:  args[0], DirY: args[1],
				Distance: args[2],
				Width:    args[3], Height: args[4],
			}
		}
	case token.Fill:
		if args := p.parseArguments(0); args != nil {
			stmt = &ast.FillStatement{Token: tok}
		}
	case token.GoTo:
		stmt = p.parseGoTo()
	default:
		p.failed = true
	}

	p.inCommand = false
	if p.failed || stmt == nil {
		p.diags.Addf(diag.Syntactic, tok.Line, tok.Column, "invalid call to %s", tok.Literal)
		p.skipLine()
		return nil
	}
	return stmt
}

// parseGoTo parses GoTo[label](condition).
func (p *Parser) parseGoTo() ast.Statement {
	stmt := &ast.GoToStatement{Token: p.curToken}

	if !p.expectPeek(token.LBRACKET) || !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Label = p.curToken.Literal
	if !p.expectPeek(token.RBRACKET) || !p.expectPeek(token.LPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Condition = p.parseTopExpression()
	if stmt.Condition == nil || !p.expectPeek(token.RPAREN) {
		return nil
	}

	return stmt
}

// parseArguments parses a parenthesised list of exactly n expressions.
// It returns nil when the list is malformed.
func (p *Parser) parseArguments(n int) []ast.Expression {
	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	args := make([]ast.Expression, 0, n)
	for i := range n {
		if i > 0 && !p.expectPeek(token.COMMA) {
			return nil
		}
		p.nextToken()
		arg := p.parseTopExpression()
		if arg == nil {
			return nil
		}
		args = append(args, arg)
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return args
}

// parseTopExpression parses a complete expression. A literal right after it
// means two expressions were written side by side.
func (p *Parser) parseTopExpression() ast.Expression {
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if p.peekTokenIs(token.NUMBER) || p.peekTokenIs(token.STRING) {
		p.errorAt(p.peekToken, "unexpected token %s", p.peekToken.Describe())
		return nil
	}
	return exp
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	leftExp := p.parseNegate()

	for leftExp != nil && precedence < p.peekPrecedence() {
		p.nextToken()
		leftExp = p.parseInfixExpression(leftExp)
	}

	return leftExp
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	op, _ := ast.LookupBinaryOp(p.curToken.Literal)
	expression := &ast.Binary{
		Token: p.curToken,
		Op:    op,
		Left:  left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}

	return expression
}

// parseNegate parses an optional prefix -. Its operand may carry a ! but not
// another -.
func (p *Parser) parseNegate() ast.Expression {
	if !p.curToken.Is(token.OPERATOR, "-") {
		return p.parseNot()
	}

	expression := &ast.Unary{Token: p.curToken, Op: ast.Negate}
	p.nextToken()
	expression.Operand = p.parseNot()
	if expression.Operand == nil {
		return nil
	}
	return expression
}

// parseNot parses an optional prefix !. Its operand must be a group or a
// primary expression.
func (p *Parser) parseNot() ast.Expression {
	if !p.curToken.Is(token.OPERATOR, "!") {
		return p.parseGrouping()
	}

	expression := &ast.Unary{Token: p.curToken, Op: ast.Not}
	p.nextToken()
	expression.Operand = p.parseGrouping()
	if expression.Operand == nil {
		return nil
	}
	return expression
}

// parseGrouping parses (expr) or [expr].
func (p *Parser) parseGrouping() ast.Expression {
	var closing token.TokenType
	switch p.curToken.Type {
	case token.LPAREN:
		closing = token.RPAREN
	case token.LBRACKET:
		closing = token.RBRACKET
	default:
		return p.parsePrimary()
	}

	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil || !p.expectPeek(closing) {
		return nil
	}
	return exp
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.curToken.Type {
	case token.NUMBER:
		return p.parseNumberLiteral()
	case token.STRING:
		return &ast.Literal{Token: p.curToken, IsString: true, Text: p.curToken.Literal}
	case token.IDENT:
		if p.peekTokenIs(token.LPAREN) {
			return p.parseCallExpression()
		}
		return &ast.Variable{Token: p.curToken, Name: p.curToken.Literal}
	}

	p.errorAt(p.curToken, "unexpected %s in expression", p.curToken.Describe())
	return nil
}

// parseNumberLiteral keeps the integer part of the literal.
func (p *Parser) parseNumberLiteral() ast.Expression {
	lit := &ast.Literal{Token: p.curToken}

	digits, _, _ := strings.Cut(p.curToken.Literal, ".")
	value, err := strconv.Atoi(digits)
	if err != nil {
		p.errorAt(p.curToken, "number %s is out of range", p.curToken.Literal)
		return nil
	}

	lit.Number = value
	return lit
}

func (p *Parser) parseCallExpression() ast.Expression {
	exp := &ast.Call{Token: p.curToken, Name: p.curToken.Literal}
	p.nextToken() // (

	exp.Args = []ast.Expression{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return exp
	}

	for {
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		exp.Args = append(exp.Args, arg)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// Helper functions
func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances when the next token has type t. Otherwise it reports
// the mismatch and stays put.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorAt(p.peekToken, "expected %s, got %s", t, p.peekToken.Describe())
	return false
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// skipLine advances until curToken ends the line.
func (p *Parser) skipLine() {
	for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

func (p *Parser) peekPrecedence() int {
	if p.peekToken.Type != token.OPERATOR {
		return LOWEST
	}
	if p, ok := precedences[p.peekToken.Literal]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Literal]; ok {
		return p
	}
	return LOWEST
}

// errorAt records a Sintactic diagnostic at tok, or marks the current command
// as failed.
func (p *Parser) errorAt(tok token.Token, format string, args ...any) {
	if p.inCommand {
		p.failed = true
		return
	}
	p.diags.Addf(diag.Syntactic, tok.Line, tok.Column, format, args...)
}
