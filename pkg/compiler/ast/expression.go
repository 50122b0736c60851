package ast

import (
	"strconv"
	"strings"

	"github.com/zurustar/pixelpen/pkg/compiler/token"
)

// OpClass groups binary operators by the operand types they accept.
type OpClass int

const (
	Arithmetic OpClass = iota // + - * / % **
	Relational                // > < >= <=
	Equality                  // == !=
	Logical                   // && ||
)

// BinaryOp is a binary operator.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Pow
	Greater
	Less
	GreaterEq
	LessEq
	Equal
	NotEqual
	And
	Or
)

var binarySymbols = [...]string{
	Add:       "+",
	Sub:       "-",
	Mul:       "*",
	Div:       "/",
	Mod:       "%",
	Pow:       "**",
	Greater:   ">",
	Less:      "<",
	GreaterEq: ">=",
	LessEq:    "<=",
	Equal:     "==",
	NotEqual:  "!=",
	And:       "&&",
	Or:        "||",
}

func (op BinaryOp) String() string {
	if int(op) < len(binarySymbols) {
		return binarySymbols[op]
	}
	return "?"
}

// Class returns the operator class.
func (op BinaryOp) Class() OpClass {
	switch op {
	case Greater, Less, GreaterEq, LessEq:
		return Relational
	case Equal, NotEqual:
		return Equality
	case And, Or:
		return Logical
	default:
		return Arithmetic
	}
}

// LookupBinaryOp maps an operator literal to its BinaryOp.
func LookupBinaryOp(literal string) (BinaryOp, bool) {
	for i, s := range binarySymbols {
		if s == literal {
			return BinaryOp(i), true
		}
	}
	return 0, false
}

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	Negate UnaryOp = iota // written -
	Not                   // written !
)

func (op UnaryOp) String() string {
	if op == Not {
		return "!"
	}
	return "-"
}

// Literal is a number or string constant.
type Literal struct {
	Token    token.Token
	IsString bool
	Number   int
	Text     string
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) Line() int            { return l.Token.Line }
func (l *Literal) String() string {
	if l.IsString {
		return strconv.Quote(l.Text)
	}
	return strconv.Itoa(l.Number)
}

// Variable reads a variable.
type Variable struct {
	Token token.Token
	Name  string
}

func (v *Variable) expressionNode()      {}
func (v *Variable) TokenLiteral() string { return v.Token.Literal }
func (v *Variable) Line() int            { return v.Token.Line }
func (v *Variable) String() string       { return v.Name }

// Binary applies an infix operator.
type Binary struct {
	Token       token.Token // the operator token
	Op          BinaryOp
	Left, Right Expression
}

func (b *Binary) expressionNode()      {}
func (b *Binary) TokenLiteral() string { return b.Token.Literal }
func (b *Binary) Line() int            { return b.Token.Line }
func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// Unary applies a prefix operator.
type Unary struct {
	Token   token.Token
	Op      UnaryOp
	Operand Expression
}

func (u *Unary) expressionNode()      {}
func (u *Unary) TokenLiteral() string { return u.Token.Literal }
func (u *Unary) Line() int            { return u.Token.Line }
func (u *Unary) String() string       { return "(" + u.Op.String() + u.Operand.String() + ")" }

// Call invokes a builtin function.
// Example: GetColorCount("red", 0, 0, 4, 4)
type Call struct {
	Token token.Token // the function name
	Name  string
	Args  []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Token.Literal }
func (c *Call) Line() int            { return c.Token.Line }
func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}
