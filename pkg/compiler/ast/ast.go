// Package ast defines the syntax tree of pixelpen programs and the value
// categories inferred for expressions.
//
// Statements and expressions are closed sets: only the types in this package
// implement Statement and Expression, so a type switch over them is exhaustive.
package ast

import (
	"bytes"
	"strings"

	"github.com/zurustar/pixelpen/pkg/compiler/token"
)

type Node interface {
	TokenLiteral() string
	String() string
	// Line is the source line the node starts on.
	Line() int
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Program is the root node
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Labels returns the statement index of every label, first declaration wins,
// along with the labels that were declared more than once.
func (p *Program) Labels() (map[string]int, []*LabelStatement) {
	labels := make(map[string]int)
	var duplicates []*LabelStatement
	for i, s := range p.Statements {
		ls, ok := s.(*LabelStatement)
		if !ok {
			continue
		}
		if _, exists := labels[ls.Name]; exists {
			duplicates = append(duplicates, ls)
			continue
		}
		labels[ls.Name] = i
	}
	return labels, duplicates
}

// commandString renders name(args...) for command statements.
func commandString(name string, args ...Expression) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// SpawnStatement places the cursor for the first time.
// Example: Spawn(0, 0)
type SpawnStatement struct {
	Token token.Token
	X, Y  Expression
}

func (s *SpawnStatement) statementNode()       {}
func (s *SpawnStatement) TokenLiteral() string { return s.Token.Literal }
func (s *SpawnStatement) Line() int            { return s.Token.Line }
func (s *SpawnStatement) String() string       { return commandString(token.Spawn, s.X, s.Y) }

// ReSpawnStatement moves the cursor without drawing.
// Example: ReSpawn(10, 4)
type ReSpawnStatement struct {
	Token token.Token
	X, Y  Expression
}

func (s *ReSpawnStatement) statementNode()       {}
func (s *ReSpawnStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ReSpawnStatement) Line() int            { return s.Token.Line }
func (s *ReSpawnStatement) String() string       { return commandString(token.ReSpawn, s.X, s.Y) }

// ColorStatement sets the brush color.
// Example: Color("red")
type ColorStatement struct {
	Token token.Token
	Color Expression
}

func (s *ColorStatement) statementNode()       {}
func (s *ColorStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ColorStatement) Line() int            { return s.Token.Line }
func (s *ColorStatement) String() string       { return commandString(token.Color, s.Color) }

// SizeStatement sets the brush size.
// Example: Size(3)
type SizeStatement struct {
	Token token.Token
	Size  Expression
}

func (s *SizeStatement) statementNode()       {}
func (s *SizeStatement) TokenLiteral() string { return s.Token.Literal }
func (s *SizeStatement) Line() int            { return s.Token.Line }
func (s *SizeStatement) String() string       { return commandString(token.Size, s.Size) }

// DrawLineStatement draws from the cursor in a direction.
// Example: DrawLine(1, 0, 5)
type DrawLineStatement struct {
	Token      token.Token
	DirX, DirY Expression
	Distance   Expression
}

func (s *DrawLineStatement) statementNode()       {}
func (s *DrawLineStatement) TokenLiteral() string { return s.Token.Literal }
func (s *DrawLineStatement) Line() int            { return s.Token.Line }
func (s *DrawLineStatement) String() string {
	return commandString(token.DrawLine, s.DirX, s.DirY, s.Distance)
}

// DrawCircleStatement moves the cursor and draws a circle outline around it.
// Example: DrawCircle(1, 1, 4)
type DrawCircleStatement struct {
	Token      token.Token
	DirX, DirY Expression
	Radius     Expression
}

func (s *DrawCircleStatement) statementNode()       {}
func (s *DrawCircleStatement) TokenLiteral() string { return s.Token.Literal }
func (s *DrawCircleStatement) Line() int            { return s.Token.Line }
func (s *DrawCircleStatement) String() string {
	return commandString(token.DrawCircle, s.DirX, s.DirY, s.Radius)
}

// DrawRectangleStatement moves the cursor and draws a rectangle border around it.
// Example: DrawRectangle(0, 1, 2, 5, 3)
type DrawRectangleStatement struct {
	Token         token.Token
	DirX, DirY    Expression
	Distance      Expression
	Width, Height Expression
}

func (s *DrawRectangleStatement) statementNode()       {}
func (s *DrawRectangleStatement) TokenLiteral() string { return s.Token.Literal }
func (s *DrawRectangleStatement) Line() int            { return s.Token.Line }
func (s *DrawRectangleStatement) String() string {
	return commandString(token.DrawRectangle, s.DirX, s.DirY, s.Distance, s.Width, s.Height)
}

// FillStatement flood-fills the region under the cursor.
// Example: Fill()
type FillStatement struct {
	Token token.Token
}

func (s *FillStatement) statementNode()       {}
func (s *FillStatement) TokenLiteral() string { return s.Token.Literal }
func (s *FillStatement) Line() int            { return s.Token.Line }
func (s *FillStatement) String() string       { return commandString(token.Fill) }

// AssignStatement stores a value in a variable.
// Example: n <- n + 1
type AssignStatement struct {
	Token token.Token // the variable name
	Name  string
	Value Expression
}

func (s *AssignStatement) statementNode()       {}
func (s *AssignStatement) TokenLiteral() string { return s.Token.Literal }
func (s *AssignStatement) Line() int            { return s.Token.Line }
func (s *AssignStatement) String() string       { return s.Name + " <- " + s.Value.String() }

// LabelStatement marks a jump target.
// Example: loop-start
type LabelStatement struct {
	Token token.Token
	Name  string
}

func (s *LabelStatement) statementNode()       {}
func (s *LabelStatement) TokenLiteral() string { return s.Token.Literal }
func (s *LabelStatement) Line() int            { return s.Token.Line }
func (s *LabelStatement) String() string       { return s.Name }

// GoToStatement jumps to a label when its condition holds.
// Example: GoTo[loop-start](n < 10)
type GoToStatement struct {
	Token     token.Token
	Label     string
	Condition Expression
}

func (s *GoToStatement) statementNode()       {}
func (s *GoToStatement) TokenLiteral() string { return s.Token.Literal }
func (s *GoToStatement) Line() int            { return s.Token.Line }
func (s *GoToStatement) String() string {
	return token.GoTo + "[" + s.Label + "](" + s.Condition.String() + ")"
}
