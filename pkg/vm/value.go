package vm

import (
	"strconv"

	"github.com/zurustar/pixelpen/pkg/compiler/ast"
)

// Value is a runtime value: an integer, a boolean or a string.
// The zero Value is the integer 0.
type Value struct {
	cat ast.Category
	n   int
	b   bool
	s   string
}

// Int returns a numeric value.
func Int(n int) Value { return Value{cat: ast.Numeric, n: n} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{cat: ast.Boolean, b: b} }

// Str returns a string value.
func Str(s string) Value { return Value{cat: ast.String, s: s} }

// Category reports which of the three kinds the value holds.
func (v Value) Category() ast.Category {
	if v.cat == ast.Error {
		return ast.Numeric
	}
	return v.cat
}

// AsInt returns the integer held by v.
func (v Value) AsInt() (int, bool) {
	return v.n, v.Category() == ast.Numeric
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.cat == ast.Boolean
}

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	return v.s, v.cat == ast.String
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.Category() != o.Category() {
		return false
	}
	switch v.Category() {
	case ast.Boolean:
		return v.b == o.b
	case ast.String:
		return v.s == o.s
	}
	return v.n == o.n
}

func (v Value) String() string {
	switch v.Category() {
	case ast.Boolean:
		return strconv.FormatBool(v.b)
	case ast.String:
		return strconv.Quote(v.s)
	}
	return strconv.Itoa(v.n)
}

func boolToInt(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}
