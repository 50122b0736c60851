package vm

import (
	"math"

	"github.com/zurustar/pixelpen/pkg/compiler/ast"
	"github.com/zurustar/pixelpen/pkg/diag"
	"github.com/zurustar/pixelpen/pkg/graphics"
)

// eval evaluates an expression.
// Operands are evaluated left to right and the first failure is returned
// unchanged. The operand categories are then checked with ast.Check.
func (vm *VM) eval(expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.IsString {
			return Str(e.Text), nil
		}
		return Int(e.Number), nil

	case *ast.Variable:
		v, ok := vm.scope.Get(e.Name)
		if !ok {
			return Value{}, NewRuntimeError(diag.ExecutionTime, "undefined variable %s", e.Name)
		}
		return v, nil

	case *ast.Binary:
		left, err := vm.eval(e.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := vm.eval(e.Right)
		if err != nil {
			return Value{}, err
		}
		if ast.Check(e, vm.scope) == ast.Error {
			return Value{}, NewTypeMismatchError(e.String())
		}
		return evalBinary(e.Op, left, right)

	case *ast.Unary:
		operand, err := vm.eval(e.Operand)
		if err != nil {
			return Value{}, err
		}
		if ast.Check(e, vm.scope) == ast.Error {
			return Value{}, NewTypeMismatchError(e.String())
		}
		if e.Op == ast.Not {
			b, _ := operand.AsBool()
			return Bool(!b), nil
		}
		n, _ := operand.AsInt()
		return Int(-n), nil

	case *ast.Call:
		return vm.call(e)
	}

	return Value{}, NewRuntimeError(diag.Unexpected, "unknown expression %T", expr)
}

// evalBinary applies op to operands whose categories have already been
// checked.
func evalBinary(op ast.BinaryOp, left, right Value) (Value, error) {
	switch op.Class() {
	case ast.Equality:
		eq := left.Equal(right)
		if op == ast.NotEqual {
			eq = !eq
		}
		return Bool(eq), nil

	case ast.Logical:
		l, _ := left.AsBool()
		r, _ := right.AsBool()
		if op == ast.And {
			return Bool(l && r), nil
		}
		return Bool(l || r), nil
	}

	l, _ := left.AsInt()
	r, _ := right.AsInt()

	switch op {
	case ast.Add:
		return Int(l + r), nil
	case ast.Sub:
		return Int(l - r), nil
	case ast.Mul:
		return Int(l * r), nil
	case ast.Div:
		if r == 0 {
			return Value{}, NewDivisionByZeroError("/")
		}
		return Int(l / r), nil
	case ast.Mod:
		if r == 0 {
			return Value{}, NewDivisionByZeroError("%")
		}
		return Int(l % r), nil
	case ast.Pow:
		return Int(int(math.Pow(float64(l), float64(r)))), nil
	case ast.Greater:
		return Bool(l > r), nil
	case ast.Less:
		return Bool(l < r), nil
	case ast.GreaterEq:
		return Bool(l >= r), nil
	case ast.LessEq:
		return Bool(l <= r), nil
	}

	return Value{}, NewRuntimeError(diag.Unexpected, "unknown operator %s", op)
}

// call evaluates the arguments and dispatches to the builtin registry.
func (vm *VM) call(e *ast.Call) (Value, error) {
	args := make([]Value, 0, len(e.Args))
	for _, arg := range e.Args {
		v, err := vm.eval(arg)
		if err != nil {
			return Value{}, err
		}
		args = append(args, v)
	}

	fn, ok := vm.GetBuiltinFunction(e.Name)
	if !ok {
		return Value{}, NewUnknownFunctionError(e.Name)
	}
	return fn(vm, args)
}

// evalInt evaluates an expression that must produce an integer.
func (vm *VM) evalInt(expr ast.Expression, context string) (int, error) {
	v, err := vm.eval(expr)
	if err != nil {
		return 0, err
	}
	n, ok := v.AsInt()
	if !ok {
		return 0, NewRuntimeError(diag.Semantic, "%s expects a Numeric value, got %s", context, v.Category())
	}
	return n, nil
}

// evalString evaluates an expression that must produce a string.
func (vm *VM) evalString(expr ast.Expression, context string) (string, error) {
	v, err := vm.eval(expr)
	if err != nil {
		return "", err
	}
	s, ok := v.AsString()
	if !ok {
		return "", NewRuntimeError(diag.Semantic, "%s expects a String value, got %s", context, v.Category())
	}
	return s, nil
}

func (vm *VM) evalPoint(x, y ast.Expression) (graphics.Point, error) {
	px, err := vm.evalInt(x, "position")
	if err != nil {
		return graphics.Point{}, err
	}
	py, err := vm.evalInt(y, "position")
	if err != nil {
		return graphics.Point{}, err
	}
	return graphics.Point{X: px, Y: py}, nil
}

// evalDirection evaluates a direction pair; each component is -1, 0 or 1.
func (vm *VM) evalDirection(x, y ast.Expression) (int, int, error) {
	dx, err := vm.evalInt(x, "direction")
	if err != nil {
		return 0, 0, err
	}
	dy, err := vm.evalInt(y, "direction")
	if err != nil {
		return 0, 0, err
	}
	if !isUnit(dx) || !isUnit(dy) {
		return 0, 0, NewRuntimeError(diag.ExecutionTime, "invalid direction (%d, %d)", dx, dy)
	}
	return dx, dy, nil
}

func (vm *VM) evalNonNegative(expr ast.Expression, what string) (int, error) {
	n, err := vm.evalInt(expr, what)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, NewRuntimeError(diag.ExecutionTime, "%s must not be negative, got %d", what, n)
	}
	return n, nil
}

func isUnit(n int) bool {
	return n >= -1 && n <= 1
}
