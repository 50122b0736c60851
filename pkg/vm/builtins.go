package vm

import (
	"github.com/zurustar/pixelpen/pkg/compiler/ast"
	"github.com/zurustar/pixelpen/pkg/graphics"
)

// registerDefaultBuiltins registers the query functions available to every
// program. They never modify VM state; predicates return 1 or 0.
func (vm *VM) registerDefaultBuiltins() {
	// GetActualX: 現在のカーソルのX座標
	vm.RegisterBuiltinFunction("GetActualX", func(v *VM, args []Value) (Value, error) {
		if len(args) != 0 {
			return Value{}, NewInvalidArgumentsError("GetActualX")
		}
		return Int(v.cursor.X), nil
	})

	// GetActualY: 現在のカーソルのY座標
	vm.RegisterBuiltinFunction("GetActualY", func(v *VM, args []Value) (Value, error) {
		if len(args) != 0 {
			return Value{}, NewInvalidArgumentsError("GetActualY")
		}
		return Int(v.cursor.Y), nil
	})

	vm.RegisterBuiltinFunction("GetCanvasSize", func(v *VM, args []Value) (Value, error) {
		if len(args) != 0 {
			return Value{}, NewInvalidArgumentsError("GetCanvasSize")
		}
		return Int(v.canvas.Size()), nil
	})

	// GetColorCount(color, x1, y1, x2, y2): 矩形内の指定色のピクセル数
	vm.RegisterBuiltinFunction("GetColorCount", func(v *VM, args []Value) (Value, error) {
		if !matches(args, ast.String, ast.Numeric, ast.Numeric, ast.Numeric, ast.Numeric) {
			return Value{}, NewInvalidArgumentsError("GetColorCount")
		}
		col := v.argColor(args[0])
		x1, _ := args[1].AsInt()
		y1, _ := args[2].AsInt()
		x2, _ := args[3].AsInt()
		y2, _ := args[4].AsInt()
		return Int(v.canvas.Count(col, x1, y1, x2, y2)), nil
	})

	vm.RegisterBuiltinFunction("IsBrushColor", func(v *VM, args []Value) (Value, error) {
		if !matches(args, ast.String) {
			return Value{}, NewInvalidArgumentsError("IsBrushColor")
		}
		return boolToInt(v.brush.Color == v.argColor(args[0])), nil
	})

	vm.RegisterBuiltinFunction("IsBrushSize", func(v *VM, args []Value) (Value, error) {
		if !matches(args, ast.Numeric) {
			return Value{}, NewInvalidArgumentsError("IsBrushSize")
		}
		n, _ := args[0].AsInt()
		return boolToInt(v.brush.Size == n), nil
	})

	// IsCanvasColor(color, vertical, horizontal): カーソルからのオフセット位置の色を判定
	// 範囲外は0
	vm.RegisterBuiltinFunction("IsCanvasColor", func(v *VM, args []Value) (Value, error) {
		if !matches(args, ast.String, ast.Numeric, ast.Numeric) {
			return Value{}, NewInvalidArgumentsError("IsCanvasColor")
		}
		col := v.argColor(args[0])
		vertical, _ := args[1].AsInt()
		horizontal, _ := args[2].AsInt()

		p := v.cursor.Add(horizontal, vertical)
		if !v.canvas.InBounds(p.X, p.Y) {
			return Int(0), nil
		}
		return boolToInt(v.canvas.At(p.X, p.Y) == col), nil
	})
}

// argColor resolves a color argument; unknown names are reported and
// compare as transparent.
func (vm *VM) argColor(arg Value) graphics.Color {
	name, _ := arg.AsString()
	return vm.lookupColor(name)
}

// matches reports whether args has exactly the given categories.
func matches(args []Value, want ...ast.Category) bool {
	if len(args) != len(want) {
		return false
	}
	for i, c := range want {
		if args[i].Category() != c {
			return false
		}
	}
	return true
}
