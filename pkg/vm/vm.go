// Package vm executes pixelpen programs.
// It implements a tree-walking interpreter with support for:
// - Spawn/ReSpawn cursor placement and bounds checking
// - Brush state (color and odd size)
// - Line, circle and rectangle rasterization and flood fill
// - A flat variable store and labeled conditional jumps
// - Built-in function registry
// - Time limit and host cancellation
package vm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/zurustar/pixelpen/pkg/compiler/ast"
	"github.com/zurustar/pixelpen/pkg/diag"
	"github.com/zurustar/pixelpen/pkg/graphics"
	"github.com/zurustar/pixelpen/pkg/logger"
)

// DefaultTimeLimit bounds the wall-clock duration of a run.
const DefaultTimeLimit = 30 * time.Second

// State is the interpreter state.
type State int

const (
	// AwaitingSpawn is the state before the first statement has placed the cursor.
	AwaitingSpawn State = iota
	// Running is the state after a successful Spawn.
	Running
)

func (s State) String() string {
	if s == Running {
		return "Running"
	}
	return "AwaitingSpawn"
}

// VM represents the interpreter for one program run.
// It owns the cursor, brush, variables and labels; the canvas is borrowed
// from the caller and mutated in place.
type VM struct {
	program *ast.Program
	labels  map[string]int
	pc      int // Program counter
	line    int // line of the statement being executed

	state  State
	cursor graphics.Point
	brush  graphics.Brush
	canvas *graphics.Canvas

	scope *Scope

	// Built-in functions
	builtins map[string]BuiltinFunc
	mu       sync.RWMutex

	diags *diag.List

	// Configuration
	timeLimit time.Duration
	now       func() time.Time
	start     time.Time

	// Logger
	log *slog.Logger
}

// BuiltinFunc is the signature for built-in functions.
// Built-in functions receive the VM instance and the evaluated arguments.
type BuiltinFunc func(vm *VM, args []Value) (Value, error)

// Option is a functional option for configuring the VM.
type Option func(*VM)

// WithTimeLimit sets the execution time limit. A limit of zero or less
// disables the check.
func WithTimeLimit(limit time.Duration) Option {
	return func(vm *VM) {
		vm.timeLimit = limit
	}
}

// WithClock replaces the clock used for the time limit.
func WithClock(now func() time.Time) Option {
	return func(vm *VM) {
		if now != nil {
			vm.now = now
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(vm *VM) {
		if log != nil {
			vm.log = log
		}
	}
}

// New creates a new VM for program drawing on canvas.
// Diagnostics are appended to diags; a nil list is allocated.
//
// Parameters:
//   - program: The parsed program
//   - canvas: The pixel grid to draw on
//   - diags: Destination for semantic and runtime diagnostics
//   - opts: Optional configuration options
//
// Returns:
//   - *VM: The new VM instance
func New(program *ast.Program, canvas *graphics.Canvas, diags *diag.List, opts ...Option) *VM {
	if program == nil {
		program = &ast.Program{}
	}
	if diags == nil {
		diags = &diag.List{}
	}

	vm := &VM{
		program:   program,
		canvas:    canvas,
		diags:     diags,
		brush:     graphics.DefaultBrush(),
		scope:     NewScope(),
		builtins:  make(map[string]BuiltinFunc),
		timeLimit: DefaultTimeLimit,
		now:       time.Now,
		log:       logger.GetLogger(),
	}

	for _, opt := range opts {
		opt(vm)
	}

	vm.registerDefaultBuiltins()

	return vm
}

// Run executes the program until it ends or halts.
// Run returns nil when the program ran to its end, even if statements failed;
// those failures are in the diagnostics list. A non-nil error means the run
// halted early: ErrNoSpawn, ErrTimeLimit or ErrCanceled.
func (vm *VM) Run(ctx context.Context) error {
	// Every run starts from a blank store and the default pen; only the
	// canvas carries over.
	vm.start = vm.now()
	vm.pc = 0
	vm.state = AwaitingSpawn
	vm.cursor = graphics.Point{}
	vm.brush = graphics.DefaultBrush()
	vm.scope.Clear()

	labels, duplicates := vm.program.Labels()
	vm.labels = labels
	for _, d := range duplicates {
		vm.report(diag.Semantic, d.Line(), "label %s is already defined", d.Name)
	}

	statements := vm.program.Statements
	if len(statements) == 0 {
		vm.report(diag.Semantic, 1, "every program must start with Spawn")
		return ErrNoSpawn
	}

	vm.log.Debug("Run started", "statements", len(statements), "labels", len(labels))

	for vm.pc < len(statements) {
		stmt := statements[vm.pc]
		vm.line = stmt.Line()

		if err := vm.checkLimits(ctx); err != nil {
			return err
		}

		if vm.state == AwaitingSpawn {
			if err := vm.spawn(stmt); err != nil {
				return err
			}
			vm.state = Running
			vm.pc++
			continue
		}

		vm.log.Debug("Executing statement", "pc", vm.pc, "line", vm.line, "stmt", stmt.String())

		next, err := vm.execute(stmt)
		if err != nil {
			vm.recordError(err)
		}
		vm.pc = next
	}

	vm.log.Debug("Run completed", "cursor", vm.cursor, "diagnostics", vm.diags.Len())
	return nil
}

// checkLimits halts the run on host cancellation or when the time limit has
// been exceeded.
func (vm *VM) checkLimits(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		vm.report(diag.ExecutionTime, vm.line, "execution canceled: %v", err)
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}

	if vm.timeLimit <= 0 {
		return nil
	}
	elapsed := vm.now().Sub(vm.start)
	if elapsed > vm.timeLimit {
		msg := fmt.Sprintf("time limit of %s exceeded", vm.timeLimit)
		vm.diags.AddElapsed(int(elapsed.Seconds()), msg)
		vm.log.Warn("Diagnostic", "kind", diag.ExecutionTime.String(), "elapsed", elapsed, "message", msg)
		return ErrTimeLimit
	}
	return nil
}

// spawn handles the first statement, which must be an in-bounds Spawn.
func (vm *VM) spawn(stmt ast.Statement) error {
	s, ok := stmt.(*ast.SpawnStatement)
	if !ok {
		vm.report(diag.Semantic, stmt.Line(), "every program must start with Spawn")
		return ErrNoSpawn
	}

	p, err := vm.evalPoint(s.X, s.Y)
	if err != nil {
		vm.recordError(err)
		return ErrNoSpawn
	}
	if !vm.canvas.InBounds(p.X, p.Y) {
		vm.report(diag.ExecutionTime, s.Line(), "Spawn position (%d, %d) is outside the canvas", p.X, p.Y)
		return ErrNoSpawn
	}

	vm.cursor = p
	vm.log.Debug("Spawned", "x", p.X, "y", p.Y)
	return nil
}

// execute runs one statement and returns the index of the next one.
func (vm *VM) execute(stmt ast.Statement) (int, error) {
	next := vm.pc + 1

	switch s := stmt.(type) {
	case *ast.SpawnStatement:
		return next, NewRuntimeError(diag.Semantic, "Spawn can only be used once")

	case *ast.ReSpawnStatement:
		p, err := vm.evalPoint(s.X, s.Y)
		if err != nil {
			return next, err
		}
		if !vm.canvas.InBounds(p.X, p.Y) {
			return next, NewRuntimeError(diag.ExecutionTime, "ReSpawn position (%d, %d) is outside the canvas", p.X, p.Y)
		}
		vm.cursor = p

	case *ast.ColorStatement:
		name, err := vm.evalString(s.Color, "Color")
		if err != nil {
			return next, err
		}
		vm.brush.Color = vm.lookupColor(name)

	case *ast.SizeStatement:
		k, err := vm.evalInt(s.Size, "Size")
		if err != nil {
			return next, err
		}
		size, ok := graphics.NormalizeSize(k)
		if !ok {
			return next, NewRuntimeError(diag.ExecutionTime, "brush size must be positive, got %d", k)
		}
		vm.brush.Size = size

	case *ast.DrawLineStatement:
		dx, dy, err := vm.evalDirection(s.DirX, s.DirY)
		if err != nil {
			return next, err
		}
		dist, err := vm.evalNonNegative(s.Distance, "distance")
		if err != nil {
			return next, err
		}
		vm.cursor = vm.canvas.DrawLine(vm.cursor, dx, dy, dist, vm.brush)

	case *ast.DrawCircleStatement:
		dx, dy, err := vm.evalDirection(s.DirX, s.DirY)
		if err != nil {
			return next, err
		}
		r, err := vm.evalNonNegative(s.Radius, "radius")
		if err != nil {
			return next, err
		}
		vm.cursor = vm.canvas.Walk(vm.cursor, dx, dy, r)
		vm.canvas.DrawCircle(vm.cursor, r, vm.brush)

	case *ast.DrawRectangleStatement:
		dx, dy, err := vm.evalDirection(s.DirX, s.DirY)
		if err != nil {
			return next, err
		}
		dist, err := vm.evalNonNegative(s.Distance, "distance")
		if err != nil {
			return next, err
		}
		w, err := vm.evalInt(s.Width, "DrawRectangle")
		if err != nil {
			return next, err
		}
		h, err := vm.evalInt(s.Height, "DrawRectangle")
		if err != nil {
			return next, err
		}
		if w < 1 || h < 1 {
			return next, NewRuntimeError(diag.ExecutionTime, "rectangle size must be at least 1x1, got %dx%d", w, h)
		}
		vm.cursor = vm.canvas.Walk(vm.cursor, dx, dy, dist)
		vm.canvas.DrawRectangle(vm.cursor, w, h, vm.brush)

	case *ast.FillStatement:
		painted := vm.canvas.Fill(vm.cursor, vm.brush.Color)
		vm.log.Debug("Fill", "x", vm.cursor.X, "y", vm.cursor.Y, "painted", painted)

	case *ast.AssignStatement:
		v, err := vm.eval(s.Value)
		if err != nil {
			return next, err
		}
		vm.scope.Set(s.Name, v)

	case *ast.LabelStatement:
		// no-op

	case *ast.GoToStatement:
		target, ok := vm.labels[s.Label]
		if !ok {
			return next, NewRuntimeError(diag.Semantic, "label %s is not defined", s.Label)
		}
		v, err := vm.eval(s.Condition)
		if err != nil {
			return next, err
		}
		jump, ok := v.AsBool()
		if !ok {
			return next, NewRuntimeError(diag.Semantic, "GoTo condition must be Boolean, got %s", v.Category())
		}
		if jump {
			return target, nil
		}

	default:
		return next, NewRuntimeError(diag.Unexpected, "unknown statement %T", stmt)
	}

	return next, nil
}

// lookupColor resolves a palette name. Unknown names are reported and
// resolve to transparent.
func (vm *VM) lookupColor(name string) graphics.Color {
	col, ok := graphics.ParseColor(name)
	if !ok {
		vm.report(diag.Semantic, vm.line, "unknown color %q", name)
		return graphics.Transparent
	}
	return col
}

// report appends a diagnostic at line. Runtime diagnostics carry no column.
func (vm *VM) report(kind diag.Kind, line int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	vm.diags.Add(kind, line, 0, msg)
	vm.log.Warn("Diagnostic", "kind", kind.String(), "line", line, "message", msg)
}

// recordError turns a statement error into a diagnostic at the current line.
func (vm *VM) recordError(err error) {
	if rerr, ok := err.(*RuntimeError); ok {
		line := rerr.Line
		if line == 0 {
			line = vm.line
		}
		vm.report(rerr.Kind, line, "%s", rerr.Message)
		return
	}
	vm.report(diag.Unexpected, vm.line, "%v", err)
}

// State returns the interpreter state.
func (vm *VM) State() State {
	return vm.state
}

// Cursor returns the current cursor position.
func (vm *VM) Cursor() graphics.Point {
	return vm.cursor
}

// Brush returns the current brush.
func (vm *VM) Brush() graphics.Brush {
	return vm.brush
}

// Canvas returns the canvas the VM draws on.
func (vm *VM) Canvas() *graphics.Canvas {
	return vm.canvas
}

// Variables returns a copy of the variable store.
func (vm *VM) Variables() map[string]Value {
	return vm.scope.Snapshot()
}

// Diagnostics returns the diagnostics list shared with the caller.
func (vm *VM) Diagnostics() *diag.List {
	return vm.diags
}

// RegisterBuiltinFunction registers a built-in function.
// An existing function with the same name is replaced.
//
// Parameters:
//   - name: The function name as written in programs
//   - fn: The function implementation
func (vm *VM) RegisterBuiltinFunction(name string, fn BuiltinFunc) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.builtins[name] = fn
}

// GetBuiltinFunction returns a built-in function by name.
func (vm *VM) GetBuiltinFunction(name string) (BuiltinFunc, bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	fn, ok := vm.builtins[name]
	return fn, ok
}
