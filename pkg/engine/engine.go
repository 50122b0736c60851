// Package engine runs pixelpen programs against a canvas that persists
// across runs.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/zurustar/pixelpen/pkg/compiler"
	"github.com/zurustar/pixelpen/pkg/compiler/ast"
	"github.com/zurustar/pixelpen/pkg/diag"
	"github.com/zurustar/pixelpen/pkg/graphics"
	"github.com/zurustar/pixelpen/pkg/logger"
	"github.com/zurustar/pixelpen/pkg/vm"
)

// Engine owns the canvas and serialises runs on it.
type Engine struct {
	canvas    *graphics.Canvas
	timeLimit time.Duration
	runs      int
	mu        sync.Mutex
	log       *slog.Logger
}

// Result is the observable outcome of one run.
type Result struct {
	// Canvas is a snapshot of the canvas after the run
	Canvas *graphics.Canvas
	// Diagnostics holds the compile and run diagnostics of this run only
	Diagnostics *diag.List
	Cursor      graphics.Point
	Brush       graphics.Brush
	Variables   map[string]vm.Value
	// Err is the halt reason returned by the VM (vm.ErrNoSpawn, ...), or nil
	Err error
}

// OK reports whether the run produced no diagnostics.
func (r *Result) OK() bool {
	return r.Diagnostics.Empty()
}

// Option is a functional option for configuring the Engine.
type Option func(*Engine)

// WithTimeLimit sets the per-run time limit passed to the VM.
func WithTimeLimit(limit time.Duration) Option {
	return func(e *Engine) {
		e.timeLimit = limit
	}
}

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an engine with a size×size canvas filled with the background.
func New(size int, opts ...Option) (*Engine, error) {
	canvas, err := graphics.NewCanvas(size)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		canvas:    canvas,
		timeLimit: vm.DefaultTimeLimit,
		log:       logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Execute compiles and runs source on the engine's canvas.
// Statements that failed to parse are dropped and the rest still run, so a
// result can carry both syntax errors and drawing.
func (e *Engine) Execute(ctx context.Context, source string) *Result {
	diags := &diag.List{}
	program := compiler.Compile(source, diags)
	return e.Run(ctx, program, diags)
}

// Run executes an already compiled program on the engine's canvas.
// Run diagnostics are appended to diags, which normally holds the compile
// diagnostics of the same source; a nil list is allocated.
func (e *Engine) Run(ctx context.Context, program *ast.Program, diags *diag.List) *Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.runs++
	if program == nil {
		program = &ast.Program{}
	}
	if diags == nil {
		diags = &diag.List{}
	}
	if n := diags.Len(); n > 0 {
		e.log.Warn("program has compile errors", "run", e.runs, "diagnostics", n)
	}

	machine := vm.New(program, e.canvas, diags,
		vm.WithTimeLimit(e.timeLimit),
		vm.WithLogger(e.log))

	started := time.Now()
	err := machine.Run(ctx)

	e.log.Info("run finished",
		"run", e.runs,
		"statements", len(program.Statements),
		"diagnostics", diags.Len(),
		"elapsed", time.Since(started),
		"halted", err != nil)

	return &Result{
		Canvas:      e.canvas.Clone(),
		Diagnostics: diags,
		Cursor:      machine.Cursor(),
		Brush:       machine.Brush(),
		Variables:   machine.Variables(),
		Err:         err,
	}
}

// Resize changes the canvas size and resets every pixel to the background.
func (e *Engine) Resize(size int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.canvas.Resize(size); err != nil {
		return err
	}
	e.log.Info("canvas resized", "size", size)
	return nil
}

// Size returns the canvas size.
func (e *Engine) Size() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canvas.Size()
}

// Snapshot returns a copy of the current canvas.
func (e *Engine) Snapshot() *graphics.Canvas {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canvas.Clone()
}
