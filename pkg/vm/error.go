package vm

import (
	"errors"
	"fmt"

	"github.com/zurustar/pixelpen/pkg/diag"
)

// Run returns one of these only when the run halted early.
var (
	ErrNoSpawn   = errors.New("program did not start with a valid Spawn")
	ErrTimeLimit = errors.New("time limit exceeded")
	ErrCanceled  = errors.New("execution canceled")
)

// RuntimeError represents a failure while executing one statement. The VM
// records it as a diagnostic and moves on to the next statement.
type RuntimeError struct {
	Kind    diag.Kind
	Message string
	Line    int // 0 when not known yet
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] %s at line %d", e.Kind, e.Message, e.Line)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// NewRuntimeError creates a new RuntimeError.
func NewRuntimeError(kind diag.Kind, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewInvalidArgumentsError is returned by builtins called with the wrong
// number or kinds of arguments.
func NewInvalidArgumentsError(name string) *RuntimeError {
	return NewRuntimeError(diag.Semantic, "invalid arguments for %s", name)
}

// NewDivisionByZeroError creates a division by zero error.
func NewDivisionByZeroError(op string) *RuntimeError {
	return NewRuntimeError(diag.ExecutionTime, "division by zero in %s", op)
}

// NewUnknownFunctionError creates an unknown function error.
func NewUnknownFunctionError(name string) *RuntimeError {
	return NewRuntimeError(diag.Semantic, "unknown function %s", name)
}

// NewTypeMismatchError reports an expression whose operands have the wrong kinds.
func NewTypeMismatchError(expr string) *RuntimeError {
	return NewRuntimeError(diag.Semantic, "type mismatch in %s", expr)
}
