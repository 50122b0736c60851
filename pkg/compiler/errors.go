package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zurustar/pixelpen/pkg/diag"
)

// CompileError is a diagnostic bound to the source it was found in.
// It implements the error interface and carries the source lines around the
// error location.
type CompileError struct {
	// Kind is the diagnostic kind (Unexpected, Sintactic, ...).
	Kind diag.Kind

	// Message is the human-readable error description.
	Message string

	// Line is the 1-indexed line number where the error occurred.
	Line int

	// Column is the 1-indexed column number, 0 when unknown.
	Column int

	// Context contains the source code around the error location,
	// with a pointer (^) indicating the error column.
	Context string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	msg := diag.Diagnostic{Kind: e.Kind, Line: e.Line, Column: e.Column, Message: e.Message}.Error()
	if e.Context != "" {
		return msg + "\n" + e.Context
	}
	return msg
}

// NewError wraps a diagnostic with the source context around it.
func NewError(d diag.Diagnostic, source string) *CompileError {
	ce := &CompileError{
		Kind:    d.Kind,
		Message: d.Message,
		Line:    d.Line,
		Column:  d.Column,
	}
	// time-limit diagnostics carry seconds, not a line
	if !d.Elapsed {
		ce.Context = diag.GenerateErrorContext(source, d.Line, d.Column)
	}
	return ce
}

// Errors converts diagnostics into one joined error, or nil when there are none.
func Errors(diags []diag.Diagnostic, source string) error {
	if len(diags) == 0 {
		return nil
	}
	errs := make([]error, len(diags))
	for i, d := range diags {
		errs[i] = NewError(d, source)
	}
	return errors.Join(errs...)
}

// Summary returns a one-line count of the diagnostics by kind, e.g.
// "3 errors (2 Sintactic, 1 Semantic)".
func Summary(list *diag.List) string {
	if list.Empty() {
		return "no errors"
	}

	var parts []string
	for _, kind := range []diag.Kind{diag.Unexpected, diag.Syntactic, diag.Semantic, diag.ExecutionTime} {
		if n := list.Count(kind); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, kind))
		}
	}

	noun := "errors"
	if list.Len() == 1 {
		noun = "error"
	}
	return fmt.Sprintf("%d %s (%s)", list.Len(), noun, strings.Join(parts, ", "))
}
