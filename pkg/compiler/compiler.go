// Package compiler provides the front-end pipeline for pixelpen programs.
// It turns source text into an AST through two phases:
// 1. Lexer: Tokenization
// 2. Parser: AST generation
//
// Problems found along the way are recorded in a diag.List rather than
// stopping the pipeline, so a program with errors still yields every
// statement that parsed cleanly.
//
// This package provides a unified API:
//   - Compile: Compiles a source string into a Program
//   - CompileScript: Compiles a script loaded by script.Loader
//   - CompileFile: Loads a file (detecting its encoding) and compiles it
package compiler

import (
	"fmt"

	"github.com/zurustar/pixelpen/pkg/compiler/ast"
	"github.com/zurustar/pixelpen/pkg/compiler/lexer"
	"github.com/zurustar/pixelpen/pkg/compiler/parser"
	"github.com/zurustar/pixelpen/pkg/diag"
	"github.com/zurustar/pixelpen/pkg/logger"
	"github.com/zurustar/pixelpen/pkg/script"
)

// Compile compiles source code into a Program.
// It chains the lexer → parser pipeline.
//
// Parameters:
//   - source: UTF-8 encoded source code string
//   - diags: where lexical and syntax errors are appended (nil allocates a new list)
//
// Returns:
//   - *ast.Program: every statement that parsed without errors
func Compile(source string, diags *diag.List) *ast.Program {
	if diags == nil {
		diags = &diag.List{}
	}
	before := diags.Len()

	// Phase 1: Lexical analysis
	l := lexer.New(source, diags)

	// Phase 2: Syntax analysis
	p := parser.New(l)
	program := p.ParseProgram()

	logger.GetLogger().Debug("compiled program",
		"statements", len(program.Statements),
		"diagnostics", diags.Len()-before)

	return program
}

// Result is the outcome of compiling one script.
type Result struct {
	// Script is the loaded source
	Script *script.Script
	// Program holds the statements that parsed cleanly
	Program *ast.Program
	// Diagnostics holds lexical and syntax errors
	Diagnostics *diag.List
}

// Err returns the diagnostics as a joined error with source context, or nil.
func (r *Result) Err() error {
	return Errors(r.Diagnostics.Items(), r.Script.Content)
}

// CompileScript compiles a script loaded by script.Loader.
func CompileScript(s *script.Script) *Result {
	diags := &diag.List{}
	return &Result{
		Script:      s,
		Program:     Compile(s.Content, diags),
		Diagnostics: diags,
	}
}

// CompileFile reads a file, converts it to UTF-8 and compiles the content.
//
// Parameters:
//   - path: Path to the program file
//   - enc: source encoding, or script.Auto to detect it
//
// Returns:
//   - *Result: the compiled program and its diagnostics
//   - error: when the file cannot be read or decoded
func CompileFile(path string, enc script.Encoding) (*Result, error) {
	s, err := script.LoadFile(path, enc)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	logger.GetLogger().Info("loaded program", "file", s.FileName, "size", s.Size, "encoding", s.Encoding)
	return CompileScript(s), nil
}
