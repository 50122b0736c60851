package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zurustar/pixelpen/pkg/compiler/ast"
	"github.com/zurustar/pixelpen/pkg/diag"
	"github.com/zurustar/pixelpen/pkg/script"
)

// TestCompile tests the Compile function with various source code inputs.
func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantStmts  int
		wantErrLen int
	}{
		{
			name:       "empty source",
			source:     "",
			wantStmts:  0,
			wantErrLen: 0,
		},
		{
			name:       "spawn and draw",
			source:     "Spawn(0, 0)\nColor(\"blue\")\nDrawLine(1, 0, 3)",
			wantStmts:  3,
			wantErrLen: 0,
		},
		{
			name:       "loop with label",
			source:     "Spawn(0, 0)\nn <- 0\nloop\nn <- n + 1\nGoTo[loop](n < 5)",
			wantStmts:  5,
			wantErrLen: 0,
		},
		{
			name:       "lexical error keeps statement",
			source:     "Spawn(0, 0) @",
			wantStmts:  1,
			wantErrLen: 1,
		},
		{
			name:       "syntax error drops only its line",
			source:     "Spawn(0, 0)\nSize(\nFill()",
			wantStmts:  2,
			wantErrLen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var diags diag.List
			program := Compile(tt.source, &diags)

			if len(program.Statements) != tt.wantStmts {
				t.Errorf("expected %d statements, got %d", tt.wantStmts, len(program.Statements))
			}
			if diags.Len() != tt.wantErrLen {
				t.Errorf("expected %d diagnostics, got %d: %v", tt.wantErrLen, diags.Len(), diags.Items())
			}
		})
	}
}

func TestCompile_NilDiagnostics(t *testing.T) {
	program := Compile("Fill()", nil)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	if _, ok := program.Statements[0].(*ast.FillStatement); !ok {
		t.Errorf("expected *ast.FillStatement, got %T", program.Statements[0])
	}
}

func TestCompile_AppendsToExistingList(t *testing.T) {
	var diags diag.List
	diags.Add(diag.Semantic, 9, 1, "earlier")

	Compile("$", &diags)

	items := diags.Items()
	if len(items) != 2 || items[0].Message != "earlier" || items[1].Kind != diag.Unexpected {
		t.Errorf("unexpected diagnostics: %v", items)
	}
}

func TestCompileFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "line.pen")
	source := "Spawn(0, 0)\nDrawLine(1, 0 2)\n"
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result, err := CompileFile(path, script.Auto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Script.FileName != "line.pen" {
		t.Errorf("expected file name line.pen, got %q", result.Script.FileName)
	}
	if len(result.Program.Statements) != 1 {
		t.Errorf("expected 1 statement, got %d", len(result.Program.Statements))
	}
	if result.Diagnostics.Count(diag.Syntactic) != 1 {
		t.Errorf("expected 1 Sintactic diagnostic, got %v", result.Diagnostics.Items())
	}
	if result.Err() == nil {
		t.Error("expected Err() to report the diagnostic")
	}
}

func TestCompileFile_Missing(t *testing.T) {
	_, err := CompileFile(filepath.Join(t.TempDir(), "missing.pen"), script.Auto)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestCompileScript_Clean(t *testing.T) {
	result := CompileScript(&script.Script{FileName: "a.pen", Content: "Spawn(1, 1)"})

	if err := result.Err(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
