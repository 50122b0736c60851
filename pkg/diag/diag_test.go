package diag

import (
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{Unexpected, "Unexpected"},
		{Semantic, "Semantic"},
		{Syntactic, "Sintactic"},
		{ExecutionTime, "ExecusionTime"},
		{Kind(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestListKeepsDetectionOrder(t *testing.T) {
	var l List
	l.Add(ExecutionTime, 7, 0, "late")
	l.Addf(Unexpected, 1, 3, "bad char %q", '$')
	l.Add(Semantic, 4, 1, "unknown color")

	items := l.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(items))
	}
	if items[0].Message != "late" || items[1].Message != `bad char '$'` || items[2].Kind != Semantic {
		t.Errorf("unexpected order or content: %+v", items)
	}
	if l.Count(Semantic) != 1 {
		t.Errorf("Count(Semantic) = %d, want 1", l.Count(Semantic))
	}
}

func TestListItemsIsACopy(t *testing.T) {
	var l List
	l.Add(Semantic, 1, 1, "a")

	items := l.Items()
	items[0].Message = "changed"

	if l.Items()[0].Message != "a" {
		t.Error("Items() must not expose the internal slice")
	}
}

func TestListClear(t *testing.T) {
	var l List
	l.Add(Semantic, 1, 1, "a")
	l.Add(Semantic, 2, 1, "b")
	l.Clear()

	if !l.Empty() || l.Len() != 0 {
		t.Errorf("expected empty list after Clear, got %d items", l.Len())
	}
}

func TestDiagnosticError(t *testing.T) {
	d := Diagnostic{Kind: Syntactic, Line: 3, Column: 5, Message: "invalid call to Spawn"}
	want := "Sintactic error at line 3, column 5: invalid call to Spawn"
	if d.Error() != want {
		t.Errorf("Error() = %q, want %q", d.Error(), want)
	}

	d.Column = 0
	want = "Sintactic error at line 3: invalid call to Spawn"
	if d.Error() != want {
		t.Errorf("Error() = %q, want %q", d.Error(), want)
	}
}

func TestGenerateErrorContext(t *testing.T) {
	source := "Spawn(0, 0)\nColor(\"red\")\nSize(3)\nDrawLine(1, 0 5)\nFill()\nx <- 1"

	got := GenerateErrorContext(source, 4, 15)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	if len(lines) != 6 {
		t.Fatalf("expected 6 lines of context, got %d:\n%s", len(lines), got)
	}
	if lines[0] != "  2 | Color(\"red\")" {
		t.Errorf("first context line = %q", lines[0])
	}
	if lines[2] != "> 4 | DrawLine(1, 0 5)" {
		t.Errorf("error line = %q", lines[2])
	}
	if strings.Index(lines[3], "^") != 6+14 {
		t.Errorf("caret at %d, want %d: %q", strings.Index(lines[3], "^"), 6+14, lines[3])
	}
}

func TestGenerateErrorContext_NoColumn(t *testing.T) {
	got := GenerateErrorContext("Spawn(0,0)\nx <- 1 / 0", 2, 0)
	want := "  1 | Spawn(0,0)\n> 2 | x <- 1 / 0\n"
	if got != want {
		t.Errorf("GenerateErrorContext() = %q, want %q", got, want)
	}
}

func TestAddElapsed(t *testing.T) {
	var l List
	l.AddElapsed(31, "time limit of 30s exceeded")

	d := l.Items()[0]
	if d.Kind != ExecutionTime || d.Line != 31 || !d.Elapsed {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
}

func TestGenerateErrorContext_OutOfRange(t *testing.T) {
	if got := GenerateErrorContext("", 1, 1); got != "" {
		t.Errorf("expected empty context for empty source, got %q", got)
	}
	if got := GenerateErrorContext("Fill()", 0, 1); got != "" {
		t.Errorf("expected empty context for line 0, got %q", got)
	}
	if got := GenerateErrorContext("Fill()", 5, 1); got != "" {
		t.Errorf("expected empty context past the end, got %q", got)
	}
}
