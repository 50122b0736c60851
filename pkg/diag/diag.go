// Package diag collects the diagnostics produced while tokenizing, parsing and
// executing a pixelpen program.
//
// A single List is threaded through every stage of one run. Entries are kept in
// detection order; nothing is ever sorted by severity.
package diag

import (
	"fmt"
	"strings"
)

// Kind classifies a diagnostic by the stage that detected it.
type Kind int

const (
	// Unexpected is reported by the tokenizer (bad character, unterminated string).
	Unexpected Kind = iota
	// Semantic covers unknown labels and colors, type mismatches and bad arguments.
	Semantic
	// Syntactic is reported by the parser.
	Syntactic
	// ExecutionTime covers runtime failures and the time limit.
	ExecutionTime
)

// kindNames are the kind names hosts see. They are part of the output format.
var kindNames = map[Kind]string{
	Unexpected:    "Unexpected",
	Semantic:      "Semantic",
	Syntactic:     "Sintactic",
	ExecutionTime: "ExecusionTime",
}

// String returns the kind's external name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Diagnostic is one recorded problem.
type Diagnostic struct {
	Kind Kind
	// Line is the 1-indexed source line. When Elapsed is set it holds the
	// elapsed whole seconds instead.
	Line int
	// Column is the 1-indexed column, or 0 when unknown.
	Column  int
	Message string
	// Elapsed marks time-limit diagnostics, whose Line is not a source line.
	Elapsed bool
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	if d.Column > 0 {
		return fmt.Sprintf("%s error at line %d, column %d: %s", d.Kind, d.Line, d.Column, d.Message)
	}
	return fmt.Sprintf("%s error at line %d: %s", d.Kind, d.Line, d.Message)
}

// List is an append-only, ordered collection of diagnostics.
// The zero value is ready to use.
type List struct {
	items []Diagnostic
}

// Add appends a diagnostic.
func (l *List) Add(kind Kind, line, column int, message string) {
	l.items = append(l.items, Diagnostic{
		Kind:    kind,
		Line:    line,
		Column:  column,
		Message: message,
	})
}

// AddElapsed appends a time-limit diagnostic reported after seconds of
// execution.
func (l *List) AddElapsed(seconds int, message string) {
	l.items = append(l.items, Diagnostic{
		Kind:    ExecutionTime,
		Line:    seconds,
		Message: message,
		Elapsed: true,
	})
}

// Addf appends a diagnostic with a formatted message.
func (l *List) Addf(kind Kind, line, column int, format string, args ...any) {
	l.Add(kind, line, column, fmt.Sprintf(format, args...))
}

// Items returns a copy of the recorded diagnostics.
func (l *List) Items() []Diagnostic {
	out := make([]Diagnostic, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of recorded diagnostics.
func (l *List) Len() int {
	return len(l.items)
}

// Empty reports whether nothing has been recorded.
func (l *List) Empty() bool {
	return len(l.items) == 0
}

// Count returns how many diagnostics of the given kind were recorded.
func (l *List) Count(kind Kind) int {
	n := 0
	for _, d := range l.items {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Clear drops every recorded diagnostic. Called at the start of each run.
func (l *List) Clear() {
	l.items = l.items[:0]
}

// GenerateErrorContext renders the source around a diagnostic location.
// It shows 2 lines before and after the error line, with line numbers and a
// caret under the error column. A column of 0 marks the line without a caret.
//
// Example output:
//
//	  2 | Color("red")
//	  3 | Size(3)
//	> 4 | DrawLine(1, 0 5)
//	    |               ^
//	  5 | Fill()
func GenerateErrorContext(source string, line, column int) string {
	if source == "" || line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}

	start := line - 3
	if start < 0 {
		start = 0
	}
	end := line + 2
	if end > len(lines) {
		end = len(lines)
	}

	var buf strings.Builder
	lineNumWidth := len(fmt.Sprintf("%d", end))

	for i := start; i < end; i++ {
		lineNum := i + 1
		content := strings.TrimRight(lines[i], "\r")

		if lineNum != line {
			fmt.Fprintf(&buf, "  %*d | %s\n", lineNumWidth, lineNum, content)
			continue
		}

		fmt.Fprintf(&buf, "> %*d | %s\n", lineNumWidth, lineNum, content)
		if column <= 0 {
			continue
		}
		// "> " + width + " | "
		indent := 2 + lineNumWidth + 3 + column - 1
		fmt.Fprintf(&buf, "%s^\n", strings.Repeat(" ", indent))
	}

	return buf.String()
}
