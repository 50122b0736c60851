// Package report は診断とキャンバスを端末向けに整形する
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zurustar/pixelpen/pkg/compiler"
	"github.com/zurustar/pixelpen/pkg/diag"
	"github.com/zurustar/pixelpen/pkg/graphics"
)

// MaxPreviewSize はプレビューの最大辺長
// これより大きいキャンバスは間引いて表示する
const MaxPreviewSize = 64

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).PaddingLeft(2)

	kindStyles = map[diag.Kind]lipgloss.Style{
		diag.Unexpected:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		diag.Syntactic:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		diag.Semantic:      lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		diag.ExecutionTime: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	}
)

// Diagnostics は診断の一覧を整形する
// 各診断の後にソースの該当箇所を表示する
func Diagnostics(list *diag.List, source string) string {
	if list.Empty() {
		return okStyle.Render(compiler.Summary(list)) + "\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(compiler.Summary(list)))
	b.WriteString("\n")

	for _, d := range list.Items() {
		b.WriteString(kindStyles[d.Kind].Render(d.Kind.String()))
		b.WriteString(" ")
		b.WriteString(lineStyle.Render(location(d)))
		b.WriteString(" ")
		b.WriteString(d.Message)
		b.WriteString("\n")

		if ctx := compiler.NewError(d, source).Context; ctx != "" {
			b.WriteString(contextStyle.Render(strings.TrimRight(ctx, "\n")))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func location(d diag.Diagnostic) string {
	if d.Column > 0 {
		return fmt.Sprintf("line %d:%d", d.Line, d.Column)
	}
	return fmt.Sprintf("line %d", d.Line)
}

// Canvas はキャンバスを背景色付きの空白で描く（1ピクセル = 2文字）
func Canvas(c *graphics.Canvas) string {
	step := 1
	if c.Size() > MaxPreviewSize {
		step = (c.Size() + MaxPreviewSize - 1) / MaxPreviewSize
	}

	// 同じ色のスタイルは使い回す
	styles := make(map[graphics.Color]lipgloss.Style)
	cell := func(col graphics.Color) string {
		st, ok := styles[col]
		if !ok {
			rgba := col.RGBA()
			hex := fmt.Sprintf("#%02X%02X%02X", rgba.R, rgba.G, rgba.B)
			st = lipgloss.NewStyle().Background(lipgloss.Color(hex))
			styles[col] = st
		}
		return st.Render("  ")
	}

	var b strings.Builder
	for y := 0; y < c.Size(); y += step {
		for x := 0; x < c.Size(); x += step {
			b.WriteString(cell(c.At(x, y)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
