package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align controls how a table column pads its cells. Planning tables are
// mostly numeric, so alignment is per column rather than per cell.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// RenderTable renders an aligned table with a header separator line.
// aligns may be nil (everything left-aligned) or shorter than the header
// row; missing entries default to left.
func RenderTable(headers []string, rows [][]string, aligns []Align) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	// Column widths are measured on visible width so styled cells line up.
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	align := func(i int) Align {
		if aligns != nil && i < len(aligns) {
			return aligns[i]
		}
		return AlignLeft
	}
	const colGap = 2

	var b strings.Builder
	writeCell := func(col int, raw, styled string, last bool) {
		pad := widths[col] - lipgloss.Width(raw)
		if pad < 0 {
			pad = 0
		}
		if align(col) == AlignRight {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(styled)
			if !last {
				b.WriteString(strings.Repeat(" ", colGap))
			}
			return
		}
		b.WriteString(styled)
		if !last {
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}

	for i, h := range headers {
		writeCell(i, h, StyleHeader.Render(h), i == cols-1)
	}
	b.WriteString("\n")
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(i, cell, cell, i == cols-1)
		}
		b.WriteString("\n")
	}
	return b.String()
}
