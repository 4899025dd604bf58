package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/planops/sopdash/internal/domain"
)

const (
	barBlock  = "█"
	thinBlock = "▌"
)

// materialPalette cycles through distinguishable foreground styles. The
// assignment is by sorted material ID, so a material keeps its color across
// scenarios and redraws.
var materialPalette = []lipgloss.Style{
	StyleGreen, StyleBlue, StylePurple, StyleYellow, StyleAqua, StyleRed,
}

// MaterialStyles assigns each material a fixed style by sorted ID.
func MaterialStyles(ids []string) map[string]lipgloss.Style {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	styles := make(map[string]lipgloss.Style, len(sorted))
	for i, id := range sorted {
		styles[id] = materialPalette[i%len(materialPalette)]
	}
	return styles
}

// RenderBarChart renders one horizontal bar per label, scaled to the
// largest value. Bars carry the given styles in label order.
func RenderBarChart(labels []string, values []int, styles []lipgloss.Style, width int) string {
	if len(labels) == 0 || width < 1 {
		return ""
	}
	max := 0
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	labelWidth := 0
	for _, l := range labels {
		if w := lipgloss.Width(l); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	for i, label := range labels {
		value := 0
		if i < len(values) {
			value = values[i]
		}
		bar := ""
		if max > 0 && value > 0 {
			n := value * width / max
			if n == 0 {
				bar = thinBlock
			} else {
				bar = strings.Repeat(barBlock, n)
			}
		}
		style := StyleFg
		if i < len(styles) {
			style = styles[i]
		}
		pad := labelWidth - lipgloss.Width(label)
		b.WriteString(Dim(label))
		b.WriteString(strings.Repeat(" ", pad+1))
		b.WriteString(style.Render(bar))
		b.WriteString(fmt.Sprintf(" %d\n", value))
	}
	return b.String()
}

// RenderDemandSupply renders paired demand/supply bars per week. Weeks with
// supply below demand get a red supply bar.
func RenderDemandSupply(series []domain.WeekPoint, width int) string {
	if len(series) == 0 {
		return Dim("no data")
	}
	max := 0
	for _, wp := range series {
		if wp.Demand > max {
			max = wp.Demand
		}
		if wp.Supply > max {
			max = wp.Supply
		}
	}

	var b strings.Builder
	for _, wp := range series {
		supplyStyle := StyleGreen
		if wp.Supply < wp.Demand {
			supplyStyle = StyleRed
		}
		b.WriteString(fmt.Sprintf("%s %s %s %d\n",
			Bold(fmt.Sprintf("W%s", wp.Week)),
			Dim("demand"),
			StyleBlue.Render(scaledBar(wp.Demand, max, width)),
			wp.Demand))
		b.WriteString(fmt.Sprintf("    %s %s %d  %s\n",
			Dim("supply"),
			supplyStyle.Render(scaledBar(wp.Supply, max, width)),
			wp.Supply,
			Dim(fmt.Sprintf("fill %.0f%%", wp.FillRate*100))))
	}
	return b.String()
}

func scaledBar(value, max, width int) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	n := value * width / max
	if n == 0 {
		return thinBlock
	}
	return strings.Repeat(barBlock, n)
}
