package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}
	return boxStyle.Render(content)
}

// FormatInt renders an integer with thousands separators, planning style.
func FormatInt(n int) string {
	negative := n < 0
	if negative {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if negative {
		return "-" + s
	}
	return s
}

// FormatPct renders a ratio as a whole percentage, e.g. 0.958 -> "96%".
func FormatPct(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}

// FillRateStyled colors a fill rate: green at or above 100%, yellow above
// 90%, red below.
func FillRateStyled(ratio float64) string {
	text := FormatPct(ratio)
	switch {
	case ratio >= 1:
		return StyleGreen.Render(text)
	case ratio >= 0.9:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}

// DeltaStyled renders a signed difference against the base plan: green for
// improvements, red for regressions, dim for no change.
func DeltaStyled(delta int) string {
	switch {
	case delta > 0:
		return StyleGreen.Render(fmt.Sprintf("▲ %s", FormatInt(delta)))
	case delta < 0:
		return StyleRed.Render(fmt.Sprintf("▼ %s", FormatInt(-delta)))
	default:
		return StyleDim.Render("–")
	}
}

// DeltaPctStyled is DeltaStyled for ratio-valued KPIs.
func DeltaPctStyled(delta float64) string {
	switch {
	case delta > 0.0005:
		return StyleGreen.Render(fmt.Sprintf("▲ %.1f pt", delta*100))
	case delta < -0.0005:
		return StyleRed.Render(fmt.Sprintf("▼ %.1f pt", -delta*100))
	default:
		return StyleDim.Render("–")
	}
}
