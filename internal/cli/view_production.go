package cli

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/planops/sopdash/internal/cli/formatter"
	"github.com/planops/sopdash/internal/domain"
)

// productionView shows the weekly production plan as a table plus a
// per-material totals chart.
type productionView struct {
	state *SharedState
}

func newProductionView(state *SharedState) *productionView {
	return &productionView{state: state}
}

func (v *productionView) ID() ViewID    { return ViewProduction }
func (v *productionView) Title() string { return "Production" }

func (v *productionView) ShortHelp() []key.Binding { return nil }

func (v *productionView) Init() tea.Cmd { return nil }

func (v *productionView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return v, nil
}

func (v *productionView) View() string {
	ds := v.state.View()
	if ds == nil || len(ds.Production) == 0 {
		return formatter.Dim("No production data for the current filters.")
	}

	// Stable column order across all weeks.
	idSet := make(map[string]bool)
	for _, pw := range ds.Production {
		for id := range pw.Quantities {
			idSet[id] = true
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) == 0 {
		return formatter.Dim("No production data for the current filters.")
	}

	headers := append([]string{"Week"}, ids...)
	aligns := make([]formatter.Align, len(headers))
	for i := 1; i < len(aligns); i++ {
		aligns[i] = formatter.AlignRight
	}

	styles := formatter.MaterialStyles(ids)
	totals := make(map[string]int, len(ids))
	rows := make([][]string, 0, len(ds.Production))
	for _, pw := range ds.Production {
		row := []string{pw.Week}
		for _, id := range ids {
			qty, ok := pw.Quantities[id]
			if !ok {
				row = append(row, formatter.Dim("-"))
				continue
			}
			row = append(row, styles[id].Render(formatter.FormatInt(qty)))
			totals[id] += qty
		}
		rows = append(rows, row)
	}

	labels := make([]string, len(ids))
	values := make([]int, len(ids))
	barStyles := make([]lipgloss.Style, 0, len(ids))
	materials := v.state.Controller.Materials()
	for i, id := range ids {
		labels[i] = domain.MaterialName(materials, id)
		values[i] = totals[id]
		barStyles = append(barStyles, styles[id])
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Production Plan"))
	b.WriteString("\n")
	b.WriteString(formatter.RenderTable(headers, rows, aligns))
	b.WriteString("\n")
	b.WriteString(formatter.Header("Horizon Totals"))
	b.WriteString("\n")
	b.WriteString(formatter.RenderBarChart(labels, values, barStyles, chartWidth(v.state.Width)))
	return b.String()
}
