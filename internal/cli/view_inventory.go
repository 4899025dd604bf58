package cli

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/planops/sopdash/internal/cli/formatter"
	"github.com/planops/sopdash/internal/domain"
)

// inventoryView shows projected inventory per material across the horizon.
// Week columns always cover the full horizon: inventory tracks are indexed
// by horizon offset, not by the filtered week range.
type inventoryView struct {
	state *SharedState
}

func newInventoryView(state *SharedState) *inventoryView {
	return &inventoryView{state: state}
}

func (v *inventoryView) ID() ViewID    { return ViewInventory }
func (v *inventoryView) Title() string { return "Inventory" }

func (v *inventoryView) ShortHelp() []key.Binding { return nil }

func (v *inventoryView) Init() tea.Cmd { return nil }

func (v *inventoryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return v, nil
}

func (v *inventoryView) View() string {
	ds := v.state.View()
	if ds == nil || len(ds.Inventory) == 0 {
		return formatter.Dim("No inventory data for the current filters.")
	}

	ids := make([]string, 0, len(ds.Inventory))
	maxWeeks := 0
	for id, levels := range ds.Inventory {
		ids = append(ids, id)
		if len(levels) > maxWeeks {
			maxWeeks = len(levels)
		}
	}
	sort.Strings(ids)

	headers := []string{"Material"}
	for i := 0; i < maxWeeks; i++ {
		headers = append(headers, "W"+strconv.Itoa(domain.FirstWeek+i))
	}
	aligns := make([]formatter.Align, len(headers))
	for i := 1; i < len(aligns); i++ {
		aligns[i] = formatter.AlignRight
	}

	materials := v.state.Controller.Materials()
	styles := formatter.MaterialStyles(ids)
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		row := []string{styles[id].Render(domain.MaterialName(materials, id))}
		for _, qty := range ds.Inventory[id] {
			cell := formatter.FormatInt(qty)
			if qty == 0 {
				cell = formatter.StyleRed.Render(cell)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Projected Inventory"))
	b.WriteString("\n")
	b.WriteString(formatter.RenderTable(headers, rows, aligns))
	return b.String()
}
