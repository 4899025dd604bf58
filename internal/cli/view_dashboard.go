package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/planops/sopdash/internal/cli/formatter"
	"github.com/planops/sopdash/internal/domain"
)

// baseKPIsMsg carries the BASE scenario KPI snapshots for compare mode.
type baseKPIsMsg struct {
	kpis map[string]domain.KPI
	err  error
}

// dashboardView is the landing tab: KPI cards for the first horizon week,
// the demand/supply chart and a process flow strip from raw material to
// finished sheet.
type dashboardView struct {
	state    *SharedState
	baseKPIs map[string]domain.KPI
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return nil
}

func (v *dashboardView) Init() tea.Cmd { return nil }

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dataChangedMsg:
		if v.state.Compare && v.baseKPIs == nil {
			return v, v.loadBaseKPIs()
		}
	case baseKPIsMsg:
		if msg.err == nil {
			v.baseKPIs = msg.kpis
		}
	}
	return v, nil
}

func (v *dashboardView) loadBaseKPIs() tea.Cmd {
	ctrl := v.state.Controller
	return func() tea.Msg {
		kpis, err := ctrl.BaseKPIs(context.Background())
		return baseKPIsMsg{kpis: kpis, err: err}
	}
}

func (v *dashboardView) View() string {
	ds := v.state.View()
	if ds == nil || len(ds.TimeSeries) == 0 {
		return formatter.Dim("No data for the current filters.")
	}
	week := ds.TimeSeries[0].Week

	var b strings.Builder
	b.WriteString(v.renderKPICards(ds, week))
	b.WriteString("\n")
	b.WriteString(formatter.Header("Demand vs Supply"))
	b.WriteString("\n")
	b.WriteString(formatter.RenderDemandSupply(ds.TimeSeries, chartWidth(v.state.Width)))
	b.WriteString("\n")
	b.WriteString(formatter.Header("Process Flow"))
	b.WriteString("\n")
	b.WriteString(v.renderProcessFlow(ds))
	return b.String()
}

func (v *dashboardView) renderKPICards(ds *domain.ScenarioDataset, week string) string {
	kpi, ok := ds.KPIs[week]
	if !ok {
		return formatter.Dim(fmt.Sprintf("No KPIs for week %s.", week))
	}

	var base *domain.KPI
	if v.state.Compare && v.baseKPIs != nil {
		if bk, ok := v.baseKPIs[week]; ok {
			base = &bk
		}
	}

	card := func(title, value, delta string) string {
		content := fmt.Sprintf("%s\n%s", formatter.Dim(title), formatter.Bold(value))
		if delta != "" {
			content += "\n" + delta
		}
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(formatter.ColorDim).
			Padding(0, 1).
			Render(content)
	}

	intDelta := func(current, base int) string { return formatter.DeltaStyled(current - base) }

	cards := []string{
		card("Total Demand", formatter.FormatInt(kpi.TotalDemand), deltaIf(base != nil, func() string { return intDelta(kpi.TotalDemand, base.TotalDemand) })),
		card("Fill Rate", formatter.FillRateStyled(kpi.FillRate), deltaIf(base != nil, func() string { return formatter.DeltaPctStyled(kpi.FillRate - base.FillRate) })),
		card("Planned Inv", formatter.FormatInt(kpi.PlannedInventory), deltaIf(base != nil, func() string { return intDelta(kpi.PlannedInventory, base.PlannedInventory) })),
		card("On Hand", formatter.FormatInt(kpi.OnHandInventory), deltaIf(base != nil, func() string { return intDelta(kpi.OnHandInventory, base.OnHandInventory) })),
		card("Prod Orders", formatter.FormatInt(kpi.ProductionOrderQty), deltaIf(base != nil, func() string { return intDelta(kpi.ProductionOrderQty, base.ProductionOrderQty) })),
		card("Purchases", formatter.FormatInt(kpi.TotalPlannedPurchases), deltaIf(base != nil, func() string { return intDelta(kpi.TotalPlannedPurchases, base.TotalPlannedPurchases) })),
	}

	title := fmt.Sprintf("Week %s KPIs", week)
	if v.state.Compare {
		title += "  (vs BASE)"
	}
	return formatter.Header(title) + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n"
}

func deltaIf(show bool, fn func() string) string {
	if !show {
		return ""
	}
	return fn()
}

// renderProcessFlow shows current inventory at each production stage.
func (v *dashboardView) renderProcessFlow(ds *domain.ScenarioDataset) string {
	stages := []struct {
		label string
		ids   []string
	}{
		{"Raw", []string{"RM-10", "RM-20"}},
		{"Calcine", []string{"IM-55"}},
		{"Coat & Sheet", []string{"FG-90"}},
	}

	materials := v.state.Controller.Materials()
	var parts []string
	for _, stage := range stages {
		var lines []string
		lines = append(lines, formatter.Bold(stage.label))
		for _, id := range stage.ids {
			levels, ok := ds.Inventory[id]
			if !ok || len(levels) == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s %s",
				formatter.Dim(domain.MaterialName(materials, id)),
				formatter.FormatInt(levels[0])))
		}
		if len(lines) == 1 {
			lines = append(lines, formatter.Dim("filtered out"))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	arrow := formatter.Dim("  ─▶  ")
	return lipgloss.JoinHorizontal(lipgloss.Center, parts[0], arrow, parts[1], arrow, parts[2]) + "\n"
}

func chartWidth(terminal int) int {
	w := terminal - 40
	if w < 10 {
		w = 20
	}
	if w > 60 {
		w = 60
	}
	return w
}
