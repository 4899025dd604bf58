package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/planops/sopdash/internal/cli/formatter"
	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/export"
)

// alertsView lists the pending alerts of the active scenario with the
// recommendation for the selected one. Applying mutates the live dataset
// through the controller; the alert then disappears from the list.
type alertsView struct {
	state  *SharedState
	cursor int
}

func newAlertsView(state *SharedState) *alertsView {
	return &alertsView{state: state}
}

func (v *alertsView) ID() ViewID    { return ViewAlerts }
func (v *alertsView) Title() string { return "Alerts" }

func (v *alertsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "select")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
	}
}

func (v *alertsView) Init() tea.Cmd { return nil }

func (v *alertsView) pending() []domain.Alert {
	return filteredPending(v.state)
}

// filteredPending applies the alert-type filter to the controller's pending
// list, keeping its severity ordering.
func filteredPending(state *SharedState) []domain.Alert {
	pending := state.Controller.Pending()
	out := pending[:0:0]
	for _, a := range pending {
		if state.Filters.HasAlertType(a.Type) {
			out = append(out, a)
		}
	}
	return out
}

func (v *alertsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dataChangedMsg:
		if n := len(v.pending()); v.cursor >= n && n > 0 {
			v.cursor = n - 1
		} else if n == 0 {
			v.cursor = 0
		}
		return v, nil

	case tea.KeyMsg:
		pending := v.pending()
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(pending)-1 {
				v.cursor++
			}
		case "a":
			if v.cursor < len(pending) {
				// Applied in place: the mutation is in-memory and instant,
				// only the result message goes through the command queue.
				alertID := pending[v.cursor].ID
				record, err := v.state.Controller.ApplyRecommendation(alertID)
				return v, func() tea.Msg {
					return applyResultMsg{alertID: alertID, record: record, err: err}
				}
			}
		case "e":
			return v, v.exportAlerts(pending)
		}
	}
	return v, nil
}

// exportAlerts snapshots everything on the program goroutine; the command
// only does file I/O. An empty list never touches the filesystem.
func (v *alertsView) exportAlerts(alerts []domain.Alert) tea.Cmd {
	if len(alerts) == 0 {
		return func() tea.Msg { return exportDoneMsg{err: export.ErrNoData} }
	}
	path := filepath.Join(v.state.ExportDir, export.AlertsFilename(v.state.Controller.Scenario()))
	materials := v.state.Controller.Materials()
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()
		if err := export.WriteAlertsCSV(f, alerts, materials); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func (v *alertsView) View() string {
	pending := v.pending()
	applied := v.state.Controller.AppliedCount()

	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("Pending Alerts (%d, %d applied)", len(pending), applied)))
	b.WriteString("\n")

	if len(pending) == 0 {
		b.WriteString(formatter.StyleGreen.Render("All alerts resolved."))
		b.WriteString("\n")
		return b.String()
	}

	materials := v.state.Controller.Materials()
	for i, a := range pending {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleHeader.Render("▸ ")
		}
		b.WriteString(fmt.Sprintf("%s%s  W%s  %s  %s\n",
			cursor,
			formatter.AlertBadge(a.Type),
			a.Week,
			formatter.Bold(domain.MaterialName(materials, a.MaterialID)),
			a.Description))
	}

	if v.cursor < len(pending) {
		b.WriteString("\n")
		b.WriteString(v.renderRecommendation(pending[v.cursor]))
	}
	return b.String()
}

func (v *alertsView) renderRecommendation(a domain.Alert) string {
	rec, err := v.state.Controller.Describe(a.ID)
	if err != nil {
		return formatter.StyleRed.Render(err.Error())
	}

	var b strings.Builder
	b.WriteString(formatter.Bold(rec.Title))
	b.WriteString("\n")
	for i, step := range rec.Steps {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
	}
	b.WriteString(formatter.StyleAqua.Render("Impact: " + rec.Impact))
	b.WriteString("\n")
	return formatter.RenderBox("Recommendation", b.String())
}
