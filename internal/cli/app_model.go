package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/planops/sopdash/internal/cli/formatter"
)

// appModel is the root bubbletea Model for the TUI. It owns a fixed set of
// tabs and routes messages to the active one; scenario switching, filtering
// and refresh are handled here so every tab sees the same session state.
type appModel struct {
	state    *SharedState
	tabs     []View
	active   int
	quitting bool

	loading bool
	spin    spinner.Model

	filterForm *filterForm

	status string
	err    error
}

func newAppModel(app *App) appModel {
	state := &SharedState{
		App:        app,
		Controller: app.Controller,
		ExportDir:  app.ExportDir,
	}
	state.ResetFilters()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleYellow

	m := appModel{
		state:   state,
		spin:    sp,
		loading: true,
		tabs: []View{
			newDashboardView(state),
			newAlertsView(state),
			newProductionView(state),
			newInventoryView(state),
			newDataView(state),
			newChangeLogView(state),
		},
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadInitial())
}

// loadInitial fetches the scenario list and loads the first scenario.
func (m appModel) loadInitial() tea.Cmd {
	state := m.state
	return func() tea.Msg {
		ctx := context.Background()
		infos, err := state.App.Scenarios.List(ctx)
		if err != nil {
			return scenarioLoadedMsg{err: err}
		}
		state.Scenarios = infos
		if len(infos) == 0 {
			return scenarioLoadedMsg{err: fmt.Errorf("store has no scenarios")}
		}
		id := infos[0].ID
		if err := state.Controller.LoadScenario(ctx, id); err != nil {
			return scenarioLoadedMsg{id: id, err: err}
		}
		return scenarioLoadedMsg{id: id}
	}
}

func (m appModel) loadScenario(index int) tea.Cmd {
	state := m.state
	return func() tea.Msg {
		id := state.Scenarios[index].ID
		if err := state.Controller.LoadScenario(context.Background(), id); err != nil {
			return scenarioLoadedMsg{id: id, err: err}
		}
		return scenarioLoadedMsg{id: id}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m.forwardToAll(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case scenarioLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		for i, info := range m.state.Scenarios {
			if info.ID == msg.id {
				m.state.Selected = i
			}
		}
		m.status = fmt.Sprintf("Loaded %s", msg.id)
		return m.forwardToAll(dataChangedMsg{})

	case applyResultMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		if msg.record == nil {
			m.status = fmt.Sprintf("Alert %d dismissed, no data to adjust", msg.alertID)
		} else {
			m.status = fmt.Sprintf("Applied #%d: %s", msg.record.SequenceID, msg.record.ChangeType)
		}
		return m.forwardToAll(dataChangedMsg{})

	case exportDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Exported %s", msg.path)
		}
		return m, nil


	case filterFormDoneMsg:
		m.filterForm = nil
		if msg.accepted {
			m.status = "Filters applied"
		}
		return m.forwardToAll(dataChangedMsg{})

	case tea.KeyMsg:
		if m.filterForm != nil {
			form, cmd := m.filterForm.Update(msg)
			m.filterForm = form
			return m, cmd
		}
		return m.handleKey(msg)
	}

	if m.filterForm != nil {
		form, cmd := m.filterForm.Update(msg)
		m.filterForm = form
		return m, cmd
	}
	// Tab-specific result messages (e.g. the base KPI load) may arrive
	// while another tab is active; every tab sees them.
	return m.forwardToAll(msg)
}

// inputCapturer is implemented by tabs with a focused text input. While
// capturing, every key except ctrl+c goes to the tab instead of the
// global bindings.
type inputCapturer interface {
	capturingInput() bool
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While a load command is in flight, only quitting is allowed. Tabs
	// must not reach the controller until the load's result message lands.
	if m.loading {
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if c, ok := m.tabs[m.active].(inputCapturer); ok && c.capturingInput() && msg.String() != "ctrl+c" {
		return m.forwardToActive(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "1", "2", "3", "4", "5", "6":
		m.active = int(msg.String()[0] - '1')
		m.status = ""
		return m, nil

	case "tab":
		m.active = (m.active + 1) % len(m.tabs)
		return m, nil

	case "shift+tab":
		m.active = (m.active + len(m.tabs) - 1) % len(m.tabs)
		return m, nil

	case "s":
		if len(m.state.Scenarios) == 0 {
			return m, nil
		}
		next := (m.state.Selected + 1) % len(m.state.Scenarios)
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.loadScenario(next))

	case "f":
		m.filterForm = newFilterForm(m.state)
		return m, m.filterForm.Init()

	case "F":
		m.state.ResetFilters()
		m.status = "Filters cleared"
		return m.forwardToAll(dataChangedMsg{})

	case "c":
		m.state.Compare = !m.state.Compare
		return m.forwardToAll(dataChangedMsg{})

	case "r":
		m.loading = true
		state := m.state
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			if err := state.Controller.Refresh(context.Background()); err != nil {
				return scenarioLoadedMsg{err: err}
			}
			return scenarioLoadedMsg{id: state.Controller.Scenario()}
		})
	}
	return m.forwardToActive(msg)
}

func (m appModel) forwardToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.tabs[m.active].Update(msg)
	m.tabs[m.active] = updated.(View)
	return m, cmd
}

func (m appModel) forwardToAll(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for i, v := range m.tabs {
		updated, cmd := v.Update(msg)
		m.tabs[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	case m.loading:
		b.WriteString(fmt.Sprintf("%s Loading scenario data...\n", m.spin.View()))
	case m.filterForm != nil:
		b.WriteString(m.filterForm.View())
	default:
		b.WriteString(m.tabs[m.active].View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m appModel) renderHeader() string {
	info := m.state.ActiveScenario()
	title := formatter.StyleHeader.Render("S&OP SCENARIO REVIEW")
	scenario := fmt.Sprintf("%s %s", formatter.Bold(string(info.ID)), formatter.Dim(info.Name))

	var tabs []string
	for i, v := range m.tabs {
		label := fmt.Sprintf("%d %s", i+1, v.Title())
		if i == m.active {
			tabs = append(tabs, formatter.StyleHeader.Render(label))
		} else {
			tabs = append(tabs, formatter.Dim(label))
		}
	}
	line := strings.Join(tabs, formatter.Dim(" │ "))

	summary := m.state.Controller.PendingSummary()
	badges := fmt.Sprintf("%s %d  %s %d  %s %d",
		formatter.StyleRed.Render("●"), summary.Critical,
		formatter.StyleYellow.Render("●"), summary.Capacity,
		formatter.StyleBlue.Render("●"), summary.Supporting)

	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s  %s  %s", title, scenario, badges),
		line)
}

func (m appModel) renderFooter() string {
	hints := []string{
		"1-6 tabs", "s scenario", "f filter", "F clear", "c compare", "r refresh", "q quit",
	}
	if v := m.tabs[m.active]; !m.loading && m.filterForm == nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
		}
	}
	footer := formatter.Dim(strings.Join(hints, " · "))
	if m.status != "" {
		footer = formatter.StyleAqua.Render(m.status) + "\n" + footer
	}
	return footer
}
