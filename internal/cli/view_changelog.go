package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/planops/sopdash/internal/changelog"
	"github.com/planops/sopdash/internal/cli/formatter"
)

// sortCycle is the order the "o" key walks through the sortable columns.
var sortCycle = []changelog.SortField{
	changelog.FieldSequence,
	changelog.FieldTimestamp,
	changelog.FieldAlertType,
	changelog.FieldMaterial,
	changelog.FieldWeek,
	changelog.FieldChangeType,
}

// changeLogView shows the session's audit trail with search, column
// sorting and CSV export.
type changeLogView struct {
	state     *SharedState
	search    textinput.Model
	typing    bool
	sortField int
	desc      bool
}

func newChangeLogView(state *SharedState) *changeLogView {
	ti := textinput.New()
	ti.Placeholder = "search the log"
	ti.CharLimit = 64
	ti.Width = 32
	// Newest change on top by default.
	return &changeLogView{state: state, search: ti, sortField: 1, desc: true}
}

func (v *changeLogView) ID() ViewID    { return ViewChangeLog }
func (v *changeLogView) Title() string { return "Change Log" }

func (v *changeLogView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort column")),
		key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "direction")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
	}
}

func (v *changeLogView) Init() tea.Cmd { return nil }

func (v *changeLogView) capturingInput() bool { return v.typing }

func (v *changeLogView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if v.typing {
		switch keyMsg.String() {
		case "enter", "esc":
			v.typing = false
			v.search.Blur()
			return v, nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(keyMsg)
		return v, cmd
	}

	switch keyMsg.String() {
	case "/":
		v.typing = true
		return v, v.search.Focus()
	case "o":
		v.sortField = (v.sortField + 1) % len(sortCycle)
	case "O":
		v.desc = !v.desc
	case "e":
		return v, v.exportLog()
	}
	return v, nil
}

// exportLog snapshots the records on the program goroutine; the command
// only does file I/O. An empty log never touches the filesystem.
func (v *changeLogView) exportLog() tea.Cmd {
	records := v.state.Controller.ChangeLog().Records()
	if len(records) == 0 {
		return func() tea.Msg { return exportDoneMsg{err: fmt.Errorf("change log is empty")} }
	}
	path := filepath.Join(v.state.ExportDir, changelog.ExportFilename)
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()
		if err := changelog.WriteCSV(f, records); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func (v *changeLogView) View() string {
	log := v.state.Controller.ChangeLog()

	records := log.Filter(v.search.Value())
	direction := changelog.Ascending
	if v.desc {
		direction = changelog.Descending
	}
	records = changelog.SortBy(records, sortCycle[v.sortField], direction)

	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("Change Log (%d entries, sorted by %s)",
		len(records), sortCycle[v.sortField])))
	b.WriteString("\n")
	b.WriteString(formatter.Dim("Session " + v.state.Controller.RunID()))
	b.WriteString("\n")
	if v.typing || v.search.Value() != "" {
		b.WriteString(fmt.Sprintf("Search: %s\n", v.search.View()))
	}

	if len(records) == 0 {
		b.WriteString(formatter.Dim("No changes recorded yet. Apply a recommendation from the Alerts tab."))
		b.WriteString("\n")
		return b.String()
	}

	headers := []string{"ID", "Timestamp", "Type", "Material", "Week", "Change", "Before", "After"}
	aligns := []formatter.Align{
		formatter.AlignRight, formatter.AlignLeft, formatter.AlignLeft, formatter.AlignLeft,
		formatter.AlignRight, formatter.AlignLeft, formatter.AlignRight, formatter.AlignRight,
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.SequenceID),
			formatter.Dim(r.TimestampString()),
			formatter.AlertColor(r.AlertType).Render(string(r.AlertType)),
			r.Material(),
			r.Week,
			string(r.ChangeType),
			formatter.FormatInt(r.Before),
			formatter.StyleGreen.Render(formatter.FormatInt(r.After)),
		})
	}
	b.WriteString(formatter.RenderTable(headers, rows, aligns))

	// Impact narrative of the most recent change, independent of sort order.
	latest := records[0]
	for _, r := range records[1:] {
		if r.SequenceID > latest.SequenceID {
			latest = r
		}
	}
	b.WriteString("\n")
	b.WriteString(formatter.Dim("Impact: " + latest.Impact))
	b.WriteString("\n")
	return b.String()
}
