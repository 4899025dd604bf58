package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/planops/sopdash/internal/cli/formatter"
	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/export"
)

const dataPageSize = 10

// dataView shows the raw planning grid with substring search and
// fixed-size pagination, mirroring the audit table planners use to verify
// the aggregated views.
type dataView struct {
	state   *SharedState
	search  textinput.Model
	typing  bool
	page    int
	sortCol int // index into RawColumns, -1 = stored order
	desc    bool
}

func newDataView(state *SharedState) *dataView {
	ti := textinput.New()
	ti.Placeholder = "search all columns"
	ti.CharLimit = 64
	ti.Width = 32
	return &dataView{state: state, search: ti, sortCol: -1}
}

func (v *dataView) ID() ViewID    { return ViewData }
func (v *dataView) Title() string { return "Data" }

func (v *dataView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "page")),
		key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort column")),
		key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "direction")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
	}
}

func (v *dataView) Init() tea.Cmd { return nil }

func (v *dataView) capturingInput() bool { return v.typing }

func (v *dataView) rows() (*domain.ScenarioDataset, []map[string]string) {
	ds := v.state.View()
	if ds == nil {
		return nil, nil
	}
	query := strings.ToLower(strings.TrimSpace(v.search.Value()))
	out := ds.RawRows
	if query != "" {
		out = nil
		for _, row := range ds.RawRows {
			for _, col := range ds.RawColumns {
				if strings.Contains(strings.ToLower(row[col]), query) {
					out = append(out, row)
					break
				}
			}
		}
	}
	if v.sortCol >= 0 && v.sortCol < len(ds.RawColumns) {
		col := ds.RawColumns[v.sortCol]
		sorted := make([]map[string]string, len(out))
		copy(sorted, out)
		sort.SliceStable(sorted, func(i, j int) bool {
			less := cellLess(sorted[i][col], sorted[j][col])
			if v.desc {
				return cellLess(sorted[j][col], sorted[i][col])
			}
			return less
		})
		out = sorted
	}
	return ds, out
}

// cellLess orders two grid cells, numerically when both parse as numbers.
func cellLess(a, b string) bool {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

func (v *dataView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dataChangedMsg:
		v.page = 0
		return v, nil

	case tea.KeyMsg:
		if v.typing {
			switch msg.String() {
			case "enter", "esc":
				v.typing = false
				v.search.Blur()
				v.page = 0
				return v, nil
			}
			var cmd tea.Cmd
			v.search, cmd = v.search.Update(msg)
			v.page = 0
			return v, cmd
		}

		switch msg.String() {
		case "/":
			v.typing = true
			return v, v.search.Focus()
		case "left", "h":
			if v.page > 0 {
				v.page--
			}
		case "right", "l":
			_, rows := v.rows()
			if (v.page+1)*dataPageSize < len(rows) {
				v.page++
			}
		case "o":
			ds := v.state.View()
			if ds != nil && len(ds.RawColumns) > 0 {
				v.sortCol = (v.sortCol+2)%(len(ds.RawColumns)+1) - 1
				v.page = 0
			}
		case "O":
			v.desc = !v.desc
			v.page = 0
		case "e":
			return v, v.exportRaw()
		}
	}
	return v, nil
}

// exportRaw snapshots the filtered dataset on the program goroutine; the
// command only does file I/O. An empty grid never touches the filesystem.
func (v *dataView) exportRaw() tea.Cmd {
	ds := v.state.View()
	if ds == nil || len(ds.RawRows) == 0 {
		return func() tea.Msg { return exportDoneMsg{err: export.ErrNoData} }
	}
	path := filepath.Join(v.state.ExportDir, export.RawDataFilename(v.state.Controller.Scenario()))
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()
		if err := export.WriteRawCSV(f, ds); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func (v *dataView) View() string {
	ds, rows := v.rows()
	if ds == nil || len(ds.RawColumns) == 0 {
		return formatter.Dim("No raw data for this scenario.")
	}

	pages := (len(rows) + dataPageSize - 1) / dataPageSize
	if pages == 0 {
		pages = 1
	}
	if v.page >= pages {
		v.page = pages - 1
	}
	start := v.page * dataPageSize
	end := start + dataPageSize
	if end > len(rows) {
		end = len(rows)
	}

	tableRows := make([][]string, 0, end-start)
	for _, row := range rows[start:end] {
		cells := make([]string, len(ds.RawColumns))
		for i, col := range ds.RawColumns {
			cells[i] = row[col]
		}
		tableRows = append(tableRows, cells)
	}

	var b strings.Builder
	title := fmt.Sprintf("Raw Data (%d rows, page %d/%d)", len(rows), v.page+1, pages)
	if v.sortCol >= 0 && v.sortCol < len(ds.RawColumns) {
		title += ", sorted by " + ds.RawColumns[v.sortCol]
	}
	b.WriteString(formatter.Header(title))
	b.WriteString("\n")
	if v.typing || v.search.Value() != "" {
		b.WriteString(fmt.Sprintf("Search: %s\n", v.search.View()))
	}
	if len(tableRows) == 0 {
		b.WriteString(formatter.Dim("No rows match the search."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(formatter.RenderTable(ds.RawColumns, tableRows, nil))
	return b.String()
}
