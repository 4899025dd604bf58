package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/planops/sopdash/internal/cli/formatter"
	"github.com/planops/sopdash/internal/domain"
)

// sopdashHuhTheme styles huh forms with the gruvbox palette.
func sopdashHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// filterForm collects display filters in a modal huh form. On submit the
// parsed values land in the shared state; cancel leaves the state untouched.
type filterForm struct {
	state *SharedState
	form  *huh.Form

	materials  []string
	alertTypes []string
	minFill    string
	weekFrom   string
	weekTo     string
}

func newFilterForm(state *SharedState) *filterForm {
	f := &filterForm{
		state:    state,
		weekFrom: strconv.Itoa(state.Weeks.From),
		weekTo:   strconv.Itoa(state.Weeks.To),
	}
	f.materials = append(f.materials, state.Filters.Materials...)
	for _, t := range state.Filters.AlertTypes {
		f.alertTypes = append(f.alertTypes, string(t))
	}
	if state.Filters.MinFillRate > 0 {
		f.minFill = fmt.Sprintf("%g", state.Filters.MinFillRate)
	}

	var materialOpts []huh.Option[string]
	ids := make([]string, 0, len(state.Controller.Materials()))
	for id := range state.Controller.Materials() {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		m := state.Controller.Materials()[id]
		materialOpts = append(materialOpts, huh.NewOption(fmt.Sprintf("%s  %s", id, m.Name), id))
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Materials (empty = all)").
				Options(materialOpts...).
				Value(&f.materials),
			huh.NewMultiSelect[string]().
				Title("Alert types (empty = all)").
				Options(
					huh.NewOption("Critical", string(domain.AlertCritical)),
					huh.NewOption("Capacity", string(domain.AlertCapacity)),
					huh.NewOption("Supporting", string(domain.AlertSupporting)),
				).
				Value(&f.alertTypes),
			huh.NewInput().
				Title("Minimum fill rate (0-1, blank for none)").
				Placeholder("0.9").
				Value(&f.minFill).
				Validate(validateOptionalRatio),
			huh.NewInput().
				Title("First week").
				Value(&f.weekFrom).
				Validate(validateWeek),
			huh.NewInput().
				Title("Last week").
				Value(&f.weekTo).
				Validate(validateWeek),
		),
	).WithTheme(sopdashHuhTheme()).WithShowHelp(false)

	return f
}

func (f *filterForm) Init() tea.Cmd {
	return f.form.Init()
}

func (f *filterForm) Update(msg tea.Msg) (*filterForm, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return f, func() tea.Msg { return filterFormDoneMsg{} }
	}

	model, cmd := f.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		f.form = form
	}

	if f.form.State == huh.StateCompleted {
		f.apply()
		return f, tea.Batch(cmd, func() tea.Msg { return filterFormDoneMsg{accepted: true} })
	}
	if f.form.State == huh.StateAborted {
		return f, tea.Batch(cmd, func() tea.Msg { return filterFormDoneMsg{} })
	}
	return f, cmd
}

func (f *filterForm) apply() {
	opts := domain.FilterOptions{
		Materials: append([]string(nil), f.materials...),
	}
	for _, t := range f.alertTypes {
		opts.AlertTypes = append(opts.AlertTypes, domain.AlertType(t))
	}
	if v := strings.TrimSpace(f.minFill); v != "" {
		if ratio, err := strconv.ParseFloat(v, 64); err == nil {
			opts.MinFillRate = ratio
		}
	}
	f.state.Filters = opts

	weeks := f.state.Weeks
	if from, err := strconv.Atoi(strings.TrimSpace(f.weekFrom)); err == nil {
		weeks.From = from
	}
	if to, err := strconv.Atoi(strings.TrimSpace(f.weekTo)); err == nil {
		weeks.To = to
	}
	if weeks.To < weeks.From {
		weeks.To = weeks.From
	}
	f.state.Weeks = weeks
}

func (f *filterForm) View() string {
	return f.form.View()
}

func validateOptionalRatio(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 1 {
		return fmt.Errorf("enter a ratio between 0 and 1")
	}
	return nil
}

func validateWeek(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a week number")
	}
	return nil
}
