package cli

import (
	"github.com/planops/sopdash/internal/controller"
	"github.com/planops/sopdash/internal/domain"
)

// SharedState holds context shared across all tabs via pointer. The
// controller owns the data; the state adds the presentation-side knobs
// that survive tab switches.
type SharedState struct {
	App        *App
	Controller *controller.Controller

	// Scenario picker
	Scenarios []domain.ScenarioInfo
	Selected  int

	// Active display filters, applied on top of the live dataset.
	Filters domain.FilterOptions
	Weeks   domain.WeekRange

	// Compare mode shows KPI deltas against the base plan.
	Compare bool

	// Directory CSV exports are written to.
	ExportDir string

	// Terminal dimensions
	Width  int
	Height int
}

// ActiveScenario returns the info of the currently selected scenario.
func (s *SharedState) ActiveScenario() domain.ScenarioInfo {
	if s.Selected >= 0 && s.Selected < len(s.Scenarios) {
		return s.Scenarios[s.Selected]
	}
	return domain.ScenarioInfo{}
}

// View returns the filtered dataset for display.
func (s *SharedState) View() *domain.ScenarioDataset {
	return s.Controller.View(s.Filters, s.Weeks)
}

// ResetFilters restores the full, unfiltered horizon.
func (s *SharedState) ResetFilters() {
	s.Filters = domain.FilterOptions{}
	s.Weeks = domain.FullHorizon
}
