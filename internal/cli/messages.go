package cli

import (
	"github.com/planops/sopdash/internal/domain"
)

// Messages exchanged between the root model and the tabs. The appModel
// handles scenario switches and broadcasts dataChangedMsg; tabs rebuild
// their derived rows when they receive it.

// scenarioLoadedMsg signals that the controller finished loading a scenario.
type scenarioLoadedMsg struct {
	id  domain.ScenarioID
	err error
}

// dataChangedMsg tells every tab that the live dataset, the pending alerts
// or the active filters changed.
type dataChangedMsg struct{}

// applyResultMsg carries the outcome of applying one recommendation.
type applyResultMsg struct {
	alertID int
	record  *domain.ChangeRecord
	err     error
}

// exportDoneMsg reports a finished CSV export, or the error that stopped it.
type exportDoneMsg struct {
	path string
	err  error
}

// filterFormDoneMsg closes the filter form; accepted is false on cancel.
type filterFormDoneMsg struct {
	accepted bool
}
