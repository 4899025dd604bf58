package cli

import (
	"context"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planops/sopdash/internal/controller"
	"github.com/planops/sopdash/internal/export"
	"github.com/planops/sopdash/internal/repository"
	"github.com/planops/sopdash/internal/seed"
	"github.com/planops/sopdash/internal/service"
	"github.com/planops/sopdash/internal/teatest"
	"github.com/planops/sopdash/internal/testutil"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	materials := repository.NewSQLiteMaterialRepo(database)
	scenarios := repository.NewSQLiteScenarioRepo(database)
	alerts := repository.NewSQLiteAlertRepo(database)
	require.NoError(t, seed.Load(context.Background(), materials, scenarios, alerts))

	scenarioSvc := service.NewScenarioService(scenarios, 0)
	alertSvc := service.NewAlertService(alerts)
	materialSvc := service.NewMaterialService(materials)

	return &App{
		Scenarios:  scenarioSvc,
		Alerts:     alertSvc,
		Materials:  materialSvc,
		Controller: controller.New(scenarioSvc, alertSvc, materialSvc, nil),
		ExportDir:  t.TempDir(),
	}
}

func newTestDriver(t *testing.T) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newAppModel(newTestApp(t)), teatest.WithSize(120, 40))
	d.DrainInit()
	return d
}

func TestTUIStartsOnDashboard(t *testing.T) {
	d := newTestDriver(t)

	view := d.View()
	assert.Contains(t, view, "S&OP SCENARIO REVIEW")
	assert.Contains(t, view, "BASE")
	assert.Contains(t, view, "WEEK 14 KPIS")
	assert.Contains(t, view, "DEMAND VS SUPPLY")
	assert.Contains(t, view, "PROCESS FLOW")
}

func TestTUITabSwitching(t *testing.T) {
	d := newTestDriver(t)

	d.PressKey('2')
	assert.Contains(t, d.View(), "PENDING ALERTS")

	d.PressKey('3')
	assert.Contains(t, d.View(), "PRODUCTION PLAN")

	d.PressKey('4')
	assert.Contains(t, d.View(), "PROJECTED INVENTORY")

	d.PressKey('5')
	assert.Contains(t, d.View(), "RAW DATA")

	d.PressKey('6')
	assert.Contains(t, d.View(), "CHANGE LOG")

	d.PressKey('1')
	assert.Contains(t, d.View(), "WEEK 14 KPIS")
}

func TestTUIApplyRecommendationFlow(t *testing.T) {
	d := newTestDriver(t)

	d.PressKey('2')
	view := d.View()
	assert.Contains(t, view, "CRITICAL")
	assert.Contains(t, view, "Increase Supply to Meet Demand")

	d.PressKey('a')
	view = d.View()
	assert.Contains(t, view, "Applied #1")
	assert.Contains(t, view, "1 APPLIED")

	d.PressKey('6')
	view = d.View()
	assert.Contains(t, view, "Supply Increase")
	assert.Contains(t, view, "LCO Cathode Sheet")
}

func TestTUIScenarioSwitchKeepsChangeLog(t *testing.T) {
	d := newTestDriver(t)

	d.PressKey('2')
	d.PressKey('a')

	d.PressKey('s')
	view := d.View()
	assert.Contains(t, view, "Loaded S1")

	d.PressKey('6')
	assert.Contains(t, d.View(), "Supply Increase")
}

func TestTUIRefreshReArmsAlerts(t *testing.T) {
	d := newTestDriver(t)

	d.PressKey('2')
	before := d.View()
	d.PressKey('a')
	assert.NotEqual(t, before, d.View())

	d.PressKey('r')
	d.PressKey('2')
	assert.Contains(t, d.View(), "Increase Supply to Meet Demand")
}

func TestTUIDataSearchAndPaging(t *testing.T) {
	d := newTestDriver(t)

	d.PressKey('5')
	view := d.View()
	assert.Contains(t, view, "PAGE 1/3", "22 seeded rows at 10 per page")

	d.PressRight()
	assert.Contains(t, d.View(), "PAGE 2/3")

	d.PressKey('/')
	d.Type("Detroit")
	d.PressEnter()
	view = d.View()
	assert.Contains(t, view, "Detroit, MI")
	assert.NotContains(t, view, "El Paso, TX")
}

func TestTUIQuit(t *testing.T) {
	d := newTestDriver(t)

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestTUIChangeLogEmptyHint(t *testing.T) {
	d := newTestDriver(t)

	d.PressKey('6')
	assert.Contains(t, d.View(), "No changes recorded yet")
}

func TestTUIChangeLogShowsSession(t *testing.T) {
	app := newTestApp(t)
	d := teatest.New(t, newAppModel(app), teatest.WithSize(120, 40))
	d.DrainInit()

	d.PressKey('2')
	d.PressKey('a')
	d.PressKey('6')
	view := d.View()
	assert.Contains(t, view, "Session "+app.Controller.RunID())
}

func TestTUIKeysIgnoredWhileLoading(t *testing.T) {
	m := newAppModel(newTestApp(t))
	m.loading = true

	// Tab switches, scenario cycling and tab keys are all dropped until
	// the in-flight load resolves.
	for _, r := range []rune{'2', 's', 'r', 'a', 'f', 'c'} {
		updated, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		next := updated.(appModel)
		assert.Nil(t, cmd, "key %q should be dropped while loading", r)
		assert.Equal(t, m.active, next.active, "key %q should not switch tabs", r)
		assert.False(t, next.quitting)
	}

	// Quitting stays possible.
	updated, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.True(t, updated.(appModel).quitting)
}

func TestTUIEmptyAlertExportWritesNoFile(t *testing.T) {
	app := newTestApp(t)
	state := &SharedState{App: app, Controller: app.Controller, ExportDir: t.TempDir()}
	state.ResetFilters()

	v := newAlertsView(state)
	msg := v.exportAlerts(nil)()

	done, ok := msg.(exportDoneMsg)
	require.True(t, ok)
	assert.ErrorIs(t, done.err, export.ErrNoData)
	entries, err := os.ReadDir(state.ExportDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "an empty export must not create a file")
}

func TestTUIEmptyRawExportWritesNoFile(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.Controller.LoadScenario(context.Background(), "BASE"))
	state := &SharedState{App: app, Controller: app.Controller, ExportDir: t.TempDir()}
	state.ResetFilters()
	// No raw row survives a filter on an unknown material.
	state.Filters.Materials = []string{"ZZ-99"}

	v := newDataView(state)
	msg := v.exportRaw()()

	done, ok := msg.(exportDoneMsg)
	require.True(t, ok)
	assert.ErrorIs(t, done.err, export.ErrNoData)
	entries, err := os.ReadDir(state.ExportDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "an empty export must not create a file")
}
