// Package controller owns the review session state: the live dataset of the
// selected scenario, the set of already-applied recommendations and the
// append-only change log. Views never mutate data themselves; every change
// goes through ApplyRecommendation.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/planops/sopdash/internal/changelog"
	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/rules"
	"github.com/planops/sopdash/internal/service"
)

var (
	// ErrUnknownAlert signals an alert ID not present in the loaded scenario.
	ErrUnknownAlert = errors.New("unknown alert")
	// ErrAlreadyApplied signals a second apply of the same recommendation.
	ErrAlreadyApplied = errors.New("recommendation already applied")
	// ErrNoScenario signals an operation before any scenario was loaded.
	ErrNoScenario = errors.New("no scenario loaded")
)

// Controller coordinates one review session across scenario switches.
// It is safe for concurrent use: the TUI runs scenario loads on background
// command goroutines while the program goroutine keeps rendering.
type Controller struct {
	scenarios service.ScenarioService
	alerts    service.AlertService
	materials service.MaterialService

	log   *changelog.Log
	runID string
	clock func() time.Time

	mu         sync.Mutex
	scenario   domain.ScenarioID
	dataset    *domain.ScenarioDataset
	alertsByID map[int]domain.Alert
	alertOrder []int
	resolved   map[domain.ScenarioID]map[int]bool

	materialIdx map[string]domain.Material
	baseKPIs    map[string]domain.KPI
}

// New creates a controller for a fresh review run. The clock may be nil,
// in which case time.Now is used.
func New(scenarios service.ScenarioService, alerts service.AlertService,
	materials service.MaterialService, clock func() time.Time) *Controller {
	if clock == nil {
		clock = time.Now
	}
	return &Controller{
		scenarios: scenarios,
		alerts:    alerts,
		materials: materials,
		log:       changelog.New(),
		runID:     uuid.NewString(),
		clock:     clock,
		resolved:  make(map[domain.ScenarioID]map[int]bool),
	}
}

// RunID identifies this review session in exported change logs.
func (c *Controller) RunID() string { return c.runID }

// LoadScenario fetches the scenario's dataset and alerts and makes it the
// active one. Previously applied recommendations for other scenarios stay
// resolved, and the change log keeps accumulating across switches. The
// fetches run outside the lock so rendering never blocks on the simulated
// store latency.
func (c *Controller) LoadScenario(ctx context.Context, id domain.ScenarioID) error {
	ds, err := c.scenarios.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("loading scenario %s: %w", id, err)
	}
	alerts, err := c.alerts.ListByScenario(ctx, id)
	if err != nil {
		return fmt.Errorf("loading alerts for %s: %w", id, err)
	}

	c.mu.Lock()
	haveIdx := c.materialIdx != nil
	c.mu.Unlock()
	var idx map[string]domain.Material
	if !haveIdx {
		if idx, err = c.materials.Index(ctx); err != nil {
			return fmt.Errorf("loading materials: %w", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.materialIdx == nil {
		c.materialIdx = idx
	}
	c.scenario = id
	c.dataset = ds
	c.alertsByID = make(map[int]domain.Alert, len(alerts))
	c.alertOrder = c.alertOrder[:0]
	for _, a := range alerts {
		c.alertsByID[a.ID] = a
		c.alertOrder = append(c.alertOrder, a.ID)
	}
	if c.resolved[id] == nil {
		c.resolved[id] = make(map[int]bool)
	}
	return nil
}

// Refresh reloads the active scenario from the store, discarding every
// applied change in its dataset and re-arming its alerts. The change log is
// an audit trail and survives the refresh.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	id := c.scenario
	if id == "" {
		c.mu.Unlock()
		return ErrNoScenario
	}
	c.resolved[id] = make(map[int]bool)
	c.mu.Unlock()
	return c.LoadScenario(ctx, id)
}

// Scenario returns the active scenario ID, or "" before the first load.
func (c *Controller) Scenario() domain.ScenarioID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scenario
}

// Dataset returns the live, unfiltered dataset of the active scenario.
// Datasets are immutable; applies swap in a fresh copy.
func (c *Controller) Dataset() *domain.ScenarioDataset {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dataset
}

// View returns a filtered copy of the live dataset for display. Applied
// recommendations are visible through any filter because filtering always
// starts from the live dataset.
func (c *Controller) View(opts domain.FilterOptions, weeks domain.WeekRange) *domain.ScenarioDataset {
	c.mu.Lock()
	ds := c.dataset
	c.mu.Unlock()
	return service.ApplyFilters(ds, opts, weeks)
}

// Pending returns the not-yet-applied alerts of the active scenario,
// ordered by severity first and stored order within the same severity.
func (c *Controller) Pending() []domain.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingLocked()
}

func (c *Controller) pendingLocked() []domain.Alert {
	if c.scenario == "" {
		return nil
	}
	resolved := c.resolved[c.scenario]
	out := make([]domain.Alert, 0, len(c.alertOrder))
	for _, id := range c.alertOrder {
		if resolved[id] {
			continue
		}
		out = append(out, c.alertsByID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Type.Precedence() < out[j].Type.Precedence()
	})
	return out
}

// PendingSummary counts the pending alerts by type.
func (c *Controller) PendingSummary() domain.AlertSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Summarize(c.pendingLocked())
}

// AppliedCount returns how many recommendations were applied in the active
// scenario.
func (c *Controller) AppliedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.resolved[c.scenario])
}

// Describe returns the recommendation text for one pending or applied alert.
func (c *Controller) Describe(alertID int) (rules.Recommendation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.alertsByID[alertID]
	if !ok {
		return rules.Recommendation{}, fmt.Errorf("%w: %d", ErrUnknownAlert, alertID)
	}
	return rules.Describe(a, domain.MaterialName(c.materialIdx, a.MaterialID)), nil
}

// ApplyRecommendation applies one alert's recommendation to the live
// dataset. The alert is marked resolved either way; a recommendation whose
// data is missing from the dataset resolves silently and returns a nil
// record. Applying the same alert twice is an error.
func (c *Controller) ApplyRecommendation(alertID int) (*domain.ChangeRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scenario == "" {
		return nil, ErrNoScenario
	}
	a, ok := c.alertsByID[alertID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlert, alertID)
	}
	resolved := c.resolved[c.scenario]
	if resolved[alertID] {
		return nil, fmt.Errorf("%w: alert %d", ErrAlreadyApplied, alertID)
	}

	name := domain.MaterialName(c.materialIdx, a.MaterialID)
	application := rules.Apply(a, c.dataset, name, c.clock())
	resolved[alertID] = true
	if application == nil {
		return nil, nil
	}

	c.dataset = application.Dataset
	record := application.Record
	record.RunID = c.runID
	stored := c.log.Append(record)
	return &stored, nil
}

// ChangeLog exposes the session's append-only change log. The log carries
// its own lock, so the pointer may be shared across goroutines.
func (c *Controller) ChangeLog() *changelog.Log { return c.log }

// Materials returns the material lookup shared by the views. The index is
// built once on the first load and never mutated afterwards.
func (c *Controller) Materials() map[string]domain.Material {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.materialIdx
}

// BaseKPIs returns the BASE scenario's KPI snapshots for delta display,
// loading them on first use. Comparing BASE against itself is allowed and
// yields zero deltas.
func (c *Controller) BaseKPIs(ctx context.Context) (map[string]domain.KPI, error) {
	c.mu.Lock()
	kpis := c.baseKPIs
	c.mu.Unlock()
	if kpis != nil {
		return kpis, nil
	}
	ds, err := c.scenarios.Load(ctx, domain.ScenarioBase)
	if err != nil {
		return nil, fmt.Errorf("loading BASE KPIs: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.baseKPIs == nil {
		c.baseKPIs = ds.KPIs
	}
	return c.baseKPIs, nil
}
