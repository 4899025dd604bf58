package testutil

import (
	"github.com/planops/sopdash/internal/domain"
)

// Materials returns the canonical material master used across tests.
func Materials() []domain.Material {
	return []domain.Material{
		{ID: "RM-10", Name: "Lithium Carbonate", Type: domain.MaterialRaw},
		{ID: "RM-20", Name: "Cobalt Oxide", Type: domain.MaterialRaw},
		{ID: "IM-55", Name: "Calcined LCO Powder", Type: domain.MaterialIntermediate},
		{ID: "FG-90", Name: "LCO Cathode Sheet", Type: domain.MaterialFG},
	}
}

// MaterialIndex returns Materials keyed by ID.
func MaterialIndex() map[string]domain.Material {
	return domain.MaterialIndex(Materials())
}

// NewDataset builds a small three-week dataset for the given scenario.
// Week 14 carries a supply shortfall against demand; week 15 is balanced.
func NewDataset(scenario domain.ScenarioID) *domain.ScenarioDataset {
	return &domain.ScenarioDataset{
		Scenario: scenario,
		TimeSeries: []domain.WeekPoint{
			{Week: "14", Demand: 1200, Supply: 1000, Inventory: 500, FillRate: 1000.0 / 1200.0},
			{Week: "15", Demand: 1100, Supply: 1100, Inventory: 420, FillRate: 1.0},
			{Week: "16", Demand: 1300, Supply: 1250, Inventory: 360, FillRate: 1250.0 / 1300.0},
		},
		Production: []domain.ProductionWeek{
			{Week: "14", Quantities: map[string]int{"FG-90": 950, "IM-55": 1200}},
			{Week: "15", Quantities: map[string]int{"FG-90": 1050, "IM-55": 1150}},
			{Week: "16", Quantities: map[string]int{"FG-90": 1020, "IM-55": 0}},
		},
		Inventory: map[string][]int{
			"RM-10": {800, 760, 720},
			"FG-90": {300, 260, 240},
		},
		KPIs: map[string]domain.KPI{
			"14": {
				Week: "14", TotalDemand: 1200, FillRate: 1000.0 / 1200.0,
				PlannedInventory: 500, OnHandInventory: 480,
				ProductionOrderQty: 950, TotalPlannedPurchases: 400,
				UnconsumedForecast: 120, ForecastError: 0.08,
			},
		},
		RawColumns: []string{"Week", "Item", "Plant", "Quantity"},
		RawRows: []map[string]string{
			{"Week": "14", "Item": "FG-90", "Plant": "Detroit, MI", "Quantity": "950"},
			{"Week": "15", "Item": "FG-90", "Plant": "Detroit, MI", "Quantity": "1050"},
		},
	}
}

// NewAlert builds an alert whose rule key is already resolved.
func NewAlert(id int, scenario domain.ScenarioID, typ domain.AlertType, description, week, materialID string) domain.Alert {
	return domain.Alert{
		ID:          id,
		Scenario:    scenario,
		Type:        typ,
		Description: description,
		Week:        week,
		MaterialID:  materialID,
		Rule:        domain.ClassifyAlert(typ, description),
	}
}
