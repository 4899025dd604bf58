// Package importer loads user-supplied scenarios from JSON files into the
// store, validating them against the same shape the seeded catalog uses.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for scenario import.
type ImportSchema struct {
	Scenario   ScenarioImport    `json:"scenario"`
	Materials  []MaterialImport  `json:"materials,omitempty"`
	TimeSeries []WeekImport      `json:"time_series"`
	Production []ProductionWeek  `json:"production,omitempty"`
	Inventory  map[string][]int  `json:"inventory,omitempty"`
	KPIs       []KPIImport       `json:"kpis,omitempty"`
	Alerts     []AlertImport     `json:"alerts,omitempty"`
	RawColumns []string          `json:"raw_columns,omitempty"`
	RawRows    []map[string]string `json:"raw_rows,omitempty"`
}

// ScenarioImport defines the scenario-level fields in the import file.
type ScenarioImport struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// MaterialImport defines a material referenced by the scenario.
type MaterialImport struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// WeekImport defines one week of the demand/supply series. Fill rate is
// intentionally absent from the schema: it is derived, never imported.
type WeekImport struct {
	Week      string `json:"week"`
	Demand    int    `json:"demand"`
	Supply    int    `json:"supply"`
	Inventory int    `json:"inventory"`
}

// ProductionWeek defines one week of per-material production quantities.
type ProductionWeek struct {
	Week       string         `json:"week"`
	Quantities map[string]int `json:"quantities"`
}

// KPIImport defines the per-week KPI snapshot.
type KPIImport struct {
	Week                  string  `json:"week"`
	TotalDemand           int     `json:"total_demand"`
	FillRate              float64 `json:"fill_rate"`
	PlannedInventory      int     `json:"planned_inventory"`
	OnHandInventory       int     `json:"on_hand_inventory"`
	ProductionOrderQty    int     `json:"production_order_qty"`
	TotalPlannedPurchases int     `json:"total_planned_purchases"`
	UnconsumedForecast    int     `json:"unconsumed_forecast"`
	ForecastError         float64 `json:"forecast_error"`
}

// AlertImport defines one alert in the import file.
type AlertImport struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Week        string `json:"week"`
	MaterialID  string `json:"material_id"`
}

// LoadImportSchema reads and parses a scenario import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
