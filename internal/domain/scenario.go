package domain

import (
	"errors"
	"strconv"
)

// FirstWeek is the first week number of the planning horizon. Inventory
// series are indexed by offset from it: index = week - FirstWeek.
const FirstWeek = 14

// ErrUnknownScenario signals a scenario identifier that is not in the store.
// Unlike data-shape problems inside a dataset, this is a caller error and
// propagates.
var ErrUnknownScenario = errors.New("unknown scenario")

// ScenarioInfo describes one scenario without its dataset.
type ScenarioInfo struct {
	ID          ScenarioID
	Name        string
	Description string
}

// WeekPoint is one week of the demand/supply time series.
// FillRate is always Supply/Demand, recomputed whenever either changes;
// it is never an independently stored figure.
type WeekPoint struct {
	Week      string
	Demand    int
	Supply    int
	Inventory int
	FillRate  float64
}

// ProductionWeek maps material IDs to produced quantities for one week.
type ProductionWeek struct {
	Week       string
	Quantities map[string]int
}

// KPI is the per-week KPI snapshot shown on the dashboard cards.
type KPI struct {
	Week                  string
	TotalDemand           int
	FillRate              float64
	PlannedInventory      int
	OnHandInventory       int
	ProductionOrderQty    int
	TotalPlannedPurchases int
	UnconsumedForecast    int
	ForecastError         float64
}

// ScenarioDataset holds the four parallel views of one scenario's planning
// data plus per-week KPI snapshots. TimeSeries, Production and Inventory
// describe the same underlying numbers; RawRows mirror them for audit and
// export and are not updated by recommendations (a known limitation).
type ScenarioDataset struct {
	Scenario   ScenarioID
	TimeSeries []WeekPoint
	Production []ProductionWeek
	Inventory  map[string][]int
	KPIs       map[string]KPI
	RawColumns []string
	RawRows    []map[string]string
}

// WeekOffset converts a string-encoded week into an index into an
// inventory series. ok is false for non-numeric weeks.
func WeekOffset(week string) (int, bool) {
	n, err := strconv.Atoi(week)
	if err != nil {
		return 0, false
	}
	return n - FirstWeek, true
}

// WeekIndex finds the position of a week in the time series, or -1.
func (d *ScenarioDataset) WeekIndex(week string) int {
	for i, p := range d.TimeSeries {
		if p.Week == week {
			return i
		}
	}
	return -1
}

// ProductionIndex finds the position of a week in the production series, or -1.
func (d *ScenarioDataset) ProductionIndex(week string) int {
	for i, p := range d.Production {
		if p.Week == week {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the dataset. Mutations to the copy never
// reach the original through any nested slice or map.
func (d *ScenarioDataset) Clone() *ScenarioDataset {
	if d == nil {
		return nil
	}
	out := &ScenarioDataset{
		Scenario:   d.Scenario,
		TimeSeries: append([]WeekPoint(nil), d.TimeSeries...),
		Production: make([]ProductionWeek, len(d.Production)),
		Inventory:  make(map[string][]int, len(d.Inventory)),
		KPIs:       make(map[string]KPI, len(d.KPIs)),
		RawColumns: append([]string(nil), d.RawColumns...),
		RawRows:    make([]map[string]string, len(d.RawRows)),
	}
	for i, p := range d.Production {
		q := make(map[string]int, len(p.Quantities))
		for k, v := range p.Quantities {
			q[k] = v
		}
		out.Production[i] = ProductionWeek{Week: p.Week, Quantities: q}
	}
	for id, levels := range d.Inventory {
		out.Inventory[id] = append([]int(nil), levels...)
	}
	for w, k := range d.KPIs {
		out.KPIs[w] = k
	}
	for i, row := range d.RawRows {
		r := make(map[string]string, len(row))
		for k, v := range row {
			r[k] = v
		}
		out.RawRows[i] = r
	}
	return out
}

// FilterOptions narrows a dataset for display. Zero values mean "no filter".
type FilterOptions struct {
	Materials   []string
	AlertTypes  []AlertType
	MinFillRate float64
}

// HasMaterial reports whether the material filter includes the given ID.
// An empty filter includes everything.
func (f FilterOptions) HasMaterial(id string) bool {
	if len(f.Materials) == 0 {
		return true
	}
	for _, m := range f.Materials {
		if m == id {
			return true
		}
	}
	return false
}

// HasAlertType reports whether the alert-type filter includes the given type.
// An empty filter includes everything.
func (f FilterOptions) HasAlertType(t AlertType) bool {
	if len(f.AlertTypes) == 0 {
		return true
	}
	for _, at := range f.AlertTypes {
		if at == t {
			return true
		}
	}
	return false
}

// WeekRange is an inclusive week-number range.
type WeekRange struct {
	From int
	To   int
}

// FullHorizon spans every seeded planning week.
var FullHorizon = WeekRange{From: FirstWeek, To: FirstWeek + 10}

// Contains reports whether a string-encoded week falls inside the range.
// Non-numeric weeks are excluded.
func (r WeekRange) Contains(week string) bool {
	n, err := strconv.Atoi(week)
	if err != nil {
		return false
	}
	return n >= r.From && n <= r.To
}
