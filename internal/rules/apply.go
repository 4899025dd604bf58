package rules

import (
	"fmt"
	"math"
	"time"

	"github.com/planops/sopdash/internal/domain"
)

// Application is the outcome of applying one recommendation: the mutated
// dataset and the audit record describing the change.
type Application struct {
	Dataset *domain.ScenarioDataset
	Record  domain.ChangeRecord
}

// Apply computes the alert's mutation against the full, unfiltered dataset.
// The input dataset is never modified: every nested structure that is
// touched is copied first. A nil return means no applicable change — the
// alert's week is missing from the time series, the material is absent from
// the structure the rule needs, or the inventory week-offset is out of
// range. Malformed alerts are therefore silent no-ops, never errors.
func Apply(alert domain.Alert, ds *domain.ScenarioDataset, materialName string, now time.Time) *Application {
	if ds == nil {
		return nil
	}
	wi := ds.WeekIndex(alert.Week)
	if wi == -1 {
		return nil
	}

	switch alert.Rule {
	case domain.RuleSupplyShortfall:
		return applySupplyIncrease(alert, ds, materialName, now, wi)
	case domain.RuleInventoryShortage:
		return applyInventoryAdd(alert, ds, materialName, now, wi, 100, domain.ChangeInventoryIncrease,
			"Added 100 units to inventory, ensuring sufficient buffer for demand fluctuations")
	case domain.RuleCapacityExceeded:
		return applyCapacityIncrease(alert, ds, materialName, now, wi)
	case domain.RuleBelowSafetyStock:
		return applyInventoryAdd(alert, ds, materialName, now, wi, 75, domain.ChangeSafetyStock,
			"Increased safety stock by 75 units to prevent stockouts and improve service level")
	case domain.RuleSalesAboveForecast:
		return applyForecastAdjustment(alert, ds, materialName, now, wi)
	case domain.RuleExcessOrderQty:
		return applyOrderQuantityCut(alert, ds, materialName, now)
	}
	return nil
}

// pctRound rounds percentage * value to the nearest integer,
// half away from zero.
func pctRound(value int, pct float64) int {
	return int(math.Round(float64(value) * pct))
}

// fillRate is Supply/Demand as a plain ratio, not clamped to [0,1].
// Zero demand yields 0 rather than propagating Inf into displays.
func fillRate(supply, demand int) float64 {
	if demand == 0 {
		return 0
	}
	return float64(supply) / float64(demand)
}

func newRecord(alert domain.Alert, materialName string, now time.Time, ct domain.ChangeType, before, after int, impact string) domain.ChangeRecord {
	return domain.ChangeRecord{
		Timestamp:        now,
		AlertID:          alert.ID,
		AlertType:        alert.Type,
		AlertDescription: alert.Description,
		MaterialID:       alert.MaterialID,
		MaterialName:     materialName,
		Week:             alert.Week,
		ChangeType:       ct,
		Before:           before,
		After:            after,
		Impact:           impact,
	}
}

// applySupplyIncrease raises supply for the alert week by 15%, recomputes
// the fill rate, and mirrors the same delta onto the week's production
// figure for the material when one exists.
func applySupplyIncrease(alert domain.Alert, ds *domain.ScenarioDataset, materialName string, now time.Time, wi int) *Application {
	out := *ds
	before := ds.TimeSeries[wi].Supply
	demand := ds.TimeSeries[wi].Demand
	delta := pctRound(before, 0.15)
	after := before + delta

	out.TimeSeries = append([]domain.WeekPoint(nil), ds.TimeSeries...)
	out.TimeSeries[wi].Supply = after
	out.TimeSeries[wi].FillRate = fillRate(after, demand)

	if pi := ds.ProductionIndex(alert.Week); pi != -1 {
		// a zero production row is treated as absent
		if q, ok := ds.Production[pi].Quantities[alert.MaterialID]; ok && q != 0 {
			out.Production = cloneProduction(ds.Production)
			out.Production[pi].Quantities[alert.MaterialID] = q + delta
		}
	}

	impact := fmt.Sprintf("Increased supply by %d units (15%%)", delta)
	if demand != 0 {
		impact += fmt.Sprintf(", improving fill rate from %.2f to %.2f",
			fillRate(before, demand), out.TimeSeries[wi].FillRate)
	}
	return &Application{
		Dataset: &out,
		Record:  newRecord(alert, materialName, now, domain.ChangeSupplyIncrease, before, after, impact),
	}
}

// applyCapacityIncrease raises the week's production for the material by
// 20% and mirrors the delta onto time-series supply.
func applyCapacityIncrease(alert domain.Alert, ds *domain.ScenarioDataset, materialName string, now time.Time, wi int) *Application {
	pi := ds.ProductionIndex(alert.Week)
	if pi == -1 {
		return nil
	}
	before, ok := ds.Production[pi].Quantities[alert.MaterialID]
	if !ok || before == 0 {
		return nil
	}
	delta := pctRound(before, 0.20)
	after := before + delta

	out := *ds
	out.Production = cloneProduction(ds.Production)
	out.Production[pi].Quantities[alert.MaterialID] = after

	demand := ds.TimeSeries[wi].Demand
	oldFill := ds.TimeSeries[wi].FillRate
	out.TimeSeries = append([]domain.WeekPoint(nil), ds.TimeSeries...)
	out.TimeSeries[wi].Supply += delta
	out.TimeSeries[wi].FillRate = fillRate(out.TimeSeries[wi].Supply, demand)

	impact := fmt.Sprintf("Increased production capacity by %d units (20%%)", delta)
	if demand != 0 {
		impact += fmt.Sprintf(", improving fill rate from %.2f to %.2f", oldFill, out.TimeSeries[wi].FillRate)
	}
	return &Application{
		Dataset: &out,
		Record:  newRecord(alert, materialName, now, domain.ChangeCapacityIncrease, before, after, impact),
	}
}

// applyInventoryAdd adds a fixed number of units to the material's
// inventory series at the alert week's offset and mirrors the same delta
// onto the time-series inventory figure.
func applyInventoryAdd(alert domain.Alert, ds *domain.ScenarioDataset, materialName string, now time.Time, wi, units int, ct domain.ChangeType, impact string) *Application {
	levels, ok := ds.Inventory[alert.MaterialID]
	if !ok {
		return nil
	}
	off, ok := domain.WeekOffset(alert.Week)
	if !ok || off < 0 || off >= len(levels) {
		return nil
	}
	before := levels[off]

	out := *ds
	out.Inventory = make(map[string][]int, len(ds.Inventory))
	for id, lv := range ds.Inventory {
		out.Inventory[id] = lv
	}
	out.Inventory[alert.MaterialID] = append([]int(nil), levels...)
	out.Inventory[alert.MaterialID][off] = before + units

	out.TimeSeries = append([]domain.WeekPoint(nil), ds.TimeSeries...)
	out.TimeSeries[wi].Inventory += units

	return &Application{
		Dataset: &out,
		Record:  newRecord(alert, materialName, now, ct, before, before+units, impact),
	}
}

// applyForecastAdjustment raises the week's demand by 10% and recomputes
// the fill rate; supply is unchanged.
func applyForecastAdjustment(alert domain.Alert, ds *domain.ScenarioDataset, materialName string, now time.Time, wi int) *Application {
	before := ds.TimeSeries[wi].Demand
	delta := pctRound(before, 0.10)
	after := before + delta

	out := *ds
	supply := ds.TimeSeries[wi].Supply
	out.TimeSeries = append([]domain.WeekPoint(nil), ds.TimeSeries...)
	out.TimeSeries[wi].Demand = after
	out.TimeSeries[wi].FillRate = fillRate(supply, after)

	impact := fmt.Sprintf("Increased forecast by %d units (10%%) to better align with actual sales orders", delta)
	return &Application{
		Dataset: &out,
		Record:  newRecord(alert, materialName, now, domain.ChangeForecast, before, after, impact),
	}
}

// applyOrderQuantityCut reduces the week's production for the material by
// 10%. The time series is untouched: trimming an order changes the plan,
// not the supply already committed for the week.
func applyOrderQuantityCut(alert domain.Alert, ds *domain.ScenarioDataset, materialName string, now time.Time) *Application {
	pi := ds.ProductionIndex(alert.Week)
	if pi == -1 {
		return nil
	}
	before, ok := ds.Production[pi].Quantities[alert.MaterialID]
	if !ok || before == 0 {
		return nil
	}
	delta := pctRound(before, 0.10)
	after := before - delta

	out := *ds
	out.Production = cloneProduction(ds.Production)
	out.Production[pi].Quantities[alert.MaterialID] = after

	impact := fmt.Sprintf("Reduced order quantity by %d units (10%%) to optimize inventory levels and reduce holding costs", delta)
	return &Application{
		Dataset: &out,
		Record:  newRecord(alert, materialName, now, domain.ChangeOrderQuantity, before, after, impact),
	}
}

func cloneProduction(in []domain.ProductionWeek) []domain.ProductionWeek {
	out := make([]domain.ProductionWeek, len(in))
	for i, p := range in {
		q := make(map[string]int, len(p.Quantities))
		for k, v := range p.Quantities {
			q[k] = v
		}
		out[i] = domain.ProductionWeek{Week: p.Week, Quantities: q}
	}
	return out
}
