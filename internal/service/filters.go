package service

import (
	"github.com/planops/sopdash/internal/domain"
)

// ApplyFilters returns a filtered copy of the dataset. The source dataset
// is never modified, so filters can be changed or cleared without reloading
// and without discarding applied recommendations.
func ApplyFilters(ds *domain.ScenarioDataset, opts domain.FilterOptions, weeks domain.WeekRange) *domain.ScenarioDataset {
	if ds == nil {
		return nil
	}
	out := ds.Clone()

	filtered := out.TimeSeries[:0]
	for _, wp := range out.TimeSeries {
		if !weeks.Contains(wp.Week) {
			continue
		}
		if opts.MinFillRate > 0 && wp.FillRate < opts.MinFillRate {
			continue
		}
		filtered = append(filtered, wp)
	}
	out.TimeSeries = filtered

	production := out.Production[:0]
	for _, pw := range out.Production {
		if !weeks.Contains(pw.Week) {
			continue
		}
		if len(opts.Materials) > 0 {
			quantities := make(map[string]int)
			for id, qty := range pw.Quantities {
				if opts.HasMaterial(id) {
					quantities[id] = qty
				}
			}
			pw.Quantities = quantities
		}
		production = append(production, pw)
	}
	out.Production = production

	if len(opts.Materials) > 0 {
		for id := range out.Inventory {
			if !opts.HasMaterial(id) {
				delete(out.Inventory, id)
			}
		}

		rows := out.RawRows[:0]
		for _, row := range out.RawRows {
			item, ok := row["Item"]
			if ok && !opts.HasMaterial(item) {
				continue
			}
			rows = append(rows, row)
		}
		out.RawRows = rows
	}
	return out
}

// FilterAlerts returns the alerts whose type passes the filter, preserving
// the input order.
func FilterAlerts(alerts []domain.Alert, opts domain.FilterOptions) []domain.Alert {
	out := make([]domain.Alert, 0, len(alerts))
	for _, a := range alerts {
		if opts.HasAlertType(a.Type) {
			out = append(out, a)
		}
	}
	return out
}
