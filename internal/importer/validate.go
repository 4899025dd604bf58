package importer

import (
	"fmt"
	"strconv"

	"github.com/planops/sopdash/internal/domain"
)

var validMaterialTypes = map[string]bool{
	string(domain.MaterialFG):           true,
	string(domain.MaterialIntermediate): true,
	string(domain.MaterialRaw):          true,
}

// reservedScenarioIDs are the built-in scenarios an import may not overwrite.
var reservedScenarioIDs = func() map[string]bool {
	m := make(map[string]bool, len(domain.SeedScenarios))
	for _, id := range domain.SeedScenarios {
		m[string(id)] = true
	}
	return m
}()

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateScenario(&schema.Scenario)...)

	materialIDs := make(map[string]bool)
	errs = append(errs, validateMaterials(schema.Materials, materialIDs)...)

	weeks := make(map[string]bool)
	errs = append(errs, validateTimeSeries(schema.TimeSeries, weeks)...)
	errs = append(errs, validateProduction(schema.Production, weeks)...)
	errs = append(errs, validateInventory(schema.Inventory)...)
	errs = append(errs, validateKPIs(schema.KPIs, weeks)...)
	errs = append(errs, validateAlerts(schema.Alerts, weeks)...)
	errs = append(errs, validateRawRows(schema.RawColumns, schema.RawRows)...)

	return errs
}

func validateScenario(s *ScenarioImport) []error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, fmt.Errorf("scenario.id is required"))
	} else if reservedScenarioIDs[s.ID] {
		errs = append(errs, fmt.Errorf("scenario.id %q is reserved for a built-in scenario", s.ID))
	}
	if s.Name == "" {
		errs = append(errs, fmt.Errorf("scenario.name is required"))
	}
	return errs
}

func validateMaterials(materials []MaterialImport, ids map[string]bool) []error {
	var errs []error
	for i, m := range materials {
		if m.ID == "" {
			errs = append(errs, fmt.Errorf("materials[%d].id is required", i))
			continue
		}
		if ids[m.ID] {
			errs = append(errs, fmt.Errorf("materials[%d]: duplicate id %q", i, m.ID))
		}
		ids[m.ID] = true
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("materials[%d].name is required", i))
		}
		if !validMaterialTypes[m.Type] {
			errs = append(errs, fmt.Errorf("materials[%d].type: invalid value %q", i, m.Type))
		}
	}
	return errs
}

func validateTimeSeries(series []WeekImport, weeks map[string]bool) []error {
	var errs []error
	if len(series) == 0 {
		errs = append(errs, fmt.Errorf("time_series must not be empty"))
	}
	prev := -1
	for i, w := range series {
		n, err := strconv.Atoi(w.Week)
		if err != nil {
			errs = append(errs, fmt.Errorf("time_series[%d].week: not numeric: %q", i, w.Week))
			continue
		}
		if weeks[w.Week] {
			errs = append(errs, fmt.Errorf("time_series[%d]: duplicate week %q", i, w.Week))
		}
		weeks[w.Week] = true
		if prev >= 0 && n <= prev {
			errs = append(errs, fmt.Errorf("time_series[%d]: week %q out of ascending order", i, w.Week))
		}
		prev = n
		if w.Demand < 0 || w.Supply < 0 || w.Inventory < 0 {
			errs = append(errs, fmt.Errorf("time_series[%d]: negative quantity for week %q", i, w.Week))
		}
	}
	return errs
}

func validateProduction(production []ProductionWeek, weeks map[string]bool) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, pw := range production {
		if !weeks[pw.Week] {
			errs = append(errs, fmt.Errorf("production[%d]: week %q not present in time_series", i, pw.Week))
		}
		if seen[pw.Week] {
			errs = append(errs, fmt.Errorf("production[%d]: duplicate week %q", i, pw.Week))
		}
		seen[pw.Week] = true
		for id, qty := range pw.Quantities {
			if qty < 0 {
				errs = append(errs, fmt.Errorf("production[%d]: negative quantity for %q", i, id))
			}
		}
	}
	return errs
}

func validateInventory(inventory map[string][]int) []error {
	var errs []error
	length := -1
	for id, levels := range inventory {
		if length == -1 {
			length = len(levels)
		} else if len(levels) != length {
			errs = append(errs, fmt.Errorf("inventory[%q]: length %d differs from other materials (%d)", id, len(levels), length))
		}
		for i, qty := range levels {
			if qty < 0 {
				errs = append(errs, fmt.Errorf("inventory[%q][%d]: negative quantity", id, i))
			}
		}
	}
	return errs
}

func validateKPIs(kpis []KPIImport, weeks map[string]bool) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, k := range kpis {
		if !weeks[k.Week] {
			errs = append(errs, fmt.Errorf("kpis[%d]: week %q not present in time_series", i, k.Week))
		}
		if seen[k.Week] {
			errs = append(errs, fmt.Errorf("kpis[%d]: duplicate week %q", i, k.Week))
		}
		seen[k.Week] = true
	}
	return errs
}

func validateAlerts(alerts []AlertImport, weeks map[string]bool) []error {
	var errs []error
	seen := make(map[int]bool)
	for i, a := range alerts {
		if a.ID <= 0 {
			errs = append(errs, fmt.Errorf("alerts[%d].id must be positive", i))
		}
		if seen[a.ID] {
			errs = append(errs, fmt.Errorf("alerts[%d]: duplicate id %d", i, a.ID))
		}
		seen[a.ID] = true
		if !domain.ValidAlertTypes[a.Type] {
			errs = append(errs, fmt.Errorf("alerts[%d].type: invalid value %q", i, a.Type))
		}
		if a.Description == "" {
			errs = append(errs, fmt.Errorf("alerts[%d].description is required", i))
		}
		if !weeks[a.Week] {
			errs = append(errs, fmt.Errorf("alerts[%d]: week %q not present in time_series", i, a.Week))
		}
		if a.MaterialID == "" {
			errs = append(errs, fmt.Errorf("alerts[%d].material_id is required", i))
		}
	}
	return errs
}

func validateRawRows(columns []string, rows []map[string]string) []error {
	var errs []error
	if len(rows) > 0 && len(columns) == 0 {
		errs = append(errs, fmt.Errorf("raw_columns is required when raw_rows is present"))
	}
	colSet := make(map[string]bool, len(columns))
	for _, c := range columns {
		colSet[c] = true
	}
	for i, row := range rows {
		for key := range row {
			if !colSet[key] {
				errs = append(errs, fmt.Errorf("raw_rows[%d]: key %q not declared in raw_columns", i, key))
			}
		}
	}
	return errs
}
