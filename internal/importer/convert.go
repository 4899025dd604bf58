package importer

import (
	"context"
	"fmt"

	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/repository"
)

// Convert turns a validated import schema into domain values. Fill rates
// are recomputed from supply and demand; any figure in the file is ignored.
func Convert(schema *ImportSchema) (domain.ScenarioInfo, *domain.ScenarioDataset, []domain.Alert, []domain.Material) {
	info := domain.ScenarioInfo{
		ID:          domain.ScenarioID(schema.Scenario.ID),
		Name:        schema.Scenario.Name,
		Description: schema.Scenario.Description,
	}

	ds := &domain.ScenarioDataset{
		Scenario:   info.ID,
		Inventory:  make(map[string][]int),
		KPIs:       make(map[string]domain.KPI),
		RawColumns: schema.RawColumns,
		RawRows:    schema.RawRows,
	}
	for _, w := range schema.TimeSeries {
		wp := domain.WeekPoint{
			Week:      w.Week,
			Demand:    w.Demand,
			Supply:    w.Supply,
			Inventory: w.Inventory,
		}
		if wp.Demand > 0 {
			wp.FillRate = float64(wp.Supply) / float64(wp.Demand)
		}
		ds.TimeSeries = append(ds.TimeSeries, wp)
	}
	for _, pw := range schema.Production {
		quantities := make(map[string]int, len(pw.Quantities))
		for id, qty := range pw.Quantities {
			quantities[id] = qty
		}
		ds.Production = append(ds.Production, domain.ProductionWeek{
			Week:       pw.Week,
			Quantities: quantities,
		})
	}
	for id, levels := range schema.Inventory {
		ds.Inventory[id] = append([]int(nil), levels...)
	}
	for _, k := range schema.KPIs {
		ds.KPIs[k.Week] = domain.KPI{
			Week:                  k.Week,
			TotalDemand:           k.TotalDemand,
			FillRate:              k.FillRate,
			PlannedInventory:      k.PlannedInventory,
			OnHandInventory:       k.OnHandInventory,
			ProductionOrderQty:    k.ProductionOrderQty,
			TotalPlannedPurchases: k.TotalPlannedPurchases,
			UnconsumedForecast:    k.UnconsumedForecast,
			ForecastError:         k.ForecastError,
		}
	}

	var alerts []domain.Alert
	for _, a := range schema.Alerts {
		typ := domain.AlertType(a.Type)
		alerts = append(alerts, domain.Alert{
			ID:          a.ID,
			Scenario:    info.ID,
			Type:        typ,
			Description: a.Description,
			Week:        a.Week,
			MaterialID:  a.MaterialID,
			Rule:        domain.ClassifyAlert(typ, a.Description),
		})
	}

	var materials []domain.Material
	for _, m := range schema.Materials {
		materials = append(materials, domain.Material{
			ID:   m.ID,
			Name: m.Name,
			Type: domain.MaterialType(m.Type),
		})
	}
	return info, ds, alerts, materials
}

// ImportFile loads, validates and stores a scenario import file.
func ImportFile(ctx context.Context, path string,
	materialRepo repository.MaterialRepository,
	scenarioRepo repository.ScenarioRepository,
	alertRepo repository.AlertRepository) (domain.ScenarioID, error) {

	schema, err := LoadImportSchema(path)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", path, err)
	}
	if errs := ValidateImportSchema(schema); len(errs) > 0 {
		return "", fmt.Errorf("invalid import file %s: %v", path, errs)
	}

	info, ds, alerts, materials := Convert(schema)
	if len(materials) > 0 {
		if err := materialRepo.Put(ctx, materials); err != nil {
			return "", fmt.Errorf("storing materials: %w", err)
		}
	}
	if err := scenarioRepo.Put(ctx, info, ds); err != nil {
		return "", fmt.Errorf("storing scenario %s: %w", info.ID, err)
	}
	if err := alertRepo.Put(ctx, info.ID, alerts); err != nil {
		return "", fmt.Errorf("storing alerts for %s: %w", info.ID, err)
	}
	return info.ID, nil
}
