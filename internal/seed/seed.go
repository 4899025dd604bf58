// Package seed loads the built-in scenario catalog into an empty store.
//
// The catalog models an LCO cathode manufacturing plan: two purchased raw
// materials, one calcined intermediate and one finished sheet, planned over
// an eleven-week horizon.
package seed

import (
	"context"
	"fmt"

	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/repository"
)

// Materials is the seeded material master.
var Materials = []domain.Material{
	{ID: "RM-10", Name: "Lithium Carbonate", Type: domain.MaterialRaw},
	{ID: "RM-20", Name: "Cobalt Oxide", Type: domain.MaterialRaw},
	{ID: "IM-55", Name: "Calcined LCO Powder", Type: domain.MaterialIntermediate},
	{ID: "FG-90", Name: "LCO Cathode Sheet", Type: domain.MaterialFG},
}

// scenarioSpec drives the deterministic construction of one scenario.
// supplyDelta and demandDelta are per-week adjustments against the base
// plan; production follows supply with a one-week conversion lag.
type scenarioSpec struct {
	info        domain.ScenarioInfo
	supplyDelta [weeks]int
	demandDelta [weeks]int
	alerts      []domain.Alert
}

const weeks = 11

// baseDemand and baseSupply are the BASE plan for FG-90 over weeks 14-24.
var (
	baseDemand = [weeks]int{1200, 1150, 1300, 1250, 1400, 1350, 1300, 1450, 1400, 1500, 1550}
	baseSupply = [weeks]int{1000, 1150, 1180, 1250, 1260, 1350, 1300, 1320, 1400, 1380, 1550}
)

func alert(id int, scenario domain.ScenarioID, typ domain.AlertType, description, week, materialID string) domain.Alert {
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

func specs() []scenarioSpec {
	return []scenarioSpec{
		{
			info: domain.ScenarioInfo{
				ID:          domain.ScenarioBase,
				Name:        "Base Plan",
				Description: "Current approved plan, no interventions",
			},
			alerts: []domain.Alert{
				alert(1, domain.ScenarioBase, domain.AlertCritical,
					"Supply less than Total Demand for week 14", "14", "FG-90"),
				alert(2, domain.ScenarioBase, domain.AlertCritical,
					"Inventory not available to cover committed orders", "16", "FG-90"),
				alert(3, domain.ScenarioBase, domain.AlertCapacity,
					"Planned production orders Exceed Allocated Capacity", "16", "IM-55"),
				alert(4, domain.ScenarioBase, domain.AlertSupporting,
					"Projected stock Below Safety Stock level", "15", "RM-10"),
				alert(5, domain.ScenarioBase, domain.AlertSupporting,
					"Planned purchase order past due", "17", "RM-20"),
			},
		},
		{
			info: domain.ScenarioInfo{
				ID:          domain.ScenarioS1,
				Name:        "Expedite Purchase Orders",
				Description: "Pull in open POs for lithium carbonate by two weeks",
			},
			supplyDelta: [weeks]int{120, 0, 60, 0, 80, 0, 0, 60, 0, 60, 0},
			alerts: []domain.Alert{
				alert(1, domain.ScenarioS1, domain.AlertCritical,
					"Inventory not available at receiving plant", "15", "RM-10"),
				alert(2, domain.ScenarioS1, domain.AlertSupporting,
					"Expedited order Exceeds Minimum Order Quantity", "14", "RM-10"),
				alert(3, domain.ScenarioS1, domain.AlertSupporting,
					"Projected stock Below Safety Stock level", "18", "RM-20"),
			},
		},
		{
			info: domain.ScenarioInfo{
				ID:          domain.ScenarioS2,
				Name:        "Increase Calcination Capacity",
				Description: "Add a weekend shift on the calcination line",
			},
			supplyDelta: [weeks]int{0, 50, 100, 50, 120, 0, 50, 120, 50, 100, 0},
			alerts: []domain.Alert{
				alert(1, domain.ScenarioS2, domain.AlertCapacity,
					"Weekend shift plan would Exceed Allocated Capacity", "17", "IM-55"),
				alert(2, domain.ScenarioS2, domain.AlertCritical,
					"Supply less than Total Demand despite added shift", "21", "FG-90"),
			},
		},
		{
			info: domain.ScenarioInfo{
				ID:          domain.ScenarioS3,
				Name:        "Demand Prioritization",
				Description: "Defer non-committed forecast to later weeks",
			},
			demandDelta: [weeks]int{-150, -100, -120, 0, -100, 0, 0, 100, 120, 150, 100},
			alerts: []domain.Alert{
				alert(1, domain.ScenarioS3, domain.AlertSupporting,
					"Sales Orders Exceed Forecast for deferred bucket", "21", "FG-90"),
				alert(2, domain.ScenarioS3, domain.AlertCritical,
					"Supply less than Total Demand in recovery weeks", "23", "FG-90"),
			},
		},
		{
			info: domain.ScenarioInfo{
				ID:          domain.ScenarioS4,
				Name:        "Alternate Cobalt Supplier",
				Description: "Qualify second cobalt oxide source with shorter lead time",
			},
			supplyDelta: [weeks]int{0, 0, 90, 90, 90, 90, 90, 90, 90, 90, 90},
			alerts: []domain.Alert{
				alert(1, domain.ScenarioS4, domain.AlertSupporting,
					"Qualification lot Exceeds Minimum Order Quantity", "16", "RM-20"),
				alert(2, domain.ScenarioS4, domain.AlertSupporting,
					"Projected stock Below Safety Stock level during switchover", "15", "RM-20"),
			},
		},
	}
}

// buildDataset derives one scenario's dataset from the base plan and the
// scenario's deltas. All four data views are built from the same weekly
// numbers, so the per-week time series inventory always equals the sum of
// the per-material inventory tracks.
func buildDataset(spec scenarioSpec) *domain.ScenarioDataset {
	ds := &domain.ScenarioDataset{
		Scenario:   spec.info.ID,
		Inventory:  make(map[string][]int),
		KPIs:       make(map[string]domain.KPI),
		RawColumns: []string{"Week", "Item", "Item Name", "Plant", "Demand", "Supply", "Production Qty"},
	}

	materialName := domain.MaterialIndex(Materials)

	inventory := 520
	for i := 0; i < weeks; i++ {
		week := fmt.Sprintf("%d", domain.FirstWeek+i)
		demand := baseDemand[i] + spec.demandDelta[i]
		supply := baseSupply[i] + spec.supplyDelta[i]
		inventory += supply - demand
		if inventory < 0 {
			inventory = 0
		}

		var fill float64
		if demand > 0 {
			fill = float64(supply) / float64(demand)
		}
		ds.TimeSeries = append(ds.TimeSeries, domain.WeekPoint{
			Week:      week,
			Demand:    demand,
			Supply:    supply,
			Inventory: inventory,
			FillRate:  fill,
		})

		// Finished sheet output tracks supply; calcined powder runs a week
		// ahead of conversion. Raw materials are purchased, not produced.
		fgQty := supply - 40
		imQty := supply + 60
		if i == weeks-1 {
			imQty = 0
		}
		ds.Production = append(ds.Production, domain.ProductionWeek{
			Week: week,
			Quantities: map[string]int{
				"FG-90": fgQty,
				"IM-55": imQty,
			},
		})

		// Split the week's inventory into fixed material shares.
		rm10 := inventory * 30 / 100
		rm20 := inventory * 20 / 100
		im55 := inventory * 15 / 100
		fg90 := inventory - rm10 - rm20 - im55
		ds.Inventory["RM-10"] = append(ds.Inventory["RM-10"], rm10)
		ds.Inventory["RM-20"] = append(ds.Inventory["RM-20"], rm20)
		ds.Inventory["IM-55"] = append(ds.Inventory["IM-55"], im55)
		ds.Inventory["FG-90"] = append(ds.Inventory["FG-90"], fg90)

		ds.KPIs[week] = domain.KPI{
			Week:                  week,
			TotalDemand:           demand,
			FillRate:              fill,
			PlannedInventory:      inventory,
			OnHandInventory:       inventory - inventory/10,
			ProductionOrderQty:    fgQty,
			TotalPlannedPurchases: demand / 2,
			UnconsumedForecast:    demand / 12,
			ForecastError:         0.05 + float64(i)*0.004,
		}

		plant := "Detroit, MI"
		if i%2 == 1 {
			plant = "El Paso, TX"
		}
		for _, id := range []string{"FG-90", "IM-55"} {
			ds.RawRows = append(ds.RawRows, map[string]string{
				"Week":           week,
				"Item":           id,
				"Item Name":      materialName[id].Name,
				"Plant":          plant,
				"Demand":         fmt.Sprintf("%d", demand),
				"Supply":         fmt.Sprintf("%d", supply),
				"Production Qty": fmt.Sprintf("%d", ds.Production[i].Quantities[id]),
			})
		}
	}
	return ds
}

// Load populates the store with the material master, the five built-in
// scenarios and their alerts. Existing rows with the same keys are replaced.
func Load(ctx context.Context, materials repository.MaterialRepository,
	scenarios repository.ScenarioRepository, alerts repository.AlertRepository) error {

	if err := materials.Put(ctx, Materials); err != nil {
		return fmt.Errorf("seeding materials: %w", err)
	}
	for _, spec := range specs() {
		if err := scenarios.Put(ctx, spec.info, buildDataset(spec)); err != nil {
			return fmt.Errorf("seeding scenario %s: %w", spec.info.ID, err)
		}
		if err := alerts.Put(ctx, spec.info.ID, spec.alerts); err != nil {
			return fmt.Errorf("seeding alerts for %s: %w", spec.info.ID, err)
		}
	}
	return nil
}
