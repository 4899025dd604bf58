package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/planops/sopdash/internal/domain"
)

// SQLiteScenarioRepo implements ScenarioRepository using a SQLite database.
type SQLiteScenarioRepo struct {
	db *sql.DB
}

// NewSQLiteScenarioRepo creates a new SQLiteScenarioRepo.
func NewSQLiteScenarioRepo(db *sql.DB) *SQLiteScenarioRepo {
	return &SQLiteScenarioRepo{db: db}
}

func (r *SQLiteScenarioRepo) List(ctx context.Context) ([]domain.ScenarioInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description FROM scenarios ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	defer rows.Close()

	var infos []domain.ScenarioInfo
	for rows.Next() {
		var info domain.ScenarioInfo
		var idStr string
		if err := rows.Scan(&idStr, &info.Name, &info.Description); err != nil {
			return nil, fmt.Errorf("scanning scenario row: %w", err)
		}
		info.ID = domain.ScenarioID(idStr)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scenarios: %w", err)
	}
	return infos, nil
}

// Get assembles the full dataset for one scenario. Fill rates are not
// stored; they are recomputed from supply and demand on every load.
func (r *SQLiteScenarioRepo) Get(ctx context.Context, id domain.ScenarioID) (*domain.ScenarioDataset, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM scenarios WHERE id = ?`, string(id)).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking scenario %s: %w", id, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownScenario, id)
	}

	ds := &domain.ScenarioDataset{
		Scenario:  id,
		Inventory: make(map[string][]int),
		KPIs:      make(map[string]domain.KPI),
	}

	if err := r.loadTimeSeries(ctx, ds); err != nil {
		return nil, err
	}
	if err := r.loadProduction(ctx, ds); err != nil {
		return nil, err
	}
	if err := r.loadInventory(ctx, ds); err != nil {
		return nil, err
	}
	if err := r.loadKPIs(ctx, ds); err != nil {
		return nil, err
	}
	if err := r.loadRawData(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func (r *SQLiteScenarioRepo) loadTimeSeries(ctx context.Context, ds *domain.ScenarioDataset) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT week, demand, supply, inventory FROM time_series
			WHERE scenario_id = ? ORDER BY CAST(week AS INTEGER)`,
		string(ds.Scenario))
	if err != nil {
		return fmt.Errorf("loading time series: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var wp domain.WeekPoint
		if err := rows.Scan(&wp.Week, &wp.Demand, &wp.Supply, &wp.Inventory); err != nil {
			return fmt.Errorf("scanning time series row: %w", err)
		}
		if wp.Demand > 0 {
			wp.FillRate = float64(wp.Supply) / float64(wp.Demand)
		}
		ds.TimeSeries = append(ds.TimeSeries, wp)
	}
	return rows.Err()
}

func (r *SQLiteScenarioRepo) loadProduction(ctx context.Context, ds *domain.ScenarioDataset) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT week, material_id, quantity FROM production
			WHERE scenario_id = ? ORDER BY CAST(week AS INTEGER), material_id`,
		string(ds.Scenario))
	if err != nil {
		return fmt.Errorf("loading production: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var week, materialID string
		var qty int
		if err := rows.Scan(&week, &materialID, &qty); err != nil {
			return fmt.Errorf("scanning production row: %w", err)
		}
		n := len(ds.Production)
		if n == 0 || ds.Production[n-1].Week != week {
			ds.Production = append(ds.Production, domain.ProductionWeek{
				Week:       week,
				Quantities: make(map[string]int),
			})
			n++
		}
		ds.Production[n-1].Quantities[materialID] = qty
	}
	return rows.Err()
}

func (r *SQLiteScenarioRepo) loadInventory(ctx context.Context, ds *domain.ScenarioDataset) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT material_id, quantity FROM inventory_levels
			WHERE scenario_id = ? ORDER BY material_id, week_offset`,
		string(ds.Scenario))
	if err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var materialID string
		var qty int
		if err := rows.Scan(&materialID, &qty); err != nil {
			return fmt.Errorf("scanning inventory row: %w", err)
		}
		ds.Inventory[materialID] = append(ds.Inventory[materialID], qty)
	}
	return rows.Err()
}

func (r *SQLiteScenarioRepo) loadKPIs(ctx context.Context, ds *domain.ScenarioDataset) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT week, total_demand, fill_rate, planned_inventory, on_hand_inventory,
			production_order_qty, total_planned_purchases, unconsumed_forecast, forecast_error
			FROM kpis WHERE scenario_id = ?`,
		string(ds.Scenario))
	if err != nil {
		return fmt.Errorf("loading KPIs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k domain.KPI
		if err := rows.Scan(&k.Week, &k.TotalDemand, &k.FillRate, &k.PlannedInventory,
			&k.OnHandInventory, &k.ProductionOrderQty, &k.TotalPlannedPurchases,
			&k.UnconsumedForecast, &k.ForecastError); err != nil {
			return fmt.Errorf("scanning KPI row: %w", err)
		}
		ds.KPIs[k.Week] = k
	}
	return rows.Err()
}

func (r *SQLiteScenarioRepo) loadRawData(ctx context.Context, ds *domain.ScenarioDataset) error {
	var columnsJSON, rowsJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT columns, rows FROM raw_data WHERE scenario_id = ?`,
		string(ds.Scenario)).Scan(&columnsJSON, &rowsJSON)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading raw data: %w", err)
	}
	if err := json.Unmarshal([]byte(columnsJSON), &ds.RawColumns); err != nil {
		return fmt.Errorf("decoding raw columns: %w", err)
	}
	if err := json.Unmarshal([]byte(rowsJSON), &ds.RawRows); err != nil {
		return fmt.Errorf("decoding raw rows: %w", err)
	}
	return nil
}

// Put replaces the scenario's metadata and full dataset in one transaction.
func (r *SQLiteScenarioRepo) Put(ctx context.Context, info domain.ScenarioInfo, ds *domain.ScenarioDataset) error {
	columnsJSON, err := json.Marshal(ds.RawColumns)
	if err != nil {
		return fmt.Errorf("encoding raw columns: %w", err)
	}
	rowsJSON, err := json.Marshal(ds.RawRows)
	if err != nil {
		return fmt.Errorf("encoding raw rows: %w", err)
	}

	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		var seq int
		err := tx.QueryRowContext(ctx,
			`SELECT seq FROM scenarios WHERE id = ?`, string(info.ID)).Scan(&seq)
		if err == sql.ErrNoRows {
			if err := tx.QueryRowContext(ctx,
				`SELECT COALESCE(MAX(seq), -1) + 1 FROM scenarios`).Scan(&seq); err != nil {
				return fmt.Errorf("allocating scenario seq: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("reading scenario seq: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO scenarios (id, name, description, seq) VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET name = excluded.name, description = excluded.description`,
			string(info.ID), info.Name, info.Description, seq)
		if err != nil {
			return fmt.Errorf("upserting scenario %s: %w", info.ID, err)
		}

		for _, table := range []string{"time_series", "production", "inventory_levels", "kpis", "raw_data"} {
			if _, err := tx.ExecContext(ctx,
				fmt.Sprintf(`DELETE FROM %s WHERE scenario_id = ?`, table),
				string(info.ID)); err != nil {
				return fmt.Errorf("clearing %s for %s: %w", table, info.ID, err)
			}
		}

		for _, wp := range ds.TimeSeries {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO time_series (scenario_id, week, demand, supply, inventory)
					VALUES (?, ?, ?, ?, ?)`,
				string(info.ID), wp.Week, wp.Demand, wp.Supply, wp.Inventory); err != nil {
				return fmt.Errorf("inserting time series week %s: %w", wp.Week, err)
			}
		}
		for _, pw := range ds.Production {
			for materialID, qty := range pw.Quantities {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO production (scenario_id, week, material_id, quantity)
						VALUES (?, ?, ?, ?)`,
					string(info.ID), pw.Week, materialID, qty); err != nil {
					return fmt.Errorf("inserting production week %s: %w", pw.Week, err)
				}
			}
		}
		for materialID, levels := range ds.Inventory {
			for offset, qty := range levels {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO inventory_levels (scenario_id, material_id, week_offset, quantity)
						VALUES (?, ?, ?, ?)`,
					string(info.ID), materialID, offset, qty); err != nil {
					return fmt.Errorf("inserting inventory for %s: %w", materialID, err)
				}
			}
		}
		for _, k := range ds.KPIs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO kpis (scenario_id, week, total_demand, fill_rate, planned_inventory,
					on_hand_inventory, production_order_qty, total_planned_purchases,
					unconsumed_forecast, forecast_error)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				string(info.ID), k.Week, k.TotalDemand, k.FillRate, k.PlannedInventory,
				k.OnHandInventory, k.ProductionOrderQty, k.TotalPlannedPurchases,
				k.UnconsumedForecast, k.ForecastError); err != nil {
				return fmt.Errorf("inserting KPI week %s: %w", k.Week, err)
			}
		}
		if len(ds.RawColumns) > 0 || len(ds.RawRows) > 0 {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO raw_data (scenario_id, columns, rows) VALUES (?, ?, ?)`,
				string(info.ID), string(columnsJSON), string(rowsJSON)); err != nil {
				return fmt.Errorf("inserting raw data: %w", err)
			}
		}
		return nil
	})
}
