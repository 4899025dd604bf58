package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a single schema migration.
type Migration struct {
	Version int
	SQL     string
}

var migrations = []Migration{
	{
		Version: 1,
		SQL: `
			CREATE TABLE IF NOT EXISTS materials (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				type TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS scenarios (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				seq INTEGER NOT NULL
			);

			CREATE TABLE IF NOT EXISTS time_series (
				scenario_id TEXT NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
				week TEXT NOT NULL,
				demand INTEGER NOT NULL,
				supply INTEGER NOT NULL,
				inventory INTEGER NOT NULL,
				PRIMARY KEY (scenario_id, week)
			);

			CREATE TABLE IF NOT EXISTS production (
				scenario_id TEXT NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
				week TEXT NOT NULL,
				material_id TEXT NOT NULL REFERENCES materials(id),
				quantity INTEGER NOT NULL,
				PRIMARY KEY (scenario_id, week, material_id)
			);

			CREATE TABLE IF NOT EXISTS inventory_levels (
				scenario_id TEXT NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
				material_id TEXT NOT NULL REFERENCES materials(id),
				week_offset INTEGER NOT NULL,
				quantity INTEGER NOT NULL,
				PRIMARY KEY (scenario_id, material_id, week_offset)
			);

			CREATE TABLE IF NOT EXISTS kpis (
				scenario_id TEXT NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
				week TEXT NOT NULL,
				total_demand INTEGER NOT NULL,
				fill_rate REAL NOT NULL,
				planned_inventory INTEGER NOT NULL,
				on_hand_inventory INTEGER NOT NULL,
				production_order_qty INTEGER NOT NULL,
				total_planned_purchases INTEGER NOT NULL,
				unconsumed_forecast INTEGER NOT NULL,
				forecast_error REAL NOT NULL,
				PRIMARY KEY (scenario_id, week)
			);

			CREATE TABLE IF NOT EXISTS alerts (
				scenario_id TEXT NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
				id INTEGER NOT NULL,
				type TEXT NOT NULL,
				description TEXT NOT NULL,
				week TEXT NOT NULL,
				material_id TEXT NOT NULL REFERENCES materials(id),
				seq INTEGER NOT NULL,
				PRIMARY KEY (scenario_id, id)
			);

			CREATE TABLE IF NOT EXISTS raw_data (
				scenario_id TEXT PRIMARY KEY REFERENCES scenarios(id) ON DELETE CASCADE,
				columns TEXT NOT NULL,
				rows TEXT NOT NULL
			);
		`,
	},
}

// Migrate applies all pending migrations to the database.
func Migrate(database *sql.DB) error {
	if _, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	var current int
	if err := database.QueryRow(
		"SELECT COALESCE(MAX(version), 0) FROM schema_migrations",
	).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		tx, err := database.Begin()
		if err != nil {
			return fmt.Errorf("starting migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", m.Version,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", m.Version, err)
		}
	}
	return nil
}
