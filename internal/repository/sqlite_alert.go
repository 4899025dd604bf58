package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/planops/sopdash/internal/domain"
)

// SQLiteAlertRepo implements AlertRepository using a SQLite database.
type SQLiteAlertRepo struct {
	db *sql.DB
}

// NewSQLiteAlertRepo creates a new SQLiteAlertRepo.
func NewSQLiteAlertRepo(db *sql.DB) *SQLiteAlertRepo {
	return &SQLiteAlertRepo{db: db}
}

// ListByScenario returns a scenario's alerts in their stored display order.
// The rule key is resolved from the type and description at load time, so
// callers never re-parse descriptions.
func (r *SQLiteAlertRepo) ListByScenario(ctx context.Context, scenario domain.ScenarioID) ([]domain.Alert, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, description, week, material_id
			FROM alerts WHERE scenario_id = ? ORDER BY seq`,
		string(scenario))
	if err != nil {
		return nil, fmt.Errorf("listing alerts for %s: %w", scenario, err)
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		var a domain.Alert
		var typeStr string
		if err := rows.Scan(&a.ID, &typeStr, &a.Description, &a.Week, &a.MaterialID); err != nil {
			return nil, fmt.Errorf("scanning alert row: %w", err)
		}
		a.Scenario = scenario
		a.Type = domain.AlertType(typeStr)
		a.Rule = domain.ClassifyAlert(a.Type, a.Description)
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alerts: %w", err)
	}
	return alerts, nil
}

func (r *SQLiteAlertRepo) Put(ctx context.Context, scenario domain.ScenarioID, alerts []domain.Alert) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM alerts WHERE scenario_id = ?`, string(scenario))
		if err != nil {
			return fmt.Errorf("clearing alerts for %s: %w", scenario, err)
		}
		for i, a := range alerts {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO alerts (scenario_id, id, type, description, week, material_id, seq)
					VALUES (?, ?, ?, ?, ?, ?, ?)`,
				string(scenario), a.ID, string(a.Type), a.Description, a.Week, a.MaterialID, i)
			if err != nil {
				return fmt.Errorf("inserting alert %d: %w", a.ID, err)
			}
		}
		return nil
	})
}
