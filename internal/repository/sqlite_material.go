package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/planops/sopdash/internal/domain"
)

// SQLiteMaterialRepo implements MaterialRepository using a SQLite database.
type SQLiteMaterialRepo struct {
	db *sql.DB
}

// NewSQLiteMaterialRepo creates a new SQLiteMaterialRepo.
func NewSQLiteMaterialRepo(db *sql.DB) *SQLiteMaterialRepo {
	return &SQLiteMaterialRepo{db: db}
}

func (r *SQLiteMaterialRepo) List(ctx context.Context) ([]domain.Material, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, type FROM materials ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	defer rows.Close()

	var materials []domain.Material
	for rows.Next() {
		var m domain.Material
		var typeStr string
		if err := rows.Scan(&m.ID, &m.Name, &typeStr); err != nil {
			return nil, fmt.Errorf("scanning material row: %w", err)
		}
		m.Type = domain.MaterialType(typeStr)
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating materials: %w", err)
	}
	return materials, nil
}

func (r *SQLiteMaterialRepo) Get(ctx context.Context, id string) (*domain.Material, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, type FROM materials WHERE id = ?`, id)

	var m domain.Material
	var typeStr string
	if err := row.Scan(&m.ID, &m.Name, &typeStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("material %s not found", id)
		}
		return nil, fmt.Errorf("scanning material: %w", err)
	}
	m.Type = domain.MaterialType(typeStr)
	return &m, nil
}

func (r *SQLiteMaterialRepo) Put(ctx context.Context, materials []domain.Material) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, m := range materials {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO materials (id, name, type) VALUES (?, ?, ?)
					ON CONFLICT(id) DO UPDATE SET name = excluded.name, type = excluded.type`,
				m.ID, m.Name, string(m.Type))
			if err != nil {
				return fmt.Errorf("upserting material %s: %w", m.ID, err)
			}
		}
		return nil
	})
}
