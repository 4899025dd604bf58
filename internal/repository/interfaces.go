// Package repository provides SQLite-backed access to materials, scenarios
// and alerts.
package repository

import (
	"context"

	"github.com/planops/sopdash/internal/domain"
)

// MaterialRepository accesses the material master.
type MaterialRepository interface {
	List(ctx context.Context) ([]domain.Material, error)
	Get(ctx context.Context, id string) (*domain.Material, error)
	Put(ctx context.Context, materials []domain.Material) error
}

// AlertRepository accesses per-scenario alerts.
type AlertRepository interface {
	ListByScenario(ctx context.Context, scenario domain.ScenarioID) ([]domain.Alert, error)
	Put(ctx context.Context, scenario domain.ScenarioID, alerts []domain.Alert) error
}

// ScenarioRepository accesses scenario metadata and datasets.
type ScenarioRepository interface {
	List(ctx context.Context) ([]domain.ScenarioInfo, error)
	Get(ctx context.Context, id domain.ScenarioID) (*domain.ScenarioDataset, error)
	Put(ctx context.Context, info domain.ScenarioInfo, ds *domain.ScenarioDataset) error
}
