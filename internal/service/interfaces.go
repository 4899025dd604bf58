// Package service exposes scenario, alert and material operations to the
// UI layer, simulating the retrieval latency of a remote planning backend.
package service

import (
	"context"

	"github.com/planops/sopdash/internal/domain"
)

type ScenarioService interface {
	List(ctx context.Context) ([]domain.ScenarioInfo, error)
	Load(ctx context.Context, id domain.ScenarioID) (*domain.ScenarioDataset, error)
}

type AlertService interface {
	ListByScenario(ctx context.Context, id domain.ScenarioID) ([]domain.Alert, error)
}

type MaterialService interface {
	List(ctx context.Context) ([]domain.Material, error)
	Index(ctx context.Context) (map[string]domain.Material, error)
}
