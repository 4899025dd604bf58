package service

import (
	"context"
	"time"

	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/repository"
)

type scenarioService struct {
	scenarios repository.ScenarioRepository
	latency   time.Duration
}

// NewScenarioService wraps the scenario repository. A non-zero latency is
// slept before every load to mimic the retrieval delay of a remote planning
// backend; the sleep honors context cancellation.
func NewScenarioService(scenarios repository.ScenarioRepository, latency time.Duration) ScenarioService {
	return &scenarioService{scenarios: scenarios, latency: latency}
}

func (s *scenarioService) List(ctx context.Context) ([]domain.ScenarioInfo, error) {
	return s.scenarios.List(ctx)
}

func (s *scenarioService) Load(ctx context.Context, id domain.ScenarioID) (*domain.ScenarioDataset, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return s.scenarios.Get(ctx, id)
}
