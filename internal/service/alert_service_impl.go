package service

import (
	"context"

	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/repository"
)

type alertService struct {
	alerts repository.AlertRepository
}

func NewAlertService(alerts repository.AlertRepository) AlertService {
	return &alertService{alerts: alerts}
}

func (s *alertService) ListByScenario(ctx context.Context, id domain.ScenarioID) ([]domain.Alert, error) {
	return s.alerts.ListByScenario(ctx, id)
}
