package service

import (
	"context"

	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/repository"
)

type materialService struct {
	materials repository.MaterialRepository
}

func NewMaterialService(materials repository.MaterialRepository) MaterialService {
	return &materialService{materials: materials}
}

func (s *materialService) List(ctx context.Context) ([]domain.Material, error) {
	return s.materials.List(ctx)
}

func (s *materialService) Index(ctx context.Context) (map[string]domain.Material, error) {
	materials, err := s.materials.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.MaterialIndex(materials), nil
}
