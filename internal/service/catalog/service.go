package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/service/catalog/models"
)

type Service struct {
	repo   CatalogRepository
	logger Logger
}

func NewService(repo CatalogRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListServices возвращает активные услуги
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.repo.ListActiveServices(ctx)
	if err != nil {
		s.logger.Error("ListServices: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServices(services), nil
}

// ListBarbers возвращает активных барберов
func (s *Service) ListBarbers(ctx context.Context) (*models.BarberListResponse, error) {
	barbers, err := s.repo.ListActiveBarbers(ctx)
	if err != nil {
		s.logger.Error("ListBarbers: failed to list barbers: %v", err)
		return nil, fmt.Errorf("%w: ListBarbers - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBarbers(barbers), nil
}
