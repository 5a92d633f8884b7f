package catalog

import (
	"context"

	"servicehub/internal/domain"
	"servicehub/internal/repository"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.ServiceListing) error
	GetActiveByID(ctx context.Context, id int64) (*domain.ServiceListing, error)
	ListActive(ctx context.Context, f repository.ServiceFilter) ([]domain.ServiceListing, int64, error)
	UpdateOwned(ctx context.Context, id, providerID int64, fields map[string]any) (*domain.ServiceListing, error)
	DeleteOwned(ctx context.Context, id, providerID int64) (bool, error)
}

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}
