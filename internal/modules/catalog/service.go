package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/logger"
	"servicehub/internal/repository"
)

type Service struct {
	services ServiceRepository
	accounts AccountRepository
	log      *zap.Logger
}

func NewService(services ServiceRepository, accounts AccountRepository, log *zap.Logger) *Service {
	return &Service{services: services, accounts: accounts, log: logger.OrNop(log)}
}

func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	p := repository.Pagination{Page: q.Page, Limit: q.Limit}.Normalize()
	items, total, err := s.services.ListActive(ctx, repository.ServiceFilter{
		Category:   strings.TrimSpace(q.Category),
		Query:      q.Query,
		ProviderID: q.ProviderID,
		Pagination: p,
	})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return &ListResult{Services: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.ServiceListing, error) {
	listing, err := s.services.GetActiveByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return listing, nil
}

// Create publishes a listing; the provider must be active and approved.
func (s *Service) Create(ctx context.Context, providerID int64, req CreateServiceRequest) (*domain.ServiceListing, error) {
	acc, err := s.accounts.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if acc.Role != domain.RoleProvider || !acc.CanOperate() {
		return nil, ErrForbidden
	}

	title := strings.TrimSpace(req.Title)
	if title == "" || req.Price <= 0 {
		return nil, fmt.Errorf("%w: title and a positive price are required", ErrValidation)
	}

	listing := &domain.ServiceListing{
		ProviderID:  providerID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
		IsActive:    true,
	}
	if err := s.services.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.log.Info("service listing created", zap.Int64("service_id", listing.ID), zap.Int64("provider_id", providerID))
	return listing, nil
}

func (s *Service) Update(ctx context.Context, providerID, id int64, req UpdateServiceRequest) (*domain.ServiceListing, error) {
	fields := map[string]any{}
	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if t == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		fields["title"] = t
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		fields["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
		}
		fields["price"] = *req.Price
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	listing, err := s.services.UpdateOwned(ctx, id, providerID, fields)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return listing, nil
}

// Delete removes the listing, or deactivates it when bookings still reference it.
func (s *Service) Delete(ctx context.Context, providerID, id int64) (bool, error) {
	deactivated, err := s.services.DeleteOwned(ctx, id, providerID)
	if err != nil {
		return false, mapRepoErr(err)
	}
	return deactivated, nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
