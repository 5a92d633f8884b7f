package account

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
	accounts AccountRepository
	notifs   NotificationSender
	log      *zap.Logger
}

func NewService(accounts AccountRepository, notifs NotificationSender, log *zap.Logger) *Service {
	return &Service{accounts: accounts, notifs: notifs, log: logger.OrNop(log)}
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.AccountView, error) {
	acc, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	v := acc.View()
	return &v, nil
}

// SetProviderApproval records adminID's decision on a provider account.
func (s *Service) SetProviderApproval(ctx context.Context, adminID, providerID int64, req ApprovalRequest) (*domain.AccountView, error) {
	var approval domain.ApprovalStatus
	switch req.Decision {
	case "approve":
		approval = domain.ApprovalApproved
	case "reject":
		approval = domain.ApprovalRejected
	default:
		return nil, fmt.Errorf("%w: decision must be approve or reject", ErrValidation)
	}

	acc, err := s.accounts.SetProviderApproval(ctx, providerID, approval, strings.TrimSpace(req.Note))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("set provider approval: %w", err)
	}

	s.log.Info("provider approval updated",
		zap.Int64("provider_id", providerID),
		zap.Int64("admin_id", adminID),
		zap.String("decision", string(approval)),
	)

	if s.notifs != nil {
		if err := s.notifs.NotifyProviderApproval(ctx, acc); err != nil {
			s.log.Warn("notify provider approval", zap.Int64("provider_id", providerID), zap.Error(err))
		}
	}

	v := acc.View()
	return &v, nil
}
