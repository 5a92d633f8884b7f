package account

import (
	"context"

	"servicehub/internal/domain"
)

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	SetProviderApproval(ctx context.Context, id int64, approval domain.ApprovalStatus, note string) (*domain.Account, error)
}

type NotificationSender interface {
	NotifyProviderApproval(ctx context.Context, a *domain.Account) error
}
