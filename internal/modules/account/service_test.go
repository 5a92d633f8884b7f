package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"servicehub/internal/domain"
	"servicehub/internal/repository"
)

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SetProviderApproval(ctx context.Context, id int64, approval domain.ApprovalStatus, note string) (*domain.Account, error) {
	args := m.Called(ctx, id, approval, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyProviderApproval(ctx context.Context, a *domain.Account) error {
	return m.Called(ctx, a).Error(0)
}

func TestMe_DerivesIsApproved(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(20)).Return(&domain.Account{
		ID: 20, Role: domain.RoleProvider, Status: domain.AccountActive, ApprovalStatus: domain.ApprovalApproved,
	}, nil)
	repo.On("GetByID", ctx, int64(21)).Return(nil, repository.ErrNotFound)

	v, err := svc.Me(ctx, 20)
	require.NoError(t, err)
	assert.True(t, v.IsApproved)

	_, err = svc.Me(ctx, 21)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetProviderApproval_Approve(t *testing.T) {
	repo := new(MockAccountRepository)
	notifs := new(MockNotifier)
	svc := NewService(repo, notifs, nil)
	ctx := context.Background()

	approved := &domain.Account{ID: 20, Role: domain.RoleProvider, Status: domain.AccountActive, ApprovalStatus: domain.ApprovalApproved}
	repo.On("SetProviderApproval", ctx, int64(20), domain.ApprovalApproved, "docs ok").Return(approved, nil)
	notifs.On("NotifyProviderApproval", ctx, approved).Return(errors.New("down"))

	v, err := svc.SetProviderApproval(ctx, 1, 20, ApprovalRequest{Decision: "approve", Note: " docs ok "})
	require.NoError(t, err)
	assert.True(t, v.IsApproved)
	assert.Equal(t, domain.AccountActive, v.Status)
	notifs.AssertExpectations(t)
}

func TestSetProviderApproval_NonProviderIsNotFound(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	repo.On("SetProviderApproval", ctx, int64(3), domain.ApprovalRejected, "").Return(nil, repository.ErrNotFound)

	_, err := svc.SetProviderApproval(ctx, 1, 3, ApprovalRequest{Decision: "reject"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SetProviderApproval(ctx, 1, 3, ApprovalRequest{Decision: "maybe"})
	assert.ErrorIs(t, err, ErrValidation)
}
