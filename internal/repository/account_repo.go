package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"servicehub/internal/domain"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// SetProviderApproval records an admin decision. Only provider rows match.
func (r *AccountRepository) SetProviderApproval(ctx context.Context, id int64, approval domain.ApprovalStatus, note string) (*domain.Account, error) {
	status := domain.AccountActive
	if approval == domain.ApprovalRejected {
		status = domain.AccountRejected
	}

	res := r.db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("id = ? AND role = ?", id, domain.RoleProvider).
		Updates(map[string]any{
			"approval_status": approval,
			"approval_note":   note,
			"status":          status,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// ListAdminIDs returns active admin account ids.
func (r *AccountRepository) ListAdminIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("role = ? AND status = ?", domain.RoleAdmin, domain.AccountActive).
		Pluck("id", &ids).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return ids, nil
}
