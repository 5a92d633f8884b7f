package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"servicehub/internal/domain"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type ServiceFilter struct {
	Category   string
	Query      string
	ProviderID int64
	Pagination
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.ServiceListing) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceListing, error) {
	var s domain.ServiceListing
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *ServiceRepository) GetActiveByID(ctx context.Context, id int64) (*domain.ServiceListing, error) {
	var s domain.ServiceListing
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&s).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

// ListActive returns active listings matching f and the total match count.
func (r *ServiceRepository) ListActive(ctx context.Context, f ServiceFilter) ([]domain.ServiceListing, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.ServiceListing{}).Where("is_active = ?", true)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.ProviderID > 0 {
		q = q.Where("provider_id = ?", f.ProviderID)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := f.Pagination.Normalize()
	var out []domain.ServiceListing
	err := q.Order("id DESC").Limit(p.Limit).Offset(p.Offset()).Find(&out).Error
	return out, total, err
}

// UpdateOwned applies fields to a listing owned by providerID.
func (r *ServiceRepository) UpdateOwned(ctx context.Context, id, providerID int64, fields map[string]any) (*domain.ServiceListing, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.ServiceListing{}).
		Where("id = ? AND provider_id = ?", id, providerID).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// DeleteOwned hard-deletes an unreferenced listing and deactivates a referenced one.
func (r *ServiceRepository) DeleteOwned(ctx context.Context, id, providerID int64) (deactivated bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s domain.ServiceListing
		if err := tx.Where("id = ? AND provider_id = ?", id, providerID).First(&s).Error; err != nil {
			return notFound(err)
		}

		var refs int64
		if err := tx.Model(&domain.Booking{}).Where("service_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}

		if refs > 0 {
			deactivated = true
			return tx.Model(&s).Update("is_active", false).Error
		}
		return tx.Delete(&s).Error
	})
	return deactivated, err
}
