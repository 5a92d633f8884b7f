package repository

import (
	"context"

	"gorm.io/gorm"

	"servicehub/internal/domain"
)

type ComplaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

type ComplaintFilter struct {
	Status     domain.ComplaintStatus
	ProviderID int64
	Pagination
}

func (r *ComplaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ComplaintRepository) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	var c domain.Complaint
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// Transition applies updates only while the complaint is in one of from.
func (r *ComplaintRepository) Transition(ctx context.Context, id int64, from []domain.ComplaintStatus, updates map[string]any) (*domain.Complaint, error) {
	if len(from) == 0 {
		return nil, ErrNotFound
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Complaint{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ComplaintRepository) List(ctx context.Context, f ComplaintFilter) ([]domain.Complaint, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Complaint{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ProviderID > 0 {
		q = q.Where("provider_id = ?", f.ProviderID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	p := f.Pagination.Normalize()
	var out []domain.Complaint
	err := q.Order("id DESC").Limit(p.Limit).Offset(p.Offset()).Find(&out).Error
	return out, total, err
}
