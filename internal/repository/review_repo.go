package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"servicehub/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts rv and recomputes the provider's rating aggregates in one transaction.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rv).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		return recomputeProviderRating(tx, rv.ProviderID)
	})
}

func recomputeProviderRating(tx *gorm.DB, providerID int64) error {
	var agg struct {
		Avg   float64
		Count int
	}
	err := tx.Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("provider_id = ?", providerID).
		Scan(&agg).Error
	if err != nil {
		return fmt.Errorf("aggregate ratings: %w", err)
	}

	return tx.Model(&domain.Account{}).
		Where("id = ?", providerID).
		Updates(map[string]any{
			"average_rating": agg.Avg,
			"total_reviews":  agg.Count,
		}).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &rv, nil
}

// CreateOnce inserts rv unless its booking already carries a review. The booking
// row is locked for the duration so concurrent callers serialize on it.
func (r *ReviewRepository) CreateOnce(ctx context.Context, rv *domain.Review) error {
	if rv.BookingID == nil {
		return r.Create(ctx, rv)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", *rv.BookingID).
			First(&b).Error
		if err != nil {
			return notFound(err)
		}

		var n int64
		if err := tx.Model(&domain.Review{}).Where("booking_id = ?", *rv.BookingID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicate
		}

		if err := tx.Create(rv).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		return recomputeProviderRating(tx, rv.ProviderID)
	})
}

// SetResponse stores providerID's rebuttal and queues it for moderation.
func (r *ReviewRepository) SetResponse(ctx context.Context, id, providerID int64, response string, now time.Time) (*domain.Review, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&domain.Review{}).
		Where("id = ? AND provider_id = ?", id, providerID).
		Updates(map[string]any{
			"provider_response": response,
			"responded_at":      now,
			"moderation_status": domain.ModerationPending,
			"is_moderated":      false,
			"moderated_by":      nil,
			"moderated_at":      nil,
			"rejection_reason":  "",
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Moderate records an admin decision on an existing rebuttal.
func (r *ReviewRepository) Moderate(ctx context.Context, id, adminID int64, status domain.ModerationStatus, reason string, now time.Time) (*domain.Review, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&domain.Review{}).
		Where("id = ? AND provider_response IS NOT NULL", id).
		Updates(map[string]any{
			"moderation_status": status,
			"is_moderated":      true,
			"moderated_by":      adminID,
			"moderated_at":      now,
			"rejection_reason":  reason,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ReviewRepository) ListByService(ctx context.Context, serviceID int64, p Pagination) ([]domain.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Review{}).Where("service_id = ?", serviceID)
	return listReviews(q, p)
}

// ListForModeration returns reviews carrying a rebuttal, optionally filtered by status.
func (r *ReviewRepository) ListForModeration(ctx context.Context, status domain.ModerationStatus, p Pagination) ([]domain.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Review{}).Where("provider_response IS NOT NULL")
	if status != domain.ModerationNone {
		q = q.Where("moderation_status = ?", status)
	}
	return listReviews(q, p)
}

func listReviews(q *gorm.DB, p Pagination) ([]domain.Review, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	p = p.Normalize()
	var out []domain.Review
	err := q.Order("id DESC").Limit(p.Limit).Offset(p.Offset()).Find(&out).Error
	return out, total, err
}
