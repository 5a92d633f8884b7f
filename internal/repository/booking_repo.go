package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"servicehub/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type BookingFilter struct {
	CustomerID int64
	ProviderID int64
	Status     domain.BookingStatus
	Pagination
}

// Guard describes the precondition of a conditional booking write.
type Guard struct {
	BookingID int64
	// OwnerColumn is "customer_id" or "provider_id".
	OwnerColumn string
	OwnerID     int64
	Statuses    []domain.BookingStatus
}

const (
	OwnerCustomer = "customer_id"
	OwnerProvider = "provider_id"
)

func (g Guard) apply(q *gorm.DB) *gorm.DB {
	q = q.Where("id = ?", g.BookingID)
	switch g.OwnerColumn {
	case OwnerCustomer:
		q = q.Where("customer_id = ?", g.OwnerID)
	case OwnerProvider:
		q = q.Where("provider_id = ?", g.OwnerID)
	}
	if len(g.Statuses) > 0 {
		q = q.Where("status IN ?", g.Statuses)
	}
	return q
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return getBooking(r.db.WithContext(ctx), id)
}

func getBooking(db *gorm.DB, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := db.First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// List returns bookings matching f, newest first, and the total match count.
func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{})
	if f.CustomerID > 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.ProviderID > 0 {
		q = q.Where("provider_id = ?", f.ProviderID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := f.Pagination.Normalize()
	var out []domain.Booking
	err := q.Order("created_at DESC, id DESC").Limit(p.Limit).Offset(p.Offset()).Find(&out).Error
	return out, total, err
}

// Transition is the compare-and-set primitive behind every booking mutation:
// one UPDATE matching id, owner and source statuses. No match yields ErrNotFound.
func (r *BookingRepository) Transition(ctx context.Context, g Guard, updates map[string]any) (*domain.Booking, error) {
	db := r.db.WithContext(ctx)
	if err := transition(db, g, updates); err != nil {
		return nil, err
	}
	return getBooking(db, g.BookingID)
}

func transition(db *gorm.DB, g Guard, updates map[string]any) error {
	res := g.apply(db.Model(&domain.Booking{})).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Complete moves a booking to completed and bumps listing and provider
// aggregates in one transaction. actualCost nil falls back to estimatedCost.
func (r *BookingRepository) Complete(ctx context.Context, g Guard, actualCost *float64, note string, now time.Time) (*domain.Booking, error) {
	var out *domain.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.Booking
		if err := g.apply(tx.Model(&domain.Booking{})).First(&current).Error; err != nil {
			return notFound(err)
		}

		cost := current.EstimatedCost
		if actualCost != nil {
			cost = *actualCost
		}

		updates := map[string]any{
			"status":       domain.BookingCompleted,
			"completed_at": now,
			"actual_cost":  cost,
		}
		if note != "" {
			updates["provider_note"] = note
		}
		if err := transition(tx, g, updates); err != nil {
			return err
		}

		res := tx.Model(&domain.ServiceListing{}).
			Where("id = ?", current.ServiceID).
			Updates(map[string]any{
				"total_bookings":     gorm.Expr("total_bookings + 1"),
				"completed_bookings": gorm.Expr("completed_bookings + 1"),
			})
		if res.Error != nil {
			return fmt.Errorf("bump service counters: %w", res.Error)
		}

		err := tx.Model(&domain.Account{}).
			Where("id = ?", current.ProviderID).
			Updates(map[string]any{
				"total_bookings": gorm.Expr("total_bookings + 1"),
				"total_earnings": gorm.Expr("total_earnings + ?", cost),
			}).Error
		if err != nil {
			return fmt.Errorf("bump provider counters: %w", err)
		}

		b, err := getBooking(tx, current.ID)
		if err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetPayment moves paymentStatus from one of from to to, guarded by owner and booking status.
func (r *BookingRepository) SetPayment(ctx context.Context, g Guard, from []domain.PaymentStatus, to domain.PaymentStatus) (*domain.Booking, error) {
	db := r.db.WithContext(ctx)
	res := g.apply(db.Model(&domain.Booking{})).
		Where("payment_status IN ?", from).
		Update("payment_status", to)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return getBooking(db, g.BookingID)
}

// BackfillProviderIDs copies the listing owner onto bookings missing a provider.
func (r *BookingRepository) BackfillProviderIDs(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
UPDATE bookings
SET provider_id = (
	SELECT service_listings.provider_id
	FROM service_listings
	WHERE service_listings.id = bookings.service_id
)
WHERE (provider_id = 0 OR provider_id IS NULL)
  AND EXISTS (
	SELECT 1 FROM service_listings WHERE service_listings.id = bookings.service_id
)`)
	return res.RowsAffected, res.Error
}

// HasCompletedBooking reports whether customerID has a completed booking for serviceID.
func (r *BookingRepository) HasCompletedBooking(ctx context.Context, customerID, serviceID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("customer_id = ? AND service_id = ? AND status = ?", customerID, serviceID, domain.BookingCompleted).
		Count(&n).Error
	return n > 0, err
}
