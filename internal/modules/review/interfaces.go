package review

import (
	"context"
	"time"

	"servicehub/internal/domain"
	"servicehub/internal/repository"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	CreateOnce(ctx context.Context, rv *domain.Review) error
	SetResponse(ctx context.Context, id, providerID int64, response string, now time.Time) (*domain.Review, error)
	Moderate(ctx context.Context, id, adminID int64, status domain.ModerationStatus, reason string, now time.Time) (*domain.Review, error)
	ListByService(ctx context.Context, serviceID int64, p repository.Pagination) ([]domain.Review, int64, error)
	ListForModeration(ctx context.Context, status domain.ModerationStatus, p repository.Pagination) ([]domain.Review, int64, error)
}

// BookingGate answers eligibility questions about bookings.
type BookingGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	HasCompletedBooking(ctx context.Context, customerID, serviceID int64) (bool, error)
}

type ServiceGate interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceListing, error)
}

type NotificationSender interface {
	NotifyNewReview(ctx context.Context, r *domain.Review) error
	NotifyReviewModerated(ctx context.Context, r *domain.Review) error
}
