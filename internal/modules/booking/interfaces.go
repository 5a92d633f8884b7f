package booking

import (
	"context"
	"time"

	"servicehub/internal/domain"
	"servicehub/internal/repository"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
	Transition(ctx context.Context, g repository.Guard, updates map[string]any) (*domain.Booking, error)
	Complete(ctx context.Context, g repository.Guard, actualCost *float64, note string, now time.Time) (*domain.Booking, error)
	SetPayment(ctx context.Context, g repository.Guard, from []domain.PaymentStatus, to domain.PaymentStatus) (*domain.Booking, error)
}

type ServiceRepository interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.ServiceListing, error)
}

// ChatBootstrapper opens the customer/provider channel for a new booking.
type ChatBootstrapper interface {
	Bootstrap(ctx context.Context, customerID, providerID int64, bookingID, serviceID *int64) (*domain.Channel, error)
}

type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking) error
	NotifyBookingStatus(ctx context.Context, userID int64, b *domain.Booking) error
}
