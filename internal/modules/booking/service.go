package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/logger"
	"servicehub/internal/pkg/refs"
	"servicehub/internal/repository"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type Service struct {
	bookings BookingRepository
	services ServiceRepository
	chats    ChatBootstrapper
	notifs   NotificationSender
	log      *zap.Logger
	now      func() time.Time
}

func NewService(
	bookings BookingRepository,
	services ServiceRepository,
	chats ChatBootstrapper,
	notifs NotificationSender,
	log *zap.Logger,
) *Service {
	return &Service{
		bookings: bookings,
		services: services,
		chats:    chats,
		notifs:   notifs,
		log:      logger.OrNop(log),
		now:      time.Now,
	}
}

// Create books an active listing for customerID. Opening the chat channel and
// notifying the provider are best-effort and never fail the booking.
func (s *Service) Create(ctx context.Context, customerID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if _, err := time.Parse(timeLayout, req.Time); err != nil {
		return nil, fmt.Errorf("%w: time must be HH:MM", ErrValidation)
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, fmt.Errorf("%w: address is required", ErrValidation)
	}

	listing, err := s.services.GetActiveByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("load service: %w", err)
	}
	if req.ProviderID != 0 && req.ProviderID != listing.ProviderID {
		return nil, ErrProviderMismatch
	}

	cost := listing.Price
	if req.EstimatedCost != nil {
		cost = *req.EstimatedCost
	}

	b := &domain.Booking{
		Ref:           refs.Booking(),
		CustomerID:    customerID,
		ProviderID:    listing.ProviderID,
		ServiceID:     listing.ID,
		Date:          req.Date,
		Time:          req.Time,
		Address:       strings.TrimSpace(req.Address),
		Description:   strings.TrimSpace(req.Description),
		EstimatedCost: cost,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if s.chats != nil {
		bookingID, serviceID := b.ID, b.ServiceID
		if _, err := s.chats.Bootstrap(ctx, b.CustomerID, b.ProviderID, &bookingID, &serviceID); err != nil {
			s.log.Warn("chat bootstrap failed", zap.Int64("booking_id", b.ID), zap.Error(err))
		}
	}
	if s.notifs != nil {
		if err := s.notifs.NotifyBookingCreated(ctx, b); err != nil {
			s.log.Warn("notify booking created", zap.Int64("booking_id", b.ID), zap.Error(err))
		}
	}

	return b, nil
}

// Get returns the booking to its customer, its provider or an admin.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if !actor.IsAdmin() && !b.IsParty(actor.ID) {
		return nil, ErrNotFound
	}
	return b, nil
}

// List returns the caller's bookings. Admins see every booking.
func (s *Service) List(ctx context.Context, actor domain.Actor, q ListQuery) (*ListResult, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, q.Status)
	}

	f := repository.BookingFilter{
		Status:     q.Status,
		Pagination: repository.Pagination{Page: q.Page, Limit: q.Limit}.Normalize(),
	}
	switch actor.Role {
	case domain.RoleCustomer:
		f.CustomerID = actor.ID
	case domain.RoleProvider:
		f.ProviderID = actor.ID
	case domain.RoleAdmin:
	default:
		return nil, ErrNotFound
	}

	items, total, err := s.bookings.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return &ListResult{Bookings: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (s *Service) Accept(ctx context.Context, providerID, id int64) (*domain.Booking, error) {
	b, err := s.transition(ctx, repository.OwnerProvider, providerID, id, domain.ActionAccept, map[string]any{
		"accepted_at": s.now(),
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.CustomerID, b)
	return b, nil
}

func (s *Service) Reject(ctx context.Context, providerID, id int64, note string) (*domain.Booking, error) {
	b, err := s.transition(ctx, repository.OwnerProvider, providerID, id, domain.ActionReject, map[string]any{
		"cancelled_at":  s.now(),
		"cancelled_by":  domain.RoleProvider,
		"provider_note": strings.TrimSpace(note),
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.CustomerID, b)
	return b, nil
}

func (s *Service) Start(ctx context.Context, providerID, id int64) (*domain.Booking, error) {
	b, err := s.transition(ctx, repository.OwnerProvider, providerID, id, domain.ActionStart, map[string]any{
		"started_at": s.now(),
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.CustomerID, b)
	return b, nil
}

// Complete finishes the job; status and statistics commit together.
func (s *Service) Complete(ctx context.Context, providerID, id int64, req CompleteRequest) (*domain.Booking, error) {
	g := repository.Guard{
		BookingID:   id,
		OwnerColumn: repository.OwnerProvider,
		OwnerID:     providerID,
		Statuses:    domain.BookingSources(domain.ActionComplete),
	}
	b, err := s.bookings.Complete(ctx, g, req.ActualCost, strings.TrimSpace(req.Note), s.now())
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.notify(ctx, b.CustomerID, b)
	return b, nil
}

func (s *Service) Cancel(ctx context.Context, customerID, id int64, note string) (*domain.Booking, error) {
	b, err := s.transition(ctx, repository.OwnerCustomer, customerID, id, domain.ActionCancel, map[string]any{
		"cancelled_at":  s.now(),
		"cancelled_by":  domain.RoleCustomer,
		"customer_note": strings.TrimSpace(note),
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.ProviderID, b)
	return b, nil
}

// SetPayment marks a booking paid (once work is accepted) or refunds a paid one.
func (s *Service) SetPayment(ctx context.Context, providerID, id int64, to domain.PaymentStatus) (*domain.Booking, error) {
	g := repository.Guard{
		BookingID:   id,
		OwnerColumn: repository.OwnerProvider,
		OwnerID:     providerID,
	}

	var from []domain.PaymentStatus
	switch to {
	case domain.PaymentPaid:
		from = []domain.PaymentStatus{domain.PaymentPending}
		g.Statuses = []domain.BookingStatus{domain.BookingAccepted, domain.BookingInProgress, domain.BookingCompleted}
	case domain.PaymentRefunded:
		from = []domain.PaymentStatus{domain.PaymentPaid}
	default:
		return nil, fmt.Errorf("%w: unsupported payment status %q", ErrValidation, to)
	}

	b, err := s.bookings.SetPayment(ctx, g, from, to)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return b, nil
}

func (s *Service) transition(ctx context.Context, ownerColumn string, ownerID, id int64, action domain.BookingAction, extra map[string]any) (*domain.Booking, error) {
	target, err := domain.BookingTarget(action)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"status": target}
	for k, v := range extra {
		updates[k] = v
	}

	g := repository.Guard{
		BookingID:   id,
		OwnerColumn: ownerColumn,
		OwnerID:     ownerID,
		Statuses:    domain.BookingSources(action),
	}
	b, err := s.bookings.Transition(ctx, g, updates)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return b, nil
}

func (s *Service) notify(ctx context.Context, userID int64, b *domain.Booking) {
	if s.notifs == nil {
		return
	}
	if err := s.notifs.NotifyBookingStatus(ctx, userID, b); err != nil {
		s.log.Warn("notify booking status",
			zap.Int64("booking_id", b.ID),
			zap.String("status", string(b.Status)),
			zap.Error(err),
		)
	}
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
