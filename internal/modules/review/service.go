package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"servicehub/internal/config"
	"servicehub/internal/domain"
	"servicehub/internal/pkg/logger"
	"servicehub/internal/repository"
)

type Service struct {
	reviews  ReviewRepository
	bookings BookingGate
	services ServiceGate
	notifs   NotificationSender
	policy   config.ReviewPolicy
	log      *zap.Logger
	now      func() time.Time
}

func NewService(
	reviews ReviewRepository,
	bookings BookingGate,
	services ServiceGate,
	notifs NotificationSender,
	policy config.ReviewPolicy,
	log *zap.Logger,
) *Service {
	return &Service{
		reviews:  reviews,
		bookings: bookings,
		services: services,
		notifs:   notifs,
		policy:   policy,
		log:      logger.OrNop(log),
		now:      time.Now,
	}
}

// Create stores a customer review for a booking or, lacking one, a service.
func (s *Service) Create(ctx context.Context, customerID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidRequest)
	}
	if req.BookingID == nil && req.ServiceID == nil {
		return nil, fmt.Errorf("%w: bookingId or serviceId is required", ErrInvalidRequest)
	}

	rv := &domain.Review{
		CustomerID: customerID,
		BookingID:  req.BookingID,
		Rating:     req.Rating,
		ReviewText: strings.TrimSpace(req.ReviewText),
	}

	var err error
	if req.BookingID != nil {
		err = s.fromBooking(ctx, customerID, *req.BookingID, req.ServiceID, rv)
	} else {
		err = s.fromService(ctx, customerID, *req.ServiceID, rv)
	}
	if err != nil {
		return nil, err
	}

	if err := s.store(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyNewReview(ctx, rv); err != nil {
			s.log.Warn("notify new review", zap.Int64("review_id", rv.ID), zap.Error(err))
		}
	}
	return rv, nil
}

// store writes rv. Without duplicates the booking check and the insert share
// one transaction.
func (s *Service) store(ctx context.Context, rv *domain.Review) error {
	if rv.BookingID != nil && !s.policy.AllowDuplicates {
		return s.reviews.CreateOnce(ctx, rv)
	}
	return s.reviews.Create(ctx, rv)
}

func (s *Service) fromBooking(ctx context.Context, customerID, bookingID int64, serviceID *int64, rv *domain.Review) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if b.CustomerID != customerID {
		return ErrNotFound
	}
	if serviceID != nil && *serviceID != b.ServiceID {
		return fmt.Errorf("%w: serviceId does not match the booking", ErrInvalidRequest)
	}
	if s.policy.RequireCompletedBooking && b.Status != domain.BookingCompleted {
		return ErrReviewNotAllowed
	}
	rv.ServiceID = b.ServiceID
	rv.ProviderID = b.ProviderID
	return nil
}

func (s *Service) fromService(ctx context.Context, customerID, serviceID int64, rv *domain.Review) error {
	listing, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if s.policy.RequireCompletedBooking {
		ok, err := s.bookings.HasCompletedBooking(ctx, customerID, serviceID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrReviewNotAllowed
		}
	}

	rv.ServiceID = listing.ID
	rv.ProviderID = listing.ProviderID
	return nil
}

// Respond attaches providerID's rebuttal; it stays hidden until an admin approves it.
func (s *Service) Respond(ctx context.Context, providerID, reviewID int64, response string) (*domain.Review, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, fmt.Errorf("%w: response is required", ErrInvalidRequest)
	}

	rv, err := s.reviews.SetResponse(ctx, reviewID, providerID, response, s.now())
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return rv, nil
}

// Moderate approves or rejects an existing rebuttal.
func (s *Service) Moderate(ctx context.Context, adminID, reviewID int64, req ModerateRequest) (*domain.Review, error) {
	var status domain.ModerationStatus
	switch req.Action {
	case "approve":
		status = domain.ModerationApproved
	case "reject":
		status = domain.ModerationRejected
	default:
		return nil, fmt.Errorf("%w: action must be approve or reject", ErrInvalidRequest)
	}

	reason := ""
	if status == domain.ModerationRejected {
		reason = strings.TrimSpace(req.RejectionReason)
	}

	rv, err := s.reviews.Moderate(ctx, reviewID, adminID, status, reason, s.now())
	if err != nil {
		return nil, mapRepoErr(err)
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyReviewModerated(ctx, rv); err != nil {
			s.log.Warn("notify review moderated", zap.Int64("review_id", rv.ID), zap.Error(err))
		}
	}
	return rv, nil
}

// ListForService returns the public view of a listing's reviews.
func (s *Service) ListForService(ctx context.Context, serviceID int64, p repository.Pagination) ([]domain.Review, int64, error) {
	items, total, err := s.reviews.ListByService(ctx, serviceID, p.Normalize())
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.Review, 0, len(items))
	for _, rv := range items {
		out = append(out, rv.Public())
	}
	return out, total, nil
}

func (s *Service) ModerationQueue(ctx context.Context, status domain.ModerationStatus, p repository.Pagination) ([]domain.Review, int64, error) {
	switch status {
	case domain.ModerationNone, domain.ModerationPending, domain.ModerationApproved, domain.ModerationRejected:
	default:
		return nil, 0, fmt.Errorf("%w: unknown moderation status %q", ErrInvalidRequest, status)
	}
	return s.reviews.ListForModeration(ctx, status, p.Normalize())
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
