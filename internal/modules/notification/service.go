package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/logger"
	"servicehub/internal/repository"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: logger.OrNop(log), now: time.Now}
}

func (s *Service) Create(ctx context.Context, userID int64, t domain.NotificationType, title, body string, data map[string]any) error {
	n := &domain.Notification{
		UserID: userID,
		Type:   t,
		Title:  title,
		Body:   body,
	}
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("encode notification data: %w", err)
		}
		n.Data = datatypes.JSON(raw)
	}
	return s.repo.Create(ctx, n)
}

// List returns the newest notifications and the unread count.
func (s *Service) List(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}

	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		s.log.Warn("count unread notifications", zap.Int64("user_id", userID), zap.Error(err))
		unread = 0
	}
	return list, unread, nil
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	err := s.repo.MarkRead(ctx, id, userID, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID, s.now())
}

func (s *Service) NotifyBookingCreated(ctx context.Context, b *domain.Booking) error {
	return s.Create(ctx, b.ProviderID, domain.NotifBookingCreated,
		"New booking",
		fmt.Sprintf("Booking %s requested for %s %s", b.Ref, b.Date, b.Time),
		bookingData(b),
	)
}

var bookingStatusTitles = map[domain.BookingStatus]struct {
	t     domain.NotificationType
	title string
}{
	domain.BookingAccepted:   {domain.NotifBookingAccepted, "Booking accepted"},
	domain.BookingInProgress: {domain.NotifBookingStarted, "Work started"},
	domain.BookingCompleted:  {domain.NotifBookingCompleted, "Booking completed"},
	domain.BookingCancelled:  {domain.NotifBookingCancelled, "Booking cancelled"},
}

// NotifyBookingStatus tells userID about the booking's current status.
func (s *Service) NotifyBookingStatus(ctx context.Context, userID int64, b *domain.Booking) error {
	entry, ok := bookingStatusTitles[b.Status]
	if !ok {
		return nil
	}
	t := entry.t
	body := fmt.Sprintf("Booking %s is now %s", b.Ref, b.Status)
	if b.Status == domain.BookingCancelled && b.CancelledBy == domain.RoleProvider {
		t = domain.NotifBookingRejected
		if b.ProviderNote != "" {
			body += ". Reason: " + b.ProviderNote
		}
	}
	return s.Create(ctx, userID, t, entry.title, body, bookingData(b))
}

func (s *Service) NotifyNewReview(ctx context.Context, r *domain.Review) error {
	return s.Create(ctx, r.ProviderID, domain.NotifNewReview,
		"New review",
		fmt.Sprintf("You received a %d-star review", r.Rating),
		map[string]any{"reviewId": r.ID, "serviceId": r.ServiceID},
	)
}

func (s *Service) NotifyReviewModerated(ctx context.Context, r *domain.Review) error {
	body := "Your response was " + string(r.ModerationStatus)
	if r.RejectionReason != "" {
		body += ". Reason: " + r.RejectionReason
	}
	return s.Create(ctx, r.ProviderID, domain.NotifReviewModerated, "Response moderated", body,
		map[string]any{"reviewId": r.ID},
	)
}

// NotifyComplaintFiled fans a new complaint out to every admin in adminIDs.
func (s *Service) NotifyComplaintFiled(ctx context.Context, c *domain.Complaint, adminIDs []int64) error {
	var errs []error
	for _, id := range adminIDs {
		err := s.Create(ctx, id, domain.NotifComplaintFiled,
			"New complaint",
			fmt.Sprintf("Complaint %s was filed against booking %d", c.Ref, c.BookingID),
			map[string]any{"complaintId": c.ID, "bookingId": c.BookingID},
		)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) NotifyComplaintResolved(ctx context.Context, c *domain.Complaint) error {
	return s.Create(ctx, c.ProviderID, domain.NotifComplaintResolved,
		"Complaint resolved",
		fmt.Sprintf("Complaint %s was resolved: %s", c.Ref, c.Resolution),
		map[string]any{"complaintId": c.ID, "bookingId": c.BookingID},
	)
}

func (s *Service) NotifyProviderApproval(ctx context.Context, a *domain.Account) error {
	body := "Your provider account was " + string(a.ApprovalStatus)
	if a.ApprovalNote != "" {
		body += ". Note: " + a.ApprovalNote
	}
	return s.Create(ctx, a.ID, domain.NotifProviderApproval, "Account review", body, nil)
}

func bookingData(b *domain.Booking) map[string]any {
	return map[string]any{
		"bookingId": b.ID,
		"ref":       b.Ref,
		"serviceId": b.ServiceID,
	}
}
