package complaint

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"go.uber.org/zap"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/logger"
	"servicehub/internal/pkg/refs"
	"servicehub/internal/pkg/validator"
	"servicehub/internal/repository"
	"servicehub/internal/storage"
)

const attachmentPrefix = "complaints"

type Service struct {
	complaints  ComplaintRepository
	bookings    BookingRepository
	accounts    AccountRepository
	attachments AttachmentStore
	notifs      NotificationSender
	log         *zap.Logger
	now         func() time.Time
}

func NewService(
	complaints ComplaintRepository,
	bookings BookingRepository,
	accounts AccountRepository,
	attachments AttachmentStore,
	notifs NotificationSender,
	log *zap.Logger,
) *Service {
	return &Service{
		complaints:  complaints,
		bookings:    bookings,
		accounts:    accounts,
		attachments: attachments,
		notifs:      notifs,
		log:         logger.OrNop(log),
		now:         time.Now,
	}
}

// Create files a provider complaint against one of their bookings, whatever its status.
func (s *Service) Create(ctx context.Context, providerID int64, form CreateComplaintForm, attachment *multipart.FileHeader) (*domain.Complaint, error) {
	form.Description = strings.TrimSpace(form.Description)
	if errs := validator.Validate(form); errs != nil {
		return nil, FieldErrors(errs)
	}

	b, err := s.bookings.GetByID(ctx, form.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.ProviderID != providerID {
		return nil, ErrNotFound
	}

	c := &domain.Complaint{
		Ref:         refs.Complaint(),
		BookingID:   b.ID,
		ProviderID:  providerID,
		CustomerID:  b.CustomerID,
		Description: form.Description,
		Status:      domain.ComplaintOpen,
	}

	var obj *storage.Object
	if attachment != nil {
		if s.attachments == nil {
			return nil, fmt.Errorf("%w: attachments are not configured", ErrAttachment)
		}
		obj, err = s.attachments.Save(ctx, attachmentPrefix, attachment)
		if err != nil {
			if errors.Is(err, storage.ErrEmptyFile) || errors.Is(err, storage.ErrFileTooLarge) || errors.Is(err, storage.ErrInvalidMimeType) {
				return nil, fmt.Errorf("%w: %v", ErrAttachment, err)
			}
			return nil, fmt.Errorf("store attachment: %w", err)
		}
		c.AttachmentURL = &obj.URL
		c.AttachmentName = &obj.Name
	}

	if err := s.complaints.Create(ctx, c); err != nil {
		if obj != nil {
			if derr := s.attachments.Discard(ctx, obj.Key); derr != nil {
				s.log.Warn("discard orphaned attachment", zap.String("key", obj.Key), zap.Error(derr))
			}
		}
		return nil, fmt.Errorf("create complaint: %w", err)
	}

	s.notifyAdmins(ctx, c)
	return c, nil
}

func (s *Service) notifyAdmins(ctx context.Context, c *domain.Complaint) {
	if s.notifs == nil {
		return
	}
	ids, err := s.accounts.ListAdminIDs(ctx)
	if err != nil {
		s.log.Warn("list admins for complaint", zap.Int64("complaint_id", c.ID), zap.Error(err))
		return
	}
	if err := s.notifs.NotifyComplaintFiled(ctx, c, ids); err != nil {
		s.log.Warn("notify complaint filed", zap.Int64("complaint_id", c.ID), zap.Error(err))
	}
}

// SetStatus moves a complaint to status on behalf of adminID.
func (s *Service) SetStatus(ctx context.Context, adminID, id int64, status string) (*domain.Complaint, error) {
	target, err := domain.ParseComplaintStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	updates := map[string]any{"status": target}
	switch target {
	case domain.ComplaintOpen:
		return nil, fmt.Errorf("%w: a complaint cannot be reopened", ErrValidation)
	case domain.ComplaintAssigned:
		updates["assigned_to"] = adminID
	case domain.ComplaintResolved:
		updates["resolved_by"] = adminID
		updates["resolved_at"] = s.now()
	}
	return s.transition(ctx, id, target, updates)
}

// Assign hands the complaint to adminID, or to the caller when adminID is nil.
func (s *Service) Assign(ctx context.Context, callerID, id int64, adminID *int64) (*domain.Complaint, error) {
	assignee := callerID
	if adminID != nil && *adminID != callerID {
		acc, err := s.accounts.GetByID(ctx, *adminID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: assignee does not exist", ErrValidation)
			}
			return nil, err
		}
		if acc.Role != domain.RoleAdmin {
			return nil, fmt.Errorf("%w: assignee must be an admin", ErrValidation)
		}
		assignee = acc.ID
	}

	return s.transition(ctx, id, domain.ComplaintAssigned, map[string]any{
		"status":      domain.ComplaintAssigned,
		"assigned_to": assignee,
	})
}

func (s *Service) Resolve(ctx context.Context, adminID, id int64, resolution string) (*domain.Complaint, error) {
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return nil, fmt.Errorf("%w: resolution is required", ErrValidation)
	}

	return s.transition(ctx, id, domain.ComplaintResolved, map[string]any{
		"status":      domain.ComplaintResolved,
		"resolution":  resolution,
		"resolved_by": adminID,
		"resolved_at": s.now(),
	})
}

func (s *Service) transition(ctx context.Context, id int64, target domain.ComplaintStatus, updates map[string]any) (*domain.Complaint, error) {
	c, err := s.complaints.Transition(ctx, id, domain.ComplaintSources(target), updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("transition complaint to %s: %w", target, err)
	}

	if target == domain.ComplaintResolved && s.notifs != nil {
		if err := s.notifs.NotifyComplaintResolved(ctx, c); err != nil {
			s.log.Warn("notify complaint resolved", zap.Int64("complaint_id", c.ID), zap.Error(err))
		}
	}
	return c, nil
}

// List returns complaints for admins; providerID > 0 narrows it to one provider.
func (s *Service) List(ctx context.Context, providerID int64, q ListQuery) (*ListResult, error) {
	f := repository.ComplaintFilter{
		ProviderID: providerID,
		Pagination: repository.Pagination{Page: q.Page, Limit: q.Limit}.Normalize(),
	}
	if q.Status != "" {
		st, err := domain.ParseComplaintStatus(q.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, q.Status)
		}
		f.Status = st
	}

	items, total, err := s.complaints.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ListResult{Complaints: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}
