package complaint

import (
	"context"
	"mime/multipart"

	"servicehub/internal/domain"
	"servicehub/internal/repository"
	"servicehub/internal/storage"
)

type ComplaintRepository interface {
	Create(ctx context.Context, c *domain.Complaint) error
	GetByID(ctx context.Context, id int64) (*domain.Complaint, error)
	Transition(ctx context.Context, id int64, from []domain.ComplaintStatus, updates map[string]any) (*domain.Complaint, error)
	List(ctx context.Context, f repository.ComplaintFilter) ([]domain.Complaint, int64, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	ListAdminIDs(ctx context.Context) ([]int64, error)
}

// AttachmentStore is satisfied by *storage.Uploader.
type AttachmentStore interface {
	Save(ctx context.Context, prefix string, fh *multipart.FileHeader) (*storage.Object, error)
	Discard(ctx context.Context, key string) error
}

type NotificationSender interface {
	NotifyComplaintFiled(ctx context.Context, c *domain.Complaint, adminIDs []int64) error
	NotifyComplaintResolved(ctx context.Context, c *domain.Complaint) error
}
