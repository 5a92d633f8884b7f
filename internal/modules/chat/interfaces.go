package chat

import (
	"context"
	"time"

	"servicehub/internal/domain"
)

type ChatRepository interface {
	Bootstrap(ctx context.Context, customerID, providerID int64, bookingID, serviceID *int64) (*domain.Channel, error)
	GetChannel(ctx context.Context, id int64) (*domain.Channel, error)
	ListChannels(ctx context.Context, userID int64) ([]domain.Channel, error)
	ListMessages(ctx context.Context, channelID, beforeID int64, limit int) ([]domain.Message, error)
	MarkRead(ctx context.Context, channelID, readerID int64, now time.Time) (int64, error)
	AppendMessage(ctx context.Context, msg *domain.Message) error
}

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
