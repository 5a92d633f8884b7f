package chat

import "servicehub/internal/domain"

type OpenChannelRequest struct {
	CounterpartID int64  `json:"counterpartId" binding:"required,gt=0"`
	BookingID     *int64 `json:"bookingId" binding:"omitempty,gt=0"`
	ServiceID     *int64 `json:"serviceId" binding:"omitempty,gt=0"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}

type MessagesResult struct {
	Messages   []domain.Message `json:"messages"`
	MarkedRead int64            `json:"markedRead"`
}
