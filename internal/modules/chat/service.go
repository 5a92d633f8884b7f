package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"servicehub/internal/domain"
	"servicehub/internal/repository"
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 200
)

type Service struct {
	chats    ChatRepository
	accounts AccountRepository
	bookings BookingRepository
	now      func() time.Time
}

func NewService(chats ChatRepository, accounts AccountRepository, bookings BookingRepository) *Service {
	return &Service{
		chats:    chats,
		accounts: accounts,
		bookings: bookings,
		now:      time.Now,
	}
}

// Open returns the caller's channel with the counterpart, creating it if needed.
// The caller's role decides which side of the pair they are.
func (s *Service) Open(ctx context.Context, actor domain.Actor, req OpenChannelRequest) (*domain.Channel, error) {
	if req.CounterpartID == actor.ID {
		return nil, fmt.Errorf("%w: cannot open a channel with yourself", ErrValidation)
	}

	var counterpartRole domain.Role
	switch actor.Role {
	case domain.RoleCustomer:
		counterpartRole = domain.RoleProvider
	case domain.RoleProvider:
		counterpartRole = domain.RoleCustomer
	default:
		return nil, fmt.Errorf("%w: only customers and providers have channels", ErrValidation)
	}

	counterpart, err := s.accounts.GetByID(ctx, req.CounterpartID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCounterpartNotFound
		}
		return nil, err
	}
	if counterpart.Role != counterpartRole {
		return nil, ErrCounterpartNotFound
	}

	customerID, providerID := actor.ID, counterpart.ID
	if actor.Role == domain.RoleProvider {
		customerID, providerID = counterpart.ID, actor.ID
	}

	if req.BookingID != nil {
		b, err := s.bookings.GetByID(ctx, *req.BookingID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if b == nil || b.CustomerID != customerID || b.ProviderID != providerID {
			return nil, fmt.Errorf("%w: booking does not belong to this pair", ErrValidation)
		}
		if req.ServiceID == nil {
			serviceID := b.ServiceID
			req.ServiceID = &serviceID
		}
	}

	return s.chats.Bootstrap(ctx, customerID, providerID, req.BookingID, req.ServiceID)
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Channel, error) {
	return s.chats.ListChannels(ctx, userID)
}

// Messages returns a page of the channel history and marks the caller's unread messages as read.
func (s *Service) Messages(ctx context.Context, userID, channelID, beforeID int64, limit int) (*MessagesResult, error) {
	if _, err := s.member(ctx, userID, channelID); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = defaultMessageLimit
	case limit > maxMessageLimit:
		limit = maxMessageLimit
	}

	msgs, err := s.chats.ListMessages(ctx, channelID, beforeID, limit)
	if err != nil {
		return nil, err
	}

	marked, err := s.chats.MarkRead(ctx, channelID, userID, s.now())
	if err != nil {
		return nil, err
	}
	for i := range msgs {
		if msgs[i].ReceiverID == userID && !msgs[i].IsRead {
			now := s.now()
			msgs[i].IsRead = true
			msgs[i].ReadAt = &now
		}
	}

	return &MessagesResult{Messages: msgs, MarkedRead: marked}, nil
}

func (s *Service) Send(ctx context.Context, userID, channelID int64, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	ch, err := s.member(ctx, userID, channelID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ChannelID:  ch.ID,
		SenderID:   userID,
		ReceiverID: ch.Counterpart(userID),
		Content:    content,
		CreatedAt:  s.now(),
	}
	if err := s.chats.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *Service) member(ctx context.Context, userID, channelID int64) (*domain.Channel, error) {
	ch, err := s.chats.GetChannel(ctx, channelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !ch.HasMember(userID) {
		return nil, ErrNotFound
	}
	return ch, nil
}
