package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"servicehub/internal/domain"
	"servicehub/internal/repository"
)

type MockChatRepository struct{ mock.Mock }

func (m *MockChatRepository) Bootstrap(ctx context.Context, customerID, providerID int64, bookingID, serviceID *int64) (*domain.Channel, error) {
	args := m.Called(ctx, customerID, providerID, bookingID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Channel), args.Error(1)
}

func (m *MockChatRepository) GetChannel(ctx context.Context, id int64) (*domain.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Channel), args.Error(1)
}

func (m *MockChatRepository) ListChannels(ctx context.Context, userID int64) ([]domain.Channel, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Channel), args.Error(1)
}

func (m *MockChatRepository) ListMessages(ctx context.Context, channelID, beforeID int64, limit int) ([]domain.Message, error) {
	args := m.Called(ctx, channelID, beforeID, limit)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockChatRepository) MarkRead(ctx context.Context, channelID, readerID int64, now time.Time) (int64, error) {
	args := m.Called(ctx, channelID, readerID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatRepository) AppendMessage(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	msg.ID = 77
	return args.Error(0)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type MockBookingRepository struct{ mock.Mock }

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func newTestService() (*Service, *MockChatRepository, *MockAccountRepository, *MockBookingRepository) {
	chats, accounts, bookings := new(MockChatRepository), new(MockAccountRepository), new(MockBookingRepository)
	return NewService(chats, accounts, bookings), chats, accounts, bookings
}

func TestOpen_ProviderSideIsSwapped(t *testing.T) {
	svc, chats, accounts, _ := newTestService()
	ctx := context.Background()

	accounts.On("GetByID", ctx, int64(3)).Return(&domain.Account{ID: 3, Role: domain.RoleCustomer}, nil)
	chats.On("Bootstrap", ctx, int64(3), int64(20), (*int64)(nil), (*int64)(nil)).Return(&domain.Channel{ID: 1, CustomerID: 3, ProviderID: 20}, nil)

	ch, err := svc.Open(ctx, domain.Actor{ID: 20, Role: domain.RoleProvider}, OpenChannelRequest{CounterpartID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(1), ch.ID)
	chats.AssertExpectations(t)
}

func TestOpen_RejectsSameSideCounterpart(t *testing.T) {
	svc, _, accounts, _ := newTestService()
	ctx := context.Background()

	accounts.On("GetByID", ctx, int64(4)).Return(&domain.Account{ID: 4, Role: domain.RoleCustomer}, nil)

	_, err := svc.Open(ctx, domain.Actor{ID: 3, Role: domain.RoleCustomer}, OpenChannelRequest{CounterpartID: 4})
	assert.ErrorIs(t, err, ErrCounterpartNotFound)

	_, err = svc.Open(ctx, domain.Actor{ID: 3, Role: domain.RoleCustomer}, OpenChannelRequest{CounterpartID: 3})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOpen_BookingMustBelongToPair(t *testing.T) {
	svc, chats, accounts, bookings := newTestService()
	ctx := context.Background()

	bookingID := int64(9)
	accounts.On("GetByID", ctx, int64(20)).Return(&domain.Account{ID: 20, Role: domain.RoleProvider}, nil)
	bookings.On("GetByID", ctx, bookingID).Return(&domain.Booking{ID: 9, CustomerID: 3, ProviderID: 21, ServiceID: 5}, nil).Once()

	_, err := svc.Open(ctx, domain.Actor{ID: 3, Role: domain.RoleCustomer}, OpenChannelRequest{CounterpartID: 20, BookingID: &bookingID})
	assert.ErrorIs(t, err, ErrValidation)

	bookings.On("GetByID", ctx, bookingID).Return(&domain.Booking{ID: 9, CustomerID: 3, ProviderID: 20, ServiceID: 5}, nil).Once()
	chats.On("Bootstrap", ctx, int64(3), int64(20), &bookingID, mock.MatchedBy(func(id *int64) bool {
		return id != nil && *id == 5
	})).Return(&domain.Channel{ID: 2}, nil)

	ch, err := svc.Open(ctx, domain.Actor{ID: 3, Role: domain.RoleCustomer}, OpenChannelRequest{CounterpartID: 20, BookingID: &bookingID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), ch.ID)
}

func TestMessages_RequiresMembershipAndMarksRead(t *testing.T) {
	svc, chats, _, _ := newTestService()
	ctx := context.Background()

	chats.On("GetChannel", ctx, int64(1)).Return(&domain.Channel{ID: 1, CustomerID: 3, ProviderID: 20}, nil)

	_, err := svc.Messages(ctx, 99, 1, 0, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	chats.On("ListMessages", ctx, int64(1), int64(0), defaultMessageLimit).Return([]domain.Message{
		{ID: 1, SenderID: 20, ReceiverID: 3, Content: "hi"},
		{ID: 2, SenderID: 3, ReceiverID: 20, Content: "hello"},
	}, nil)
	chats.On("MarkRead", ctx, int64(1), int64(3), mock.Anything).Return(int64(1), nil)

	res, err := svc.Messages(ctx, 3, 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MarkedRead)
	assert.True(t, res.Messages[0].IsRead)
	assert.False(t, res.Messages[1].IsRead)
}

func TestMessages_ClampsOversizedLimit(t *testing.T) {
	svc, chats, _, _ := newTestService()
	ctx := context.Background()

	chats.On("GetChannel", ctx, int64(1)).Return(&domain.Channel{ID: 1, CustomerID: 3, ProviderID: 20}, nil)
	chats.On("ListMessages", ctx, int64(1), int64(0), maxMessageLimit).Return([]domain.Message{}, nil)
	chats.On("MarkRead", ctx, int64(1), int64(3), mock.Anything).Return(int64(0), nil)

	_, err := svc.Messages(ctx, 3, 1, 0, 500)
	require.NoError(t, err)
	chats.AssertCalled(t, "ListMessages", ctx, int64(1), int64(0), maxMessageLimit)
	chats.AssertNotCalled(t, "ListMessages", ctx, int64(1), int64(0), defaultMessageLimit)
}

func TestSend_AddressesCounterpart(t *testing.T) {
	svc, chats, _, _ := newTestService()
	ctx := context.Background()

	chats.On("GetChannel", ctx, int64(1)).Return(&domain.Channel{ID: 1, CustomerID: 3, ProviderID: 20}, nil)
	chats.On("AppendMessage", ctx, mock.MatchedBy(func(m *domain.Message) bool {
		return m.SenderID == 20 && m.ReceiverID == 3 && m.Content == "on my way"
	})).Return(nil)

	msg, err := svc.Send(ctx, 20, 1, "  on my way ")
	require.NoError(t, err)
	assert.Equal(t, int64(77), msg.ID)

	_, err = svc.Send(ctx, 20, 1, "   ")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestSend_UnknownChannel(t *testing.T) {
	svc, chats, _, _ := newTestService()
	ctx := context.Background()

	chats.On("GetChannel", ctx, int64(5)).Return(nil, repository.ErrNotFound)

	_, err := svc.Send(ctx, 20, 5, "hi")
	assert.ErrorIs(t, err, ErrNotFound)
}
