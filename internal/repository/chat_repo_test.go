package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicehub/internal/domain"
)

func TestBootstrap_ReturnsSameChannel(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	b := seedBooking(t, db, f, domain.BookingPending)
	repo := NewChatRepository(db)
	ctx := context.Background()

	first, err := repo.Bootstrap(ctx, f.customer.ID, f.provider.ID, &b.ID, &f.listing.ID)
	require.NoError(t, err)
	second, err := repo.Bootstrap(ctx, f.customer.ID, f.provider.ID, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.BookingID)
	assert.Equal(t, b.ID, *second.BookingID)

	var n int64
	require.NoError(t, db.Model(&domain.Channel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestBootstrap_KeepsExistingTagAndReactivates(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	b1 := seedBooking(t, db, f, domain.BookingPending)
	b2 := seedBooking(t, db, f, domain.BookingPending)
	repo := NewChatRepository(db)
	ctx := context.Background()

	ch, err := repo.Bootstrap(ctx, f.customer.ID, f.provider.ID, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, ch.BookingID)
	require.NoError(t, db.Model(&domain.Channel{}).Where("id = ?", ch.ID).Update("is_active", false).Error)

	ch, err = repo.Bootstrap(ctx, f.customer.ID, f.provider.ID, &b1.ID, nil)
	require.NoError(t, err)
	assert.True(t, ch.IsActive)
	require.NotNil(t, ch.BookingID)
	assert.Equal(t, b1.ID, *ch.BookingID)

	ch, err = repo.Bootstrap(ctx, f.customer.ID, f.provider.ID, &b2.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, b1.ID, *ch.BookingID)
}

func TestMessages_AppendListAndMarkRead(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	repo := NewChatRepository(db)
	ctx := context.Background()

	ch, err := repo.Bootstrap(ctx, f.customer.ID, f.provider.ID, nil, nil)
	require.NoError(t, err)

	for _, text := range []string{"hello", "are you free tuesday?", "ok"} {
		require.NoError(t, repo.AppendMessage(ctx, &domain.Message{
			ChannelID:  ch.ID,
			SenderID:   f.customer.ID,
			ReceiverID: f.provider.ID,
			Content:    text,
		}))
	}

	channels, err := repo.ListChannels(ctx, f.provider.ID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, 3, channels[0].UnreadCount)
	assert.Equal(t, "ok", channels[0].LastMessage)
	assert.NotNil(t, channels[0].LastMessageAt)

	msgs, err := repo.ListMessages(ctx, ch.ID, 0, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "are you free tuesday?", msgs[0].Content)
	assert.Equal(t, "ok", msgs[1].Content)

	older, err := repo.ListMessages(ctx, ch.ID, msgs[0].ID, 10)
	require.NoError(t, err)
	require.Len(t, older, 1)
	assert.Equal(t, "hello", older[0].Content)

	n, err := repo.MarkRead(ctx, ch.ID, f.customer.ID, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.MarkRead(ctx, ch.ID, f.provider.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	channels, err = repo.ListChannels(ctx, f.provider.ID)
	require.NoError(t, err)
	assert.Zero(t, channels[0].UnreadCount)
}
