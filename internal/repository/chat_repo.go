package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"servicehub/internal/domain"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Bootstrap returns the channel for (customerID, providerID), creating it if
// absent. The insert relies on the unique pair index, so concurrent first
// contacts converge on one row. An inactive channel is reactivated and empty
// booking/service tags are filled.
func (r *ChatRepository) Bootstrap(ctx context.Context, customerID, providerID int64, bookingID, serviceID *int64) (*domain.Channel, error) {
	var ch domain.Channel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		candidate := domain.Channel{
			CustomerID: customerID,
			ProviderID: providerID,
			BookingID:  bookingID,
			ServiceID:  serviceID,
			IsActive:   true,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}, {Name: "provider_id"}},
			DoNothing: true,
		}).Create(&candidate).Error
		if err != nil {
			return err
		}

		if err := tx.Where("customer_id = ? AND provider_id = ?", customerID, providerID).First(&ch).Error; err != nil {
			return notFound(err)
		}

		updates := map[string]any{}
		if !ch.IsActive {
			updates["is_active"] = true
		}
		if ch.BookingID == nil && bookingID != nil {
			updates["booking_id"] = *bookingID
		}
		if ch.ServiceID == nil && serviceID != nil {
			updates["service_id"] = *serviceID
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&domain.Channel{}).Where("id = ?", ch.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&ch, ch.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *ChatRepository) GetChannel(ctx context.Context, id int64) (*domain.Channel, error) {
	var ch domain.Channel
	if err := r.db.WithContext(ctx).First(&ch, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ch, nil
}

// ListChannels returns userID's channels, most recent activity first, with unread counts.
func (r *ChatRepository) ListChannels(ctx context.Context, userID int64) ([]domain.Channel, error) {
	db := r.db.WithContext(ctx)

	var channels []domain.Channel
	err := db.
		Where("customer_id = ? OR provider_id = ?", userID, userID).
		Order("COALESCE(last_message_at, created_at) DESC, id DESC").
		Find(&channels).Error
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return channels, nil
	}

	ids := make([]int64, 0, len(channels))
	for _, ch := range channels {
		ids = append(ids, ch.ID)
	}

	type unreadRow struct {
		ChannelID int64
		Count     int
	}
	var rows []unreadRow
	err = db.Model(&domain.Message{}).
		Select("channel_id, COUNT(*) AS count").
		Where("channel_id IN ? AND receiver_id = ? AND is_read = ?", ids, userID, false).
		Group("channel_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	unread := make(map[int64]int, len(rows))
	for _, row := range rows {
		unread[row.ChannelID] = row.Count
	}
	for i := range channels {
		channels[i].UnreadCount = unread[channels[i].ID]
	}
	return channels, nil
}

// ListMessages returns up to limit messages older than beforeID (0 = latest), oldest first.
func (r *ChatRepository) ListMessages(ctx context.Context, channelID, beforeID int64, limit int) ([]domain.Message, error) {
	q := r.db.WithContext(ctx).Where("channel_id = ?", channelID)
	if beforeID > 0 {
		q = q.Where("id < ?", beforeID)
	}

	var msgs []domain.Message
	if err := q.Order("id DESC").Limit(limit).Find(&msgs).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// MarkRead flags every unread message in the channel addressed to readerID.
func (r *ChatRepository) MarkRead(ctx context.Context, channelID, readerID int64, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("channel_id = ? AND receiver_id = ? AND is_read = ?", channelID, readerID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": now,
		})
	return res.RowsAffected, res.Error
}

// AppendMessage stores msg and updates the channel preview in one transaction.
func (r *ChatRepository) AppendMessage(ctx context.Context, msg *domain.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Channel{}).
			Where("id = ?", msg.ChannelID).
			Updates(map[string]any{
				"last_message":    preview(msg.Content),
				"last_message_at": msg.CreatedAt,
				"is_active":       true,
			}).Error
	})
}

const previewRunes = 200

func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewRunes {
		return s
	}
	return string(runes[:previewRunes])
}
