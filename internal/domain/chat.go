package domain

import "time"

// Channel is the single conversation between one customer and one provider.
type Channel struct {
	ID            int64      `json:"id" gorm:"primaryKey"`
	CustomerID    int64      `json:"customerId" gorm:"not null;uniqueIndex:idx_channel_pair"`
	ProviderID    int64      `json:"providerId" gorm:"not null;uniqueIndex:idx_channel_pair"`
	BookingID     *int64     `json:"bookingId,omitempty"`
	ServiceID     *int64     `json:"serviceId,omitempty"`
	IsActive      bool       `json:"isActive" gorm:"not null"`
	LastMessage   string     `json:"lastMessage,omitempty" gorm:"type:text"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty" gorm:"index"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	UnreadCount int `json:"unreadCount" gorm:"-"`
}

func (Channel) TableName() string { return "chat_channels" }

// HasMember reports whether userID is one side of the channel.
func (c *Channel) HasMember(userID int64) bool {
	return c.CustomerID == userID || c.ProviderID == userID
}

// Counterpart returns the other side of the channel for userID.
func (c *Channel) Counterpart(userID int64) int64 {
	if c.CustomerID == userID {
		return c.ProviderID
	}
	return c.CustomerID
}

type Message struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	ChannelID  int64      `json:"channelId" gorm:"not null;index"`
	SenderID   int64      `json:"senderId" gorm:"not null"`
	ReceiverID int64      `json:"receiverId" gorm:"not null;index"`
	Content    string     `json:"content" gorm:"type:text;not null"`
	IsRead     bool       `json:"isRead" gorm:"not null;index"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (Message) TableName() string { return "chat_messages" }
