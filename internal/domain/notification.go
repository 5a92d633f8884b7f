package domain

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotifBookingCreated    NotificationType = "booking_created"
	NotifBookingAccepted   NotificationType = "booking_accepted"
	NotifBookingRejected   NotificationType = "booking_rejected"
	NotifBookingStarted    NotificationType = "booking_started"
	NotifBookingCompleted  NotificationType = "booking_completed"
	NotifBookingCancelled  NotificationType = "booking_cancelled"
	NotifNewReview         NotificationType = "new_review"
	NotifReviewModerated   NotificationType = "review_moderated"
	NotifComplaintFiled    NotificationType = "complaint_filed"
	NotifComplaintResolved NotificationType = "complaint_resolved"
	NotifProviderApproval  NotificationType = "provider_approval"
)

type Notification struct {
	ID        int64            `json:"id" gorm:"primaryKey"`
	UserID    int64            `json:"userId" gorm:"not null;index"`
	Type      NotificationType `json:"type" gorm:"size:50;not null"`
	Title     string           `json:"title" gorm:"size:255;not null"`
	Body      string           `json:"body,omitempty" gorm:"type:text"`
	Data      datatypes.JSON   `json:"data,omitempty"`
	IsRead    bool             `json:"isRead" gorm:"not null;index"`
	ReadAt    *time.Time       `json:"readAt,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (Notification) TableName() string { return "notifications" }
