package domain

import "time"

type ModerationStatus string

const (
	ModerationNone     ModerationStatus = ""
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

type Review struct {
	ID               int64            `json:"id" gorm:"primaryKey"`
	ServiceID        int64            `json:"serviceId" gorm:"not null;index"`
	CustomerID       int64            `json:"customerId" gorm:"not null;index"`
	ProviderID       int64            `json:"providerId" gorm:"not null;index"`
	BookingID        *int64           `json:"bookingId,omitempty" gorm:"index"`
	Rating           int              `json:"rating" gorm:"not null"`
	ReviewText       string           `json:"reviewText" gorm:"type:text"`
	ProviderResponse *string          `json:"providerResponse,omitempty" gorm:"type:text"`
	RespondedAt      *time.Time       `json:"respondedAt,omitempty"`
	ModerationStatus ModerationStatus `json:"moderationStatus,omitempty" gorm:"size:20;index"`
	IsModerated      bool             `json:"isModerated"`
	ModeratedBy      *int64           `json:"moderatedBy,omitempty"`
	ModeratedAt      *time.Time       `json:"moderatedAt,omitempty"`
	RejectionReason  string           `json:"rejectionReason,omitempty" gorm:"type:text"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func (Review) TableName() string { return "reviews" }

// Public returns a copy fit for anonymous readers: an unapproved rebuttal is hidden.
func (r Review) Public() Review {
	if r.ModerationStatus != ModerationApproved {
		r.ProviderResponse = nil
		r.RespondedAt = nil
		r.RejectionReason = ""
	}
	return r
}
