package domain

import (
	"errors"
	"time"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingAccepted   BookingStatus = "accepted"
	BookingInProgress BookingStatus = "in-progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Terminal statuses accept no further lifecycle action.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentRefunded
}

type Booking struct {
	ID            int64         `json:"id" gorm:"primaryKey"`
	Ref           string        `json:"bookingId" gorm:"size:40;uniqueIndex;not null"`
	CustomerID    int64         `json:"customerId" gorm:"not null;index"`
	ProviderID    int64         `json:"providerId" gorm:"index"`
	ServiceID     int64         `json:"serviceId" gorm:"not null;index"`
	Date          string        `json:"date" gorm:"size:10;not null"`
	Time          string        `json:"time" gorm:"size:5;not null"`
	Address       string        `json:"address" gorm:"type:text;not null"`
	Description   string        `json:"description,omitempty" gorm:"type:text"`
	EstimatedCost float64       `json:"estimatedCost"`
	ActualCost    *float64      `json:"actualCost,omitempty"`
	Status        BookingStatus `json:"status" gorm:"size:20;not null;index"`
	PaymentStatus PaymentStatus `json:"paymentStatus" gorm:"size:20;not null"`
	CustomerNote  string        `json:"customerNote,omitempty" gorm:"type:text"`
	ProviderNote  string        `json:"providerNote,omitempty" gorm:"type:text"`
	AcceptedAt    *time.Time    `json:"acceptedAt,omitempty"`
	StartedAt     *time.Time    `json:"startedAt,omitempty"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty"`
	CancelledAt   *time.Time    `json:"cancelledAt,omitempty"`
	CancelledBy   Role          `json:"cancelledBy,omitempty" gorm:"size:20"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (Booking) TableName() string { return "bookings" }

type BookingAction string

const (
	ActionAccept   BookingAction = "accept"
	ActionReject   BookingAction = "reject"
	ActionStart    BookingAction = "start"
	ActionComplete BookingAction = "complete"
	ActionCancel   BookingAction = "cancel"
)

var ErrInvalidTransition = errors.New("invalid booking transition")

// bookingTransitions maps action -> (source status -> target status).
var bookingTransitions = map[BookingAction]map[BookingStatus]BookingStatus{
	ActionAccept:   {BookingPending: BookingAccepted},
	ActionReject:   {BookingPending: BookingCancelled},
	ActionStart:    {BookingAccepted: BookingInProgress},
	ActionComplete: {BookingAccepted: BookingCompleted, BookingInProgress: BookingCompleted},
	ActionCancel:   {BookingPending: BookingCancelled},
}

// NextBookingStatus is the booking transition function.
func NextBookingStatus(from BookingStatus, action BookingAction) (BookingStatus, error) {
	to, ok := bookingTransitions[action][from]
	if !ok {
		return "", ErrInvalidTransition
	}
	return to, nil
}

// BookingSources lists the statuses from which action may fire, in a stable order.
// Terminal statuses never appear.
func BookingSources(action BookingAction) []BookingStatus {
	var out []BookingStatus
	for _, s := range []BookingStatus{BookingPending, BookingAccepted, BookingInProgress, BookingCompleted, BookingCancelled} {
		if s.Terminal() {
			continue
		}
		if _, err := NextBookingStatus(s, action); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// BookingTarget returns the single target status of action.
func BookingTarget(action BookingAction) (BookingStatus, error) {
	from := BookingSources(action)
	if len(from) == 0 {
		return "", ErrInvalidTransition
	}
	return NextBookingStatus(from[0], action)
}

// IsParty reports whether userID is the customer or the provider of b.
func (b *Booking) IsParty(userID int64) bool {
	return b.CustomerID == userID || b.ProviderID == userID
}
