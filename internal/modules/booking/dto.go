package booking

import "servicehub/internal/domain"

type CreateBookingRequest struct {
	ServiceID     int64    `json:"serviceId" binding:"required,gt=0"`
	ProviderID    int64    `json:"providerId" binding:"omitempty,gt=0"`
	Date          string   `json:"date" binding:"required"`
	Time          string   `json:"time" binding:"required"`
	Address       string   `json:"address" binding:"required,max=500"`
	Description   string   `json:"description" binding:"max=2000"`
	EstimatedCost *float64 `json:"estimatedCost" binding:"omitempty,gte=0"`
}

type NoteRequest struct {
	Note string `json:"note" binding:"max=1000"`
}

type CompleteRequest struct {
	ActualCost *float64 `json:"actualCost" binding:"omitempty,gte=0"`
	Note       string   `json:"note" binding:"max=1000"`
}

type PaymentRequest struct {
	PaymentStatus domain.PaymentStatus `json:"paymentStatus" binding:"required,oneof=paid refunded"`
}

type ListQuery struct {
	Status domain.BookingStatus
	Page   int
	Limit  int
}

type ListResult struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}
