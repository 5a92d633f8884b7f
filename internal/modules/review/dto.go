package review

type CreateReviewRequest struct {
	BookingID  *int64 `json:"bookingId" binding:"omitempty,gt=0"`
	ServiceID  *int64 `json:"serviceId" binding:"omitempty,gt=0"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	ReviewText string `json:"reviewText" binding:"max=4000"`
}

type RespondRequest struct {
	Response string `json:"response" binding:"required,max=4000"`
}

type ModerateRequest struct {
	Action          string `json:"action" binding:"required,oneof=approve reject"`
	RejectionReason string `json:"rejectionReason" binding:"max=1000"`
}
