package complaint

import "servicehub/internal/domain"

// CreateComplaintForm is bound from a multipart or urlencoded form.
type CreateComplaintForm struct {
	BookingID   int64  `form:"bookingId" validate:"required,gt=0"`
	Description string `form:"description" validate:"required,max=4000"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignRequest struct {
	AdminID *int64 `json:"adminId" binding:"omitempty,gt=0"`
}

type ResolveRequest struct {
	Resolution string `json:"resolution" binding:"required,max=4000"`
}

type ListQuery struct {
	Status string
	Page   int
	Limit  int
}

type ListResult struct {
	Complaints []domain.Complaint
	Total      int64
	Page       int
	Limit      int
}
