package catalog

import "servicehub/internal/domain"

type CreateServiceRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description string  `json:"description" binding:"max=4000"`
	Category    string  `json:"category" binding:"required,max=100"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

// UpdateServiceRequest carries only the fields to change.
type UpdateServiceRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=4000"`
	Category    *string  `json:"category" binding:"omitempty,min=1,max=100"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	IsActive    *bool    `json:"isActive"`
}

type ListQuery struct {
	Category   string
	Query      string
	ProviderID int64
	Page       int
	Limit      int
}

type ListResult struct {
	Services []domain.ServiceListing
	Total    int64
	Page     int
	Limit    int
}
