package domain

import "time"

type ServiceListing struct {
	ID                int64     `json:"id" gorm:"primaryKey"`
	ProviderID        int64     `json:"providerId" gorm:"not null;index"`
	Title             string    `json:"title" gorm:"size:255;not null"`
	Description       string    `json:"description,omitempty" gorm:"type:text"`
	Category          string    `json:"category" gorm:"size:100;index"`
	Price             float64   `json:"price" gorm:"not null"`
	IsActive          bool      `json:"isActive" gorm:"not null;index"`
	TotalBookings     int       `json:"totalBookings" gorm:"not null;default:0"`
	CompletedBookings int       `json:"completedBookings" gorm:"not null;default:0"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (ServiceListing) TableName() string { return "service_listings" }
