package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountInactive  AccountStatus = "inactive"
	AccountPending   AccountStatus = "pending"
	AccountSuspended AccountStatus = "suspended"
	AccountRejected  AccountStatus = "rejected"
)

// ApprovalStatus is only set for providers.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type Account struct {
	ID             int64          `json:"id" gorm:"primaryKey"`
	Email          string         `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash   string         `json:"-" gorm:"not null"`
	Name           string         `json:"name" gorm:"size:255"`
	Phone          string         `json:"phone,omitempty" gorm:"size:50"`
	Role           Role           `json:"role" gorm:"size:20;not null;index"`
	Status         AccountStatus  `json:"status" gorm:"size:20;not null"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus,omitempty" gorm:"size:20"`
	ApprovalNote   string         `json:"approvalNote,omitempty" gorm:"type:text"`
	AverageRating  float64        `json:"averageRating"`
	TotalReviews   int            `json:"totalReviews"`
	TotalBookings  int            `json:"totalBookings"`
	TotalEarnings  float64        `json:"totalEarnings"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (Account) TableName() string { return "accounts" }

// IsApproved is derived from ApprovalStatus and never stored.
func (a *Account) IsApproved() bool {
	return a.ApprovalStatus == ApprovalApproved
}

// CanOperate reports whether the account may act in its role.
func (a *Account) CanOperate() bool {
	if a.Status != AccountActive {
		return false
	}
	if a.Role == RoleProvider {
		return a.IsApproved()
	}
	return true
}

// AccountView is the API shape of an account.
type AccountView struct {
	Account
	IsApproved bool `json:"isApproved"`
}

func (a *Account) View() AccountView {
	return AccountView{Account: *a, IsApproved: a.IsApproved()}
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   int64
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
