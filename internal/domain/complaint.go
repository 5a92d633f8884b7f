package domain

import (
	"errors"
	"time"
)

type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "open"
	ComplaintAssigned   ComplaintStatus = "assigned"
	ComplaintInProgress ComplaintStatus = "in_progress"
	ComplaintResolved   ComplaintStatus = "resolved"
	ComplaintClosed     ComplaintStatus = "closed"
)

var ErrUnknownComplaintStatus = errors.New("unknown complaint status")

func ParseComplaintStatus(s string) (ComplaintStatus, error) {
	switch st := ComplaintStatus(s); st {
	case ComplaintOpen, ComplaintAssigned, ComplaintInProgress, ComplaintResolved, ComplaintClosed:
		return st, nil
	}
	return "", ErrUnknownComplaintStatus
}

var complaintTransitions = map[ComplaintStatus][]ComplaintStatus{
	ComplaintOpen:       {ComplaintAssigned, ComplaintClosed},
	ComplaintAssigned:   {ComplaintAssigned, ComplaintInProgress, ComplaintResolved, ComplaintClosed},
	ComplaintInProgress: {ComplaintResolved, ComplaintClosed},
	ComplaintResolved:   {ComplaintClosed},
	ComplaintClosed:     nil,
}

func CanTransitionComplaint(from, to ComplaintStatus) bool {
	for _, s := range complaintTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ComplaintSources returns every status that may move to target.
func ComplaintSources(target ComplaintStatus) []ComplaintStatus {
	var out []ComplaintStatus
	for _, from := range []ComplaintStatus{ComplaintOpen, ComplaintAssigned, ComplaintInProgress, ComplaintResolved, ComplaintClosed} {
		if CanTransitionComplaint(from, target) {
			out = append(out, from)
		}
	}
	return out
}

type Complaint struct {
	ID             int64           `json:"id" gorm:"primaryKey"`
	Ref            string          `json:"complaintId" gorm:"size:40;uniqueIndex;not null"`
	BookingID      int64           `json:"bookingId" gorm:"not null;index"`
	ProviderID     int64           `json:"providerId" gorm:"not null;index"`
	CustomerID     int64           `json:"customerId" gorm:"not null"`
	Description    string          `json:"description" gorm:"type:text;not null"`
	AttachmentURL  *string         `json:"attachmentUrl,omitempty"`
	AttachmentName *string         `json:"attachmentName,omitempty"`
	Status         ComplaintStatus `json:"status" gorm:"size:20;not null;index"`
	AssignedTo     *int64          `json:"assignedTo,omitempty"`
	Resolution     string          `json:"resolution,omitempty" gorm:"type:text"`
	ResolvedBy     *int64          `json:"resolvedBy,omitempty"`
	ResolvedAt     *time.Time      `json:"resolvedAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (Complaint) TableName() string { return "complaints" }
