package model

import (
	"time"

	"gorm.io/gorm"
)

// Activity types.
const (
	ActivityCall    = "call"
	ActivityEmail   = "email"
	ActivityMeeting = "meeting"
	ActivityTask    = "task"
	ActivityNote    = "note"
)

// Activity status values.
const (
	ActivityPending   = "pending"
	ActivityCompleted = "completed"
	ActivityCancelled = "cancelled"
)

// Related entity kinds for an activity.
const (
	RelatedCustomer = "customer"
	RelatedLead     = "lead"
	RelatedDeal     = "deal"
)

// EntityRef is a tagged reference to the single entity an activity is
// attached to. Kind is one of customer/lead/deal; exactly one target must be
// set, which the tagged form enforces where three nullable columns could not.
type EntityRef struct {
	Kind string `json:"kind" gorm:"column:related_type;type:varchar(20)"`
	ID   uint   `json:"id" gorm:"column:related_id;index"`
}

// Valid reports whether the reference names a known kind with a non-zero id.
func (r EntityRef) Valid() bool {
	if r.ID == 0 {
		return false
	}
	switch r.Kind {
	case RelatedCustomer, RelatedLead, RelatedDeal:
		return true
	}
	return false
}

// IsZero reports whether the reference is unset.
func (r EntityRef) IsZero() bool {
	return r.Kind == "" && r.ID == 0
}

// Activity is a typed interaction record. It always has a creator and an
// assignee; Related optionally points at exactly one customer, lead or deal.
type Activity struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Type           string         `json:"type" gorm:"type:varchar(20);not null"`
	Subject        string         `json:"subject" gorm:"type:varchar(200);not null"`
	Description    string         `json:"description" gorm:"type:text"`
	Status         string         `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Related        *EntityRef     `json:"related,omitempty" gorm:"embedded"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	CreatedByID    uint           `json:"created_by_id" gorm:"index;not null"`
	AssignedToID   uint           `json:"assigned_to_id" gorm:"index;not null"`
	DueDate        *time.Time     `json:"due_date,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// ValidActivityType reports whether t is a known activity type.
func ValidActivityType(t string) bool {
	switch t {
	case ActivityCall, ActivityEmail, ActivityMeeting, ActivityTask, ActivityNote:
		return true
	}
	return false
}
