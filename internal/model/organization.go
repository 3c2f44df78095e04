package model

import (
	"time"

	"gorm.io/gorm"
)

// Subscription status values for an organization.
const (
	SubscriptionTrial     = "trial"
	SubscriptionActive    = "active"
	SubscriptionSuspended = "suspended"
	SubscriptionCancelled = "cancelled"
)

// Organization represents a tenant. Every business record in the system
// belongs to exactly one organization and all queries filter by its id.
type Organization struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	Name               string         `json:"name" gorm:"type:varchar(100);not null"`
	Slug               string         `json:"slug" gorm:"type:varchar(100);uniqueIndex"`
	SubscriptionPlan   string         `json:"subscription_plan" gorm:"type:varchar(50);default:'starter'"`
	SubscriptionStatus string         `json:"subscription_status" gorm:"type:varchar(20);default:'trial'"`
	SubscriptionID     string         `json:"subscription_id,omitempty" gorm:"type:varchar(100)"`
	Settings           string         `json:"settings,omitempty" gorm:"type:jsonb"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `json:"-" gorm:"index"`
}
