package model

import (
	"time"

	"gorm.io/gorm"
)

// Customer status values.
const (
	CustomerActive   = "active"
	CustomerInactive = "inactive"
	CustomerChurned  = "churned"
)

// Customer represents a converted, paying account. Email is unique within an
// organization; a duplicate insert surfaces as a conflict, not an overwrite.
type Customer struct {
	ID                  uint           `json:"id" gorm:"primaryKey"`
	Name                string         `json:"name" gorm:"type:varchar(100);not null"`
	Email               string         `json:"email" gorm:"type:varchar(100);uniqueIndex:idx_customers_org_email"`
	Phone               string         `json:"phone" gorm:"type:varchar(50)"`
	Company             string         `json:"company" gorm:"type:varchar(100)"`
	Value               float64        `json:"value" gorm:"default:0"`
	Status              string         `json:"status" gorm:"type:varchar(20);default:'active'"`
	OrganizationID      uint           `json:"organization_id" gorm:"index;not null;uniqueIndex:idx_customers_org_email"`
	AssignedToID        *uint          `json:"assigned_to_id,omitempty" gorm:"index"`
	ConvertedFromLeadID *uint          `json:"converted_from_lead_id,omitempty" gorm:"index"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`
}
