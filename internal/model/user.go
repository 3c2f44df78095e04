package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles within an organization.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleSalesRep = "sales_rep"
	RoleUser     = "user"
)

// User represents a member of an organization. OrganizationID is immutable
// once set; membership is in exactly one organization.
type User struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Email          string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password       string         `json:"-" gorm:"type:varchar(255)"`
	FirstName      string         `json:"first_name" gorm:"type:varchar(100)"`
	LastName       string         `json:"last_name" gorm:"type:varchar(100)"`
	Role           string         `json:"role" gorm:"type:varchar(50);not null;default:'user'"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	Active         bool           `json:"active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// ValidRole reports whether role is one of the fixed role enumeration.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleSalesRep, RoleUser:
		return true
	}
	return false
}
