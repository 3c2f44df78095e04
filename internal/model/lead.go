package model

import (
	"time"

	"gorm.io/gorm"
)

// Lead status values.
const (
	LeadNew       = "new"
	LeadContacted = "contacted"
	LeadQualified = "qualified"
	LeadConverted = "converted"
	LeadLost      = "lost"
)

// Lead represents an unconverted prospect. Status converted/lost is terminal;
// conversion copies the lead into a customer and stamps the originating id.
type Lead struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Email          string         `json:"email" gorm:"type:varchar(100);index"`
	Phone          string         `json:"phone" gorm:"type:varchar(50)"`
	Company        string         `json:"company" gorm:"type:varchar(100)"`
	Source         string         `json:"source" gorm:"type:varchar(50)"`
	Status         string         `json:"status" gorm:"type:varchar(20);default:'new'"`
	Score          int            `json:"score" gorm:"default:0"` // 0..100
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	AssignedToID   *uint          `json:"assigned_to_id,omitempty" gorm:"index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
