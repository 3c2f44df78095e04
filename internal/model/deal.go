package model

import (
	"time"

	"gorm.io/gorm"
)

// Deal stage values, in pipeline order.
const (
	DealProspecting   = "prospecting"
	DealQualification = "qualification"
	DealProposal      = "proposal"
	DealNegotiation   = "negotiation"
	DealClosedWon     = "closed_won"
	DealClosedLost    = "closed_lost"
)

// Deal represents a sales opportunity moving through the pipeline.
// closed_won and closed_lost are terminal stages.
type Deal struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Title          string         `json:"title" gorm:"type:varchar(100);not null"`
	Value          float64        `json:"value" gorm:"default:0"`
	Stage          string         `json:"stage" gorm:"type:varchar(20);default:'prospecting'"`
	Probability    int            `json:"probability" gorm:"default:0"` // 0..100
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	CustomerID     *uint          `json:"customer_id,omitempty" gorm:"index"`
	AssignedToID   *uint          `json:"assigned_to_id,omitempty" gorm:"index"`
	ExpectedClose  *time.Time     `json:"expected_close,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
