package model

import (
	"time"

	"gorm.io/gorm"
)

// SalesData is a periodic aggregate used by the dashboard trend charts.
// One row per organization per (year, month).
type SalesData struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Month          int            `json:"month" gorm:"not null;uniqueIndex:idx_sales_data_period"` // 1..12
	Year           int            `json:"year" gorm:"not null;uniqueIndex:idx_sales_data_period"`
	Revenue        float64        `json:"revenue" gorm:"default:0"`
	DealsCount     int            `json:"deals_count" gorm:"default:0"`
	NewCustomers   int            `json:"new_customers" gorm:"default:0"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null;uniqueIndex:idx_sales_data_period"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
