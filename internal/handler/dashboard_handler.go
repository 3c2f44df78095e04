package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tukue/CRM-app-saas/internal/middleware"
	"github.com/tukue/CRM-app-saas/internal/model"
	"github.com/tukue/CRM-app-saas/internal/store"
	"github.com/tukue/CRM-app-saas/prometheus"
)

// DashboardMetrics is the aggregated view the dashboard charts render.
type DashboardMetrics struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TotalDeals       int64   `json:"total_deals"`
	TotalCustomers   int64   `json:"total_customers"`
	TotalLeads       int64   `json:"total_leads"`
	ConversionRate   float64 `json:"conversion_rate"`
	AverageDealValue float64 `json:"average_deal_value"`
}

// ConversionRate returns converted/total leads as a percentage; zero leads
// yields zero, not a division error.
func ConversionRate(converted, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(converted) / float64(total) * 100
}

// AverageDealValue returns totalValue/count, zero when there are no deals.
func AverageDealValue(totalValue float64, count int64) float64 {
	if count == 0 {
		return 0
	}
	return totalValue / float64(count)
}

// ComputeDashboardMetrics runs the per-organization aggregate queries.
func ComputeDashboardMetrics(s store.Store, orgID uint) (*DashboardMetrics, error) {
	totalRevenue, err := s.SumCustomerValue(orgID)
	if err != nil {
		return nil, err
	}
	totalDeals, err := s.CountDeals(orgID)
	if err != nil {
		return nil, err
	}
	totalCustomers, err := s.CountCustomers(orgID)
	if err != nil {
		return nil, err
	}
	totalLeads, err := s.CountLeads(orgID)
	if err != nil {
		return nil, err
	}
	convertedLeads, err := s.CountLeadsByStatus(orgID, model.LeadConverted)
	if err != nil {
		return nil, err
	}
	totalDealValue, err := s.SumDealValue(orgID)
	if err != nil {
		return nil, err
	}

	return &DashboardMetrics{
		TotalRevenue:     totalRevenue,
		TotalDeals:       totalDeals,
		TotalCustomers:   totalCustomers,
		TotalLeads:       totalLeads,
		ConversionRate:   ConversionRate(convertedLeads, totalLeads),
		AverageDealValue: AverageDealValue(totalDealValue, totalDeals),
	}, nil
}

// GetDashboardMetrics returns the organization's aggregated metrics.
func (h *Handler) GetDashboardMetrics(c echo.Context) error {
	orgID := middleware.OrgID(c)
	defer prometheus.TrackDashboard(orgID)(time.Now())

	metrics, err := ComputeDashboardMetrics(h.store, orgID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, metrics)
}
