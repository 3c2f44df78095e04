package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tukue/CRM-app-saas/internal/apperr"
	"github.com/tukue/CRM-app-saas/internal/middleware"
	"github.com/tukue/CRM-app-saas/internal/model"
	"github.com/tukue/CRM-app-saas/prometheus"
)

// ListSalesData returns the organization's monthly aggregates in period
// order, for the trend charts.
func (h *Handler) ListSalesData(c echo.Context) error {
	data, err := h.store.ListSalesData(middleware.OrgID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, data)
}

// UpsertSalesData records (or replaces) one month's aggregate.
func (h *Handler) UpsertSalesData(c echo.Context) error {
	orgID := middleware.OrgID(c)

	var req struct {
		Month        int     `json:"month" validate:"required,gte=1,lte=12"`
		Year         int     `json:"year" validate:"required,gte=2000"`
		Revenue      float64 `json:"revenue" validate:"gte=0"`
		DealsCount   int     `json:"deals_count" validate:"gte=0"`
		NewCustomers int     `json:"new_customers" validate:"gte=0"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	data := &model.SalesData{
		Month:          req.Month,
		Year:           req.Year,
		Revenue:        req.Revenue,
		DealsCount:     req.DealsCount,
		NewCustomers:   req.NewCustomers,
		OrganizationID: orgID,
	}
	if err := h.store.UpsertSalesData(data); err != nil {
		return err
	}

	prometheus.RecordEntityOperation("sales_data", "upsert")
	return c.JSON(http.StatusOK, data)
}
