package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tukue/CRM-app-saas/internal/apperr"
	"github.com/tukue/CRM-app-saas/internal/middleware"
	"github.com/tukue/CRM-app-saas/internal/model"
	"github.com/tukue/CRM-app-saas/pkg/logger"
	"github.com/tukue/CRM-app-saas/prometheus"
	"go.uber.org/zap"
)

// ListCustomers returns the organization's customers.
func (h *Handler) ListCustomers(c echo.Context) error {
	customers, err := h.store.ListCustomers(middleware.OrgID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// GetCustomer returns one customer.
func (h *Handler) GetCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	customer, err := h.store.GetCustomerByID(id, middleware.OrgID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// CreateCustomer creates a customer. A duplicate email within the
// organization is rejected with a conflict.
func (h *Handler) CreateCustomer(c echo.Context) error {
	log := logger.FromEcho(c)
	orgID := middleware.OrgID(c)

	var req struct {
		Name         string  `json:"name" validate:"required"`
		Email        string  `json:"email" validate:"required,email"`
		Phone        string  `json:"phone"`
		Company      string  `json:"company"`
		Value        float64 `json:"value" validate:"gte=0"`
		AssignedToID *uint   `json:"assigned_to_id"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer := &model.Customer{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		Value:          req.Value,
		Status:         model.CustomerActive,
		OrganizationID: orgID,
		AssignedToID:   req.AssignedToID,
	}
	if err := h.store.CreateCustomer(customer); err != nil {
		return err
	}

	prometheus.RecordEntityOperation("customer", "create")
	log.Info("Customer created", zap.Uint("customer_id", customer.ID), zap.Uint("organization_id", orgID))
	return c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer applies a partial update; an absent id yields an empty 200
// body rather than an error.
func (h *Handler) UpdateCustomer(c echo.Context) error {
	orgID := middleware.OrgID(c)

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name         *string  `json:"name"`
		Email        *string  `json:"email"`
		Phone        *string  `json:"phone"`
		Company      *string  `json:"company"`
		Status       *string  `json:"status"`
		Value        *float64 `json:"value"`
		AssignedToID *uint    `json:"assigned_to_id"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request", nil)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Company != nil {
		updates["company"] = *req.Company
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Value != nil {
		updates["value"] = *req.Value
	}
	if req.AssignedToID != nil {
		updates["assigned_to_id"] = req.AssignedToID
	}

	customer, err := h.store.UpdateCustomer(id, orgID, updates)
	if err != nil {
		return err
	}

	prometheus.RecordEntityOperation("customer", "update")
	return c.JSON(http.StatusOK, customer)
}
