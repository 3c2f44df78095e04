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

// ListLeads returns the organization's leads.
func (h *Handler) ListLeads(c echo.Context) error {
	leads, err := h.store.ListLeads(middleware.OrgID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leads)
}

// GetLead returns one lead.
func (h *Handler) GetLead(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	lead, err := h.store.GetLeadByID(id, middleware.OrgID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lead)
}

// CreateLead creates a lead in the acting organization.
func (h *Handler) CreateLead(c echo.Context) error {
	log := logger.FromEcho(c)
	orgID := middleware.OrgID(c)

	var req struct {
		Name         string `json:"name" validate:"required"`
		Email        string `json:"email" validate:"omitempty,email"`
		Phone        string `json:"phone"`
		Company      string `json:"company"`
		Source       string `json:"source"`
		Score        int    `json:"score" validate:"gte=0,lte=100"`
		AssignedToID *uint  `json:"assigned_to_id"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lead := &model.Lead{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		Source:         req.Source,
		Status:         model.LeadNew,
		Score:          req.Score,
		OrganizationID: orgID,
		AssignedToID:   req.AssignedToID,
	}
	if err := h.store.CreateLead(lead); err != nil {
		return err
	}

	prometheus.RecordEntityOperation("lead", "create")
	log.Info("Lead created", zap.Uint("lead_id", lead.ID), zap.Uint("organization_id", orgID))
	return c.JSON(http.StatusCreated, lead)
}

// UpdateLead applies a partial update. Status changes are validated against
// the lead state machine; an absent id yields an empty 200 body.
func (h *Handler) UpdateLead(c echo.Context) error {
	orgID := middleware.OrgID(c)

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name         *string `json:"name"`
		Email        *string `json:"email"`
		Phone        *string `json:"phone"`
		Company      *string `json:"company"`
		Source       *string `json:"source"`
		Status       *string `json:"status"`
		Score        *int    `json:"score"`
		AssignedToID *uint   `json:"assigned_to_id"`
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
	if req.Source != nil {
		updates["source"] = *req.Source
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Score != nil {
		if *req.Score < 0 || *req.Score > 100 {
			return apperr.Validation("score must be between 0 and 100", nil)
		}
		updates["score"] = *req.Score
	}
	if req.AssignedToID != nil {
		updates["assigned_to_id"] = req.AssignedToID
	}

	lead, err := h.store.UpdateLead(id, orgID, updates)
	if err != nil {
		return err
	}

	prometheus.RecordEntityOperation("lead", "update")
	return c.JSON(http.StatusOK, lead)
}

// ConvertLead converts a lead into a customer.
func (h *Handler) ConvertLead(c echo.Context) error {
	log := logger.FromEcho(c)
	orgID := middleware.OrgID(c)

	id, err := pathID(c)
	if err != nil {
		return err
	}

	customer, err := h.store.ConvertLeadToCustomer(id, orgID)
	if err != nil {
		return err
	}

	prometheus.LeadConvertedCounter.Inc()
	log.Info("Lead converted",
		zap.Uint("lead_id", id),
		zap.Uint("customer_id", customer.ID),
		zap.Uint("organization_id", orgID))

	return c.JSON(http.StatusCreated, customer)
}
