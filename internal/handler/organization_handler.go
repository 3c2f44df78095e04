package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tukue/CRM-app-saas/internal/apperr"
	"github.com/tukue/CRM-app-saas/internal/middleware"
	"github.com/tukue/CRM-app-saas/pkg/logger"
	"go.uber.org/zap"
)

// GetOrganization returns the acting organization.
func (h *Handler) GetOrganization(c echo.Context) error {
	org, err := h.store.GetOrganizationByID(middleware.OrgID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, org)
}

// UpdateOrganization updates the organization's name and settings. Plan and
// subscription status change only through the billing endpoints.
func (h *Handler) UpdateOrganization(c echo.Context) error {
	log := logger.FromEcho(c)
	orgID := middleware.OrgID(c)

	var req struct {
		Name     *string `json:"name"`
		Settings *string `json:"settings"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request", nil)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Settings != nil {
		updates["settings"] = *req.Settings
	}
	if len(updates) == 0 {
		return apperr.Validation("no updatable fields provided", nil)
	}

	org, err := h.store.UpdateOrganization(orgID, updates)
	if err != nil {
		return err
	}
	if org == nil {
		return apperr.NotFound("organization")
	}

	log.Info("Organization updated", zap.Uint("organization_id", orgID))
	return c.JSON(http.StatusOK, org)
}
