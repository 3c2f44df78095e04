package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tukue/CRM-app-saas/internal/apperr"
	"github.com/tukue/CRM-app-saas/internal/billing"
	"github.com/tukue/CRM-app-saas/internal/middleware"
	"github.com/tukue/CRM-app-saas/pkg/logger"
	"go.uber.org/zap"
)

// ListPlans returns the plan table.
func (h *Handler) ListPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, billing.ListPlans())
}

// CreateSubscription activates a plan for the acting organization. An
// unknown plan id is a 400 with the typed failure body.
func (h *Handler) CreateSubscription(c echo.Context) error {
	log := logger.FromEcho(c)
	orgID := middleware.OrgID(c)

	var req struct {
		PlanID string `json:"plan_id" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.billing.CreateSubscription(orgID, req.PlanID)
	if err != nil {
		return err
	}
	if !result.Success {
		return c.JSON(http.StatusBadRequest, result)
	}

	log.Info("Subscription created",
		zap.Uint("organization_id", orgID),
		zap.String("plan_id", req.PlanID),
		zap.String("subscription_id", result.SubscriptionID))

	return c.JSON(http.StatusOK, result)
}

// CancelSubscription cancels the organization's subscription, resetting it
// to the starter plan.
func (h *Handler) CancelSubscription(c echo.Context) error {
	log := logger.FromEcho(c)
	orgID := middleware.OrgID(c)

	result, err := h.billing.CancelSubscription(orgID)
	if err != nil {
		return err
	}
	if !result.Success {
		return c.JSON(http.StatusBadRequest, result)
	}

	log.Info("Subscription cancelled", zap.Uint("organization_id", orgID))
	return c.JSON(http.StatusOK, result)
}

// GetUsage reports usage counts alongside the organization's plan limits.
func (h *Handler) GetUsage(c echo.Context) error {
	orgID := middleware.OrgID(c)

	usage, err := h.billing.GetUsageStats(orgID)
	if err != nil {
		return err
	}

	org, err := h.store.GetOrganizationByID(orgID)
	if err != nil {
		return err
	}

	response := echo.Map{"usage": usage}
	if plan, ok := billing.GetPlan(org.SubscriptionPlan); ok {
		response["plan"] = plan
		response["limits"] = billing.CheckPlanLimits(plan, *usage)
	}
	return c.JSON(http.StatusOK, response)
}
