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

// ListDeals returns the organization's deals.
func (h *Handler) ListDeals(c echo.Context) error {
	deals, err := h.store.ListDeals(middleware.OrgID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deals)
}

// GetDeal returns one deal.
func (h *Handler) GetDeal(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	deal, err := h.store.GetDealByID(id, middleware.OrgID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deal)
}

// CreateDeal creates a deal in the prospecting stage unless another open
// stage is given.
func (h *Handler) CreateDeal(c echo.Context) error {
	log := logger.FromEcho(c)
	orgID := middleware.OrgID(c)

	var req struct {
		Title        string  `json:"title" validate:"required"`
		Value        float64 `json:"value" validate:"gte=0"`
		Stage        string  `json:"stage"`
		Probability  int     `json:"probability" validate:"gte=0,lte=100"`
		CustomerID   *uint   `json:"customer_id"`
		AssignedToID *uint   `json:"assigned_to_id"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	stage := req.Stage
	if stage == "" {
		stage = model.DealProspecting
	}

	if req.CustomerID != nil {
		if _, err := h.store.GetCustomerByID(*req.CustomerID, orgID); err != nil {
			return apperr.Validation("linked customer not found", nil)
		}
	}

	deal := &model.Deal{
		Title:          req.Title,
		Value:          req.Value,
		Stage:          stage,
		Probability:    req.Probability,
		OrganizationID: orgID,
		CustomerID:     req.CustomerID,
		AssignedToID:   req.AssignedToID,
	}
	if err := h.store.CreateDeal(deal); err != nil {
		return err
	}

	prometheus.RecordEntityOperation("deal", "create")
	log.Info("Deal created", zap.Uint("deal_id", deal.ID), zap.Uint("organization_id", orgID))
	return c.JSON(http.StatusCreated, deal)
}

// UpdateDeal applies a partial update. Stage changes are validated against
// the pipeline ordering; closed deals cannot move.
func (h *Handler) UpdateDeal(c echo.Context) error {
	orgID := middleware.OrgID(c)

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Title        *string  `json:"title"`
		Value        *float64 `json:"value"`
		Stage        *string  `json:"stage"`
		Probability  *int     `json:"probability"`
		CustomerID   *uint    `json:"customer_id"`
		AssignedToID *uint    `json:"assigned_to_id"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request", nil)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Value != nil {
		updates["value"] = *req.Value
	}
	if req.Stage != nil {
		updates["stage"] = *req.Stage
	}
	if req.Probability != nil {
		if *req.Probability < 0 || *req.Probability > 100 {
			return apperr.Validation("probability must be between 0 and 100", nil)
		}
		updates["probability"] = *req.Probability
	}
	if req.CustomerID != nil {
		updates["customer_id"] = req.CustomerID
	}
	if req.AssignedToID != nil {
		updates["assigned_to_id"] = req.AssignedToID
	}

	deal, err := h.store.UpdateDeal(id, orgID, updates)
	if err != nil {
		return err
	}

	prometheus.RecordEntityOperation("deal", "update")
	return c.JSON(http.StatusOK, deal)
}
