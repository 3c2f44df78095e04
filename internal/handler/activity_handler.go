package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tukue/CRM-app-saas/internal/apperr"
	"github.com/tukue/CRM-app-saas/internal/middleware"
	"github.com/tukue/CRM-app-saas/internal/model"
	"github.com/tukue/CRM-app-saas/pkg/logger"
	"github.com/tukue/CRM-app-saas/prometheus"
	"go.uber.org/zap"
)

// ListActivities returns the organization's activities.
func (h *Handler) ListActivities(c echo.Context) error {
	activities, err := h.store.ListActivities(middleware.OrgID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activities)
}

// GetActivity returns one activity.
func (h *Handler) GetActivity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	activity, err := h.store.GetActivityByID(id, middleware.OrgID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activity)
}

// CreateActivity records an interaction. The related reference, when given,
// must name exactly one customer, lead or deal within the organization.
func (h *Handler) CreateActivity(c echo.Context) error {
	log := logger.FromEcho(c)
	orgID := middleware.OrgID(c)

	var req struct {
		Type         string           `json:"type" validate:"required"`
		Subject      string           `json:"subject" validate:"required"`
		Description  string           `json:"description"`
		Related      *model.EntityRef `json:"related"`
		AssignedToID uint             `json:"assigned_to_id" validate:"required"`
		DueDate      *time.Time       `json:"due_date"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if !model.ValidActivityType(req.Type) {
		return apperr.Validation("unknown activity type", map[string]string{"type": req.Type})
	}

	if req.Related != nil {
		if !req.Related.Valid() {
			return apperr.Validation("activity must reference exactly one of customer, lead or deal", nil)
		}
		if err := h.checkRelated(*req.Related, orgID); err != nil {
			return err
		}
	}

	creatorID := req.AssignedToID
	if user, ok := middleware.ActingUser(c); ok {
		creatorID = user.ID
	}

	activity := &model.Activity{
		Type:           req.Type,
		Subject:        req.Subject,
		Description:    req.Description,
		Status:         model.ActivityPending,
		Related:        req.Related,
		OrganizationID: orgID,
		CreatedByID:    creatorID,
		AssignedToID:   req.AssignedToID,
		DueDate:        req.DueDate,
	}
	if err := h.store.CreateActivity(activity); err != nil {
		return err
	}

	prometheus.RecordEntityOperation("activity", "create")
	log.Info("Activity created",
		zap.Uint("activity_id", activity.ID),
		zap.String("type", activity.Type),
		zap.Uint("organization_id", orgID))

	return c.JSON(http.StatusCreated, activity)
}

// UpdateActivity applies a partial update; an absent id yields an empty 200
// body.
func (h *Handler) UpdateActivity(c echo.Context) error {
	orgID := middleware.OrgID(c)

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Subject      *string `json:"subject"`
		Description  *string `json:"description"`
		Status       *string `json:"status"`
		AssignedToID *uint   `json:"assigned_to_id"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request", nil)
	}

	updates := map[string]interface{}{}
	if req.Subject != nil {
		updates["subject"] = *req.Subject
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		switch *req.Status {
		case model.ActivityPending, model.ActivityCompleted, model.ActivityCancelled:
		default:
			return apperr.Validation("unknown activity status", map[string]string{"status": *req.Status})
		}
		updates["status"] = *req.Status
	}
	if req.AssignedToID != nil {
		updates["assigned_to_id"] = *req.AssignedToID
	}

	activity, err := h.store.UpdateActivity(id, orgID, updates)
	if err != nil {
		return err
	}

	prometheus.RecordEntityOperation("activity", "update")
	return c.JSON(http.StatusOK, activity)
}

// checkRelated verifies the referenced entity exists within the organization.
func (h *Handler) checkRelated(ref model.EntityRef, orgID uint) error {
	var err error
	switch ref.Kind {
	case model.RelatedCustomer:
		_, err = h.store.GetCustomerByID(ref.ID, orgID)
	case model.RelatedLead:
		_, err = h.store.GetLeadByID(ref.ID, orgID)
	case model.RelatedDeal:
		_, err = h.store.GetDealByID(ref.ID, orgID)
	}
	if err != nil {
		return apperr.Validation("related "+ref.Kind+" not found", nil)
	}
	return nil
}
