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
	"golang.org/x/crypto/bcrypt"
)

// ListUsers returns the organization's users.
func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.store.ListUsers(middleware.OrgID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser adds a user to the acting organization.
func (h *Handler) CreateUser(c echo.Context) error {
	log := logger.FromEcho(c)
	orgID := middleware.OrgID(c)

	var req struct {
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=8"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if !model.ValidRole(role) {
		return apperr.Validation("unknown role", map[string]string{"role": role})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}

	user := &model.User{
		Email:          req.Email,
		Password:       string(hashed),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           role,
		OrganizationID: orgID,
		Active:         true,
	}
	if err := h.store.CreateUser(user); err != nil {
		return err
	}

	prometheus.RecordEntityOperation("user", "create")
	if count, err := h.store.CountUsers(orgID); err == nil {
		prometheus.UpdateUsersPerOrganization(orgID, int(count))
	}
	log.Info("User created",
		zap.Uint("user_id", user.ID),
		zap.Uint("organization_id", orgID),
		zap.String("role", user.Role))

	return c.JSON(http.StatusCreated, user)
}

// GetUser returns one user in the acting organization.
func (h *Handler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.store.GetUserByID(id, middleware.OrgID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUserRole changes a user's role. Requires the manage_users
// capability, enforced by route middleware.
func (h *Handler) UpdateUserRole(c echo.Context) error {
	log := logger.FromEcho(c)
	orgID := middleware.OrgID(c)

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Role string `json:"role" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !model.ValidRole(req.Role) {
		return apperr.Validation("unknown role", map[string]string{"role": req.Role})
	}

	user, err := h.store.UpdateUser(id, orgID, map[string]interface{}{"role": req.Role})
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user")
	}

	prometheus.RecordEntityOperation("user", "role_change")
	log.Info("User role changed",
		zap.Uint("user_id", id),
		zap.String("role", req.Role),
		zap.Uint("organization_id", orgID))

	return c.JSON(http.StatusOK, user)
}
