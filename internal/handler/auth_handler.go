package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/tukue/CRM-app-saas/internal/apperr"
	"github.com/tukue/CRM-app-saas/internal/middleware"
	"github.com/tukue/CRM-app-saas/internal/model"
	"github.com/tukue/CRM-app-saas/pkg/logger"
	"github.com/tukue/CRM-app-saas/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates an organization and its first admin user at signup.
func (h *Handler) Register(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		OrganizationName string `json:"organization_name" validate:"required"`
		Slug             string `json:"slug" validate:"required"`
		Email            string `json:"email" validate:"required,email"`
		Password         string `json:"password" validate:"required,min=8"`
		FirstName        string `json:"first_name"`
		LastName         string `json:"last_name"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}

	org := &model.Organization{
		Name:               req.OrganizationName,
		Slug:               strings.ToLower(req.Slug),
		SubscriptionPlan:   "starter",
		SubscriptionStatus: model.SubscriptionTrial,
	}
	user := &model.User{
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      model.RoleAdmin,
		Active:    true,
	}
	if err := h.store.CreateOrganizationWithAdmin(org, user); err != nil {
		return err
	}

	log.Info("Organization registered",
		zap.String("slug", org.Slug),
		zap.Uint("organization_id", org.ID),
		zap.Uint("admin_user_id", user.ID))

	return c.JSON(http.StatusCreated, echo.Map{
		"organization": org,
		"user":         user,
	})
}

// Login verifies credentials and issues a JWT carrying the user's
// organization and role.
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.store.GetUserByEmail(req.Email)
	if err != nil {
		log.Warn("Login for unknown user", zap.String("email", req.Email))
		return apperr.Unauthenticated("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		return apperr.Unauthenticated("invalid credentials")
	}

	if !user.Active {
		log.Warn("Login for deactivated user", zap.String("email", req.Email))
		return apperr.Unauthenticated("account is deactivated")
	}

	token, err := h.jwt.GenerateToken(user.Email, user.ID, user.OrganizationID, user.Role)
	if err != nil {
		return apperr.Internal(err)
	}

	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.Uint("organization_id", user.OrganizationID),
		zap.String("role", user.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c echo.Context) error {
	user, ok := middleware.ActingUser(c)
	if !ok {
		return apperr.Unauthenticated("authentication required")
	}
	return c.JSON(http.StatusOK, user)
}
