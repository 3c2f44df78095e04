// Package handler implements the HTTP endpoints. A Handler owns its store
// and billing service so the legacy demo group (memory store) and the
// commercial group (PostgreSQL store) are just two instances wired to
// different backends.
package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tukue/CRM-app-saas/internal/apperr"
	"github.com/tukue/CRM-app-saas/internal/billing"
	"github.com/tukue/CRM-app-saas/internal/store"
	"github.com/tukue/CRM-app-saas/pkg/jwtutil"
)

// Handler holds the dependencies shared by all endpoint methods.
type Handler struct {
	store   store.Store
	billing *billing.Service
	jwt     *jwtutil.JWTUtil
}

// New creates a handler over the given store and billing service.
func New(s store.Store, b *billing.Service, jwt *jwtutil.JWTUtil) *Handler {
	return &Handler{store: s, billing: b, jwt: jwt}
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.Validation("invalid id", nil)
	}
	return uint(id), nil
}

var startTime = time.Now()
