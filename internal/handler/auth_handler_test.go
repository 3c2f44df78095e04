package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tukue/CRM-app-saas/internal/billing"
	"github.com/tukue/CRM-app-saas/internal/middleware"
	"github.com/tukue/CRM-app-saas/internal/model"
	"github.com/tukue/CRM-app-saas/internal/store"
	"github.com/tukue/CRM-app-saas/pkg/jwtutil"
)

// newCommercialServer wires the token-protected routes against an empty
// memory store, mirroring the server's commercial group.
func newCommercialServer(t *testing.T) (*echo.Echo, *store.MemoryStore) {
	t.Helper()

	s := store.NewMemoryStore()
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})
	h := New(s, billing.NewService(s), jwt)

	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(true)

	e.POST("/api/commercial/register", h.Register)
	e.POST("/api/commercial/login", h.Login)

	g := e.Group("/api/commercial", middleware.JWTAuth(jwt, s))
	g.GET("/me", h.Me)
	g.GET("/users", h.ListUsers)
	g.POST("/users", h.CreateUser, middleware.RequireCapability(model.CapManageUsers))

	return e, s
}

func register(t *testing.T, e *echo.Echo, slug, email string) {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/commercial/register",
		`{"organization_name":"Test Org","slug":"`+slug+`","email":"`+email+`","password":"s3cret-pass","first_name":"Pat"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func login(t *testing.T, e *echo.Echo, email, password string) (string, int) {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/commercial/login",
		`{"email":"`+email+`","password":"`+password+`"}`)
	if rec.Code != http.StatusOK {
		return "", rec.Code
	}
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Token, rec.Code
}

func authedJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterAndLogin(t *testing.T) {
	e, _ := newCommercialServer(t)

	register(t, e, "acme", "owner@acme.example")

	token, code := login(t, e, "owner@acme.example", "s3cret-pass")
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, token)

	rec := authedJSON(e, http.MethodGet, "/api/commercial/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var me model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "owner@acme.example", me.Email)
	assert.Equal(t, model.RoleAdmin, me.Role)
	// password hashes never leave the API
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterDuplicateSlug(t *testing.T) {
	e, _ := newCommercialServer(t)

	register(t, e, "acme", "one@acme.example")
	rec := doJSON(e, http.MethodPost, "/api/commercial/register",
		`{"organization_name":"Other","slug":"acme","email":"two@acme.example","password":"s3cret-pass"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterDuplicateEmailLeavesNoOrganization(t *testing.T) {
	e, s := newCommercialServer(t)

	register(t, e, "acme", "owner@acme.example")

	// reusing the admin email must fail as one unit, without committing
	// the new organization or claiming its slug
	rec := doJSON(e, http.MethodPost, "/api/commercial/register",
		`{"organization_name":"Second","slug":"second","email":"owner@acme.example","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	_, err := s.GetOrganizationBySlug("second")
	assert.Error(t, err)

	// the slug stays available for a clean signup
	register(t, e, "second", "owner@second.example")
}

func TestRegisterWeakPassword(t *testing.T) {
	e, _ := newCommercialServer(t)

	rec := doJSON(e, http.MethodPost, "/api/commercial/register",
		`{"organization_name":"Test","slug":"t","email":"t@t.example","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	e, _ := newCommercialServer(t)

	register(t, e, "acme", "owner@acme.example")
	_, code := login(t, e, "owner@acme.example", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestLoginUnknownUser(t *testing.T) {
	e, _ := newCommercialServer(t)

	_, code := login(t, e, "nobody@acme.example", "whatever-pass")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestDeactivatedUserLosesAccess(t *testing.T) {
	e, s := newCommercialServer(t)

	register(t, e, "acme", "owner@acme.example")
	token, code := login(t, e, "owner@acme.example", "s3cret-pass")
	require.Equal(t, http.StatusOK, code)

	user, err := s.GetUserByEmail("owner@acme.example")
	require.NoError(t, err)
	_, err = s.UpdateUser(user.ID, user.OrganizationID, map[string]interface{}{"active": false})
	require.NoError(t, err)

	// the outstanding token is rejected on the next request
	rec := authedJSON(e, http.MethodGet, "/api/commercial/me", token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// and a fresh login fails even with the right password
	_, code = login(t, e, "owner@acme.example", "s3cret-pass")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestMissingAuthorizationHeader(t *testing.T) {
	e, _ := newCommercialServer(t)

	rec := doJSON(e, http.MethodGet, "/api/commercial/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInvalidToken(t *testing.T) {
	e, _ := newCommercialServer(t)

	rec := authedJSON(e, http.MethodGet, "/api/commercial/me", "not-a-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateUserRequiresManageUsersCapability(t *testing.T) {
	e, _ := newCommercialServer(t)

	register(t, e, "acme", "owner@acme.example")
	adminToken, _ := login(t, e, "owner@acme.example", "s3cret-pass")

	// the admin can add a sales rep
	rec := authedJSON(e, http.MethodPost, "/api/commercial/users", adminToken,
		`{"email":"rep@acme.example","password":"s3cret-pass","role":"sales_rep"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// the sales rep cannot add users
	repToken, code := login(t, e, "rep@acme.example", "s3cret-pass")
	require.Equal(t, http.StatusOK, code)

	rec = authedJSON(e, http.MethodPost, "/api/commercial/users", repToken,
		`{"email":"other@acme.example","password":"s3cret-pass"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateUserUnknownRole(t *testing.T) {
	e, _ := newCommercialServer(t)

	register(t, e, "acme", "owner@acme.example")
	token, _ := login(t, e, "owner@acme.example", "s3cret-pass")

	rec := authedJSON(e, http.MethodPost, "/api/commercial/users", token,
		`{"email":"x@acme.example","password":"s3cret-pass","role":"superuser"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
