package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
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

// newDemoServer wires the unauthenticated demo routes against a seeded
// memory store, the same way the server's legacy group is assembled.
func newDemoServer(t *testing.T) (*echo.Echo, *store.MemoryStore) {
	t.Helper()

	s := store.NewSeededMemoryStore()
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})
	h := New(s, billing.NewService(s), jwt)

	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(true)

	g := e.Group("/api", middleware.DemoOrg())
	g.GET("/leads", h.ListLeads)
	g.POST("/leads", h.CreateLead)
	g.GET("/leads/:id", h.GetLead)
	g.PUT("/leads/:id", h.UpdateLead)
	g.POST("/leads/:id/convert", h.ConvertLead)

	return e, s
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListLeadsReturnsSeededData(t *testing.T) {
	e, _ := newDemoServer(t)

	rec := doJSON(e, http.MethodGet, "/api/leads", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var leads []model.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leads))
	assert.NotEmpty(t, leads)
	for _, lead := range leads {
		assert.Equal(t, store.DemoOrganizationID, lead.OrganizationID)
	}
}

func TestCreateLead(t *testing.T) {
	e, _ := newDemoServer(t)

	rec := doJSON(e, http.MethodPost, "/api/leads",
		`{"name":"Wayne Enterprises","email":"bruce@wayne.example","source":"referral","score":70}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var lead model.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
	assert.NotZero(t, lead.ID)
	assert.Equal(t, model.LeadNew, lead.Status)
	assert.Equal(t, store.DemoOrganizationID, lead.OrganizationID)
}

func TestCreateLeadMissingName(t *testing.T) {
	e, _ := newDemoServer(t)

	rec := doJSON(e, http.MethodPost, "/api/leads", `{"email":"x@x.example"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation")
}

func TestCreateLeadScoreOutOfRange(t *testing.T) {
	e, _ := newDemoServer(t)

	rec := doJSON(e, http.MethodPost, "/api/leads", `{"name":"X","score":150}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMissingLeadReturnsEmptyBody(t *testing.T) {
	e, _ := newDemoServer(t)

	rec := doJSON(e, http.MethodPut, "/api/leads/9999", `{"name":"ghost"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestUpdateLeadInvalidTransition(t *testing.T) {
	e, s := newDemoServer(t)

	lead := &model.Lead{Name: "Stuck", Status: model.LeadLost, OrganizationID: store.DemoOrganizationID}
	require.NoError(t, s.CreateLead(lead))

	rec := doJSON(e, http.MethodPut, "/api/leads/"+itoa(lead.ID), `{"status":"contacted"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "transition")
}

func TestConvertLead(t *testing.T) {
	e, s := newDemoServer(t)

	lead := &model.Lead{Name: "Convertible", Email: "cv@x.example", Status: model.LeadQualified, OrganizationID: store.DemoOrganizationID}
	require.NoError(t, s.CreateLead(lead))

	rec := doJSON(e, http.MethodPost, "/api/leads/"+itoa(lead.ID)+"/convert", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var customer model.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customer))
	assert.Equal(t, "Convertible", customer.Name)
	require.NotNil(t, customer.ConvertedFromLeadID)
	assert.Equal(t, lead.ID, *customer.ConvertedFromLeadID)

	stored, err := s.GetLeadByID(lead.ID, store.DemoOrganizationID)
	require.NoError(t, err)
	assert.Equal(t, model.LeadConverted, stored.Status)

	// converted is terminal, a repeat conversion fails
	rec = doJSON(e, http.MethodPost, "/api/leads/"+itoa(lead.ID)+"/convert", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLeadInvalidID(t *testing.T) {
	e, _ := newDemoServer(t)

	rec := doJSON(e, http.MethodGet, "/api/leads/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLeadNotFound(t *testing.T) {
	e, _ := newDemoServer(t)

	rec := doJSON(e, http.MethodGet, "/api/leads/9999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
