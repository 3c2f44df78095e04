package handler

import (
	"encoding/json"
	"net/http"
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

func newCustomerServer(t *testing.T) (*echo.Echo, *store.MemoryStore) {
	t.Helper()

	s := store.NewSeededMemoryStore()
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})
	h := New(s, billing.NewService(s), jwt)

	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(true)

	g := e.Group("/api", middleware.DemoOrg())
	g.GET("/customers", h.ListCustomers)
	g.POST("/customers", h.CreateCustomer)
	g.GET("/customers/:id", h.GetCustomer)
	g.PUT("/customers/:id", h.UpdateCustomer)

	return e, s
}

func TestCreateCustomer(t *testing.T) {
	e, _ := newCustomerServer(t)

	rec := doJSON(e, http.MethodPost, "/api/customers",
		`{"name":"Oscorp","email":"ap@oscorp.example","value":45000}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var customer model.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customer))
	assert.NotZero(t, customer.ID)
	assert.Equal(t, model.CustomerActive, customer.Status)
	assert.Equal(t, 45000.0, customer.Value)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	e, _ := newCustomerServer(t)

	body := `{"name":"Oscorp","email":"ap@oscorp.example"}`
	rec := doJSON(e, http.MethodPost, "/api/customers", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/customers", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateMissingCustomerReturnsEmptyBody(t *testing.T) {
	e, _ := newCustomerServer(t)

	rec := doJSON(e, http.MethodPut, "/api/customers/9999", `{"name":"ghost"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestUpdateCustomerValue(t *testing.T) {
	e, s := newCustomerServer(t)

	customer := &model.Customer{Name: "Oscorp", Email: "ap@oscorp.example", Value: 1000, OrganizationID: store.DemoOrganizationID}
	require.NoError(t, s.CreateCustomer(customer))

	rec := doJSON(e, http.MethodPut, "/api/customers/"+itoa(customer.ID), `{"value":99000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 99000.0, updated.Value)
}
