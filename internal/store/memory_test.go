package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tukue/CRM-app-saas/internal/apperr"
	"github.com/tukue/CRM-app-saas/internal/model"
)

func twoOrgs(t *testing.T) (*MemoryStore, *model.Organization, *model.Organization) {
	t.Helper()
	s := NewMemoryStore()
	orgA := &model.Organization{Name: "Org A", Slug: "org-a"}
	orgB := &model.Organization{Name: "Org B", Slug: "org-b"}
	require.NoError(t, s.CreateOrganization(orgA))
	require.NoError(t, s.CreateOrganization(orgB))
	return s, orgA, orgB
}

func TestTenantIsolation(t *testing.T) {
	s, orgA, orgB := twoOrgs(t)

	lead := &model.Lead{Name: "A lead", OrganizationID: orgA.ID}
	require.NoError(t, s.CreateLead(lead))
	customer := &model.Customer{Name: "A customer", Email: "a@a.example", OrganizationID: orgA.ID}
	require.NoError(t, s.CreateCustomer(customer))
	deal := &model.Deal{Title: "A deal", OrganizationID: orgA.ID}
	require.NoError(t, s.CreateDeal(deal))

	// records created under A are never visible in B-scoped calls
	leadsB, err := s.ListLeads(orgB.ID)
	require.NoError(t, err)
	assert.Empty(t, leadsB)

	customersB, err := s.ListCustomers(orgB.ID)
	require.NoError(t, err)
	assert.Empty(t, customersB)

	dealsB, err := s.ListDeals(orgB.ID)
	require.NoError(t, err)
	assert.Empty(t, dealsB)

	_, err = s.GetLeadByID(lead.ID, orgB.ID)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)

	count, err := s.CountLeads(orgB.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = s.CountLeads(orgA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAutoIncrementIDs(t *testing.T) {
	s, orgA, _ := twoOrgs(t)

	first := &model.Lead{Name: "first", OrganizationID: orgA.ID}
	second := &model.Lead{Name: "second", OrganizationID: orgA.ID}
	require.NoError(t, s.CreateLead(first))
	require.NoError(t, s.CreateLead(second))
	assert.Equal(t, first.ID+1, second.ID)
}

func TestUpdateMissingCustomerReturnsEmpty(t *testing.T) {
	s, orgA, _ := twoOrgs(t)

	customer, err := s.UpdateCustomer(9999, orgA.ID, map[string]interface{}{"name": "nobody"})
	require.NoError(t, err)
	assert.Nil(t, customer)
}

func TestUpdateCrossTenantReturnsEmpty(t *testing.T) {
	s, orgA, orgB := twoOrgs(t)

	customer := &model.Customer{Name: "A", Email: "a@a.example", OrganizationID: orgA.ID}
	require.NoError(t, s.CreateCustomer(customer))

	// updating A's record through B's scope behaves like a missing id
	updated, err := s.UpdateCustomer(customer.ID, orgB.ID, map[string]interface{}{"name": "hijack"})
	require.NoError(t, err)
	assert.Nil(t, updated)

	stored, err := s.GetCustomerByID(customer.ID, orgA.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", stored.Name)
}

func TestDuplicateCustomerEmailConflict(t *testing.T) {
	s, orgA, orgB := twoOrgs(t)

	require.NoError(t, s.CreateCustomer(&model.Customer{Name: "one", Email: "dup@x.example", OrganizationID: orgA.ID}))

	err := s.CreateCustomer(&model.Customer{Name: "two", Email: "dup@x.example", OrganizationID: orgA.ID})
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindConflict, appErr.Kind)

	// the same email under another organization is fine
	require.NoError(t, s.CreateCustomer(&model.Customer{Name: "three", Email: "dup@x.example", OrganizationID: orgB.ID}))
}

func TestConvertLeadToCustomer(t *testing.T) {
	s, orgA, _ := twoOrgs(t)

	lead := &model.Lead{
		Name:           "Acme",
		Email:          "acme@x.example",
		Phone:          "555-0100",
		Company:        "Acme Corp",
		Status:         model.LeadQualified,
		OrganizationID: orgA.ID,
	}
	require.NoError(t, s.CreateLead(lead))

	customer, err := s.ConvertLeadToCustomer(lead.ID, orgA.ID)
	require.NoError(t, err)

	// customer copies the lead's fields and records its origin
	assert.Equal(t, lead.Name, customer.Name)
	assert.Equal(t, lead.Email, customer.Email)
	assert.Equal(t, lead.Company, customer.Company)
	require.NotNil(t, customer.ConvertedFromLeadID)
	assert.Equal(t, lead.ID, *customer.ConvertedFromLeadID)

	stored, err := s.GetLeadByID(lead.ID, orgA.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LeadConverted, stored.Status)

	// converted is terminal; a second conversion is rejected
	_, err = s.ConvertLeadToCustomer(lead.ID, orgA.ID)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)

	// and no duplicate customer was created
	customers, err := s.ListCustomers(orgA.ID)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestConvertMissingLead(t *testing.T) {
	s, orgA, _ := twoOrgs(t)

	_, err := s.ConvertLeadToCustomer(42, orgA.ID)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}

func TestLeadStatusTransitionEnforced(t *testing.T) {
	s, orgA, _ := twoOrgs(t)

	lead := &model.Lead{Name: "L", Status: model.LeadLost, OrganizationID: orgA.ID}
	require.NoError(t, s.CreateLead(lead))

	_, err := s.UpdateLead(lead.ID, orgA.ID, map[string]interface{}{"status": model.LeadContacted})
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}

func TestDealStageTransitionEnforced(t *testing.T) {
	s, orgA, _ := twoOrgs(t)

	deal := &model.Deal{Title: "D", Stage: model.DealNegotiation, OrganizationID: orgA.ID}
	require.NoError(t, s.CreateDeal(deal))

	updated, err := s.UpdateDeal(deal.ID, orgA.ID, map[string]interface{}{"stage": model.DealClosedWon})
	require.NoError(t, err)
	assert.Equal(t, model.DealClosedWon, updated.Stage)

	_, err = s.UpdateDeal(deal.ID, orgA.ID, map[string]interface{}{"stage": model.DealProposal})
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}

func TestOrganizationSlugConflict(t *testing.T) {
	s, _, _ := twoOrgs(t)

	err := s.CreateOrganization(&model.Organization{Name: "Dup", Slug: "org-a"})
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindConflict, appErr.Kind)
}

func TestImmutableOrganizationOnUserUpdate(t *testing.T) {
	s, orgA, orgB := twoOrgs(t)

	user := &model.User{Email: "u@x.example", Role: model.RoleUser, OrganizationID: orgA.ID}
	require.NoError(t, s.CreateUser(user))

	updated, err := s.UpdateUser(user.ID, orgA.ID, map[string]interface{}{
		"organization_id": orgB.ID,
		"first_name":      "Renamed",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, orgA.ID, updated.OrganizationID)
	assert.Equal(t, "Renamed", updated.FirstName)
}

func TestSeededStoreHasDemoData(t *testing.T) {
	s := NewSeededMemoryStore()

	org, err := s.GetOrganizationByID(DemoOrganizationID)
	require.NoError(t, err)
	assert.Equal(t, "demo", org.Slug)

	leads, err := s.ListLeads(DemoOrganizationID)
	require.NoError(t, err)
	assert.NotEmpty(t, leads)

	deals, err := s.ListDeals(DemoOrganizationID)
	require.NoError(t, err)
	assert.NotEmpty(t, deals)

	sales, err := s.ListSalesData(DemoOrganizationID)
	require.NoError(t, err)
	assert.NotEmpty(t, sales)
}

func TestUpsertSalesData(t *testing.T) {
	s, orgA, _ := twoOrgs(t)

	first := &model.SalesData{Month: 3, Year: 2025, Revenue: 1000, DealsCount: 2, NewCustomers: 1, OrganizationID: orgA.ID}
	require.NoError(t, s.UpsertSalesData(first))

	second := &model.SalesData{Month: 3, Year: 2025, Revenue: 2500, DealsCount: 4, NewCustomers: 2, OrganizationID: orgA.ID}
	require.NoError(t, s.UpsertSalesData(second))
	assert.Equal(t, first.ID, second.ID)

	data, err := s.ListSalesData(orgA.ID)
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, 2500.0, data[0].Revenue)
}
