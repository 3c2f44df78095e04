package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tukue/CRM-app-saas/internal/model"
	"github.com/tukue/CRM-app-saas/internal/store"
)

func TestConversionRate(t *testing.T) {
	assert.Equal(t, 22.5, ConversionRate(45, 200))
	assert.Equal(t, 0.0, ConversionRate(0, 0))
	assert.Equal(t, 100.0, ConversionRate(10, 10))
}

func TestAverageDealValue(t *testing.T) {
	assert.Equal(t, 62500.0, AverageDealValue(50000+75000+100000+25000, 4))
	assert.Equal(t, 0.0, AverageDealValue(0, 0))
}

func TestComputeDashboardMetrics(t *testing.T) {
	s := store.NewMemoryStore()
	org := &model.Organization{Name: "Org", Slug: "org"}
	require.NoError(t, s.CreateOrganization(org))

	require.NoError(t, s.CreateCustomer(&model.Customer{Name: "c1", Email: "c1@x.example", Value: 30000, OrganizationID: org.ID}))
	require.NoError(t, s.CreateCustomer(&model.Customer{Name: "c2", Email: "c2@x.example", Value: 70000, OrganizationID: org.ID}))

	require.NoError(t, s.CreateLead(&model.Lead{Name: "l1", Status: model.LeadConverted, OrganizationID: org.ID}))
	require.NoError(t, s.CreateLead(&model.Lead{Name: "l2", Status: model.LeadNew, OrganizationID: org.ID}))
	require.NoError(t, s.CreateLead(&model.Lead{Name: "l3", Status: model.LeadNew, OrganizationID: org.ID}))
	require.NoError(t, s.CreateLead(&model.Lead{Name: "l4", Status: model.LeadLost, OrganizationID: org.ID}))

	require.NoError(t, s.CreateDeal(&model.Deal{Title: "d1", Value: 50000, OrganizationID: org.ID}))
	require.NoError(t, s.CreateDeal(&model.Deal{Title: "d2", Value: 100000, OrganizationID: org.ID}))

	metrics, err := ComputeDashboardMetrics(s, org.ID)
	require.NoError(t, err)

	assert.Equal(t, 100000.0, metrics.TotalRevenue)
	assert.Equal(t, int64(2), metrics.TotalDeals)
	assert.Equal(t, int64(2), metrics.TotalCustomers)
	assert.Equal(t, int64(4), metrics.TotalLeads)
	assert.Equal(t, 25.0, metrics.ConversionRate)
	assert.Equal(t, 75000.0, metrics.AverageDealValue)
}

func TestComputeDashboardMetricsEmptyOrganization(t *testing.T) {
	s := store.NewMemoryStore()
	org := &model.Organization{Name: "Empty", Slug: "empty"}
	require.NoError(t, s.CreateOrganization(org))

	metrics, err := ComputeDashboardMetrics(s, org.ID)
	require.NoError(t, err)

	assert.Zero(t, metrics.TotalRevenue)
	assert.Zero(t, metrics.ConversionRate)
	assert.Zero(t, metrics.AverageDealValue)
}
