// Package store implements the organization-scoped persistence contract.
// Two variants exist: MemoryStore backs the legacy demo routes and tests,
// GormStore backs the commercial routes on PostgreSQL. Every read and write
// of business data filters by organization id to preserve tenant isolation.
package store

import (
	"github.com/tukue/CRM-app-saas/internal/model"
)

// UsageCounts are the aggregate counts billing reads for plan-limit checks.
type UsageCounts struct {
	Users     int64 `json:"users"`
	Customers int64 `json:"customers"`
	Leads     int64 `json:"leads"`
	Deals     int64 `json:"deals"`
}

// Store is the persistence contract shared by the memory and GORM variants.
//
// Update methods return (nil, nil) when the target id does not exist within
// the organization; absence on update is not an error.
type Store interface {
	// Organizations
	CreateOrganization(org *model.Organization) error

	// CreateOrganizationWithAdmin creates the organization and its first
	// admin user as a single unit of work. A slug or email conflict leaves
	// neither row behind.
	CreateOrganizationWithAdmin(org *model.Organization, admin *model.User) error
	GetOrganizationByID(id uint) (*model.Organization, error)
	GetOrganizationBySlug(slug string) (*model.Organization, error)
	UpdateOrganization(id uint, updates map[string]interface{}) (*model.Organization, error)
	CountActiveOrganizations() (int64, error)

	// Users
	CreateUser(user *model.User) error
	GetUserByID(id, orgID uint) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	ListUsers(orgID uint) ([]model.User, error)
	UpdateUser(id, orgID uint, updates map[string]interface{}) (*model.User, error)

	// Leads
	ListLeads(orgID uint) ([]model.Lead, error)
	GetLeadByID(id, orgID uint) (*model.Lead, error)
	CreateLead(lead *model.Lead) error
	UpdateLead(id, orgID uint, updates map[string]interface{}) (*model.Lead, error)
	CountLeadsByStatus(orgID uint, status string) (int64, error)

	// ConvertLeadToCustomer inserts a customer copying the lead's fields and
	// marks the lead converted, as a single unit of work. A terminal lead is
	// rejected with a validation error.
	ConvertLeadToCustomer(leadID, orgID uint) (*model.Customer, error)

	// Customers
	ListCustomers(orgID uint) ([]model.Customer, error)
	GetCustomerByID(id, orgID uint) (*model.Customer, error)
	CreateCustomer(customer *model.Customer) error
	UpdateCustomer(id, orgID uint, updates map[string]interface{}) (*model.Customer, error)

	// Deals
	ListDeals(orgID uint) ([]model.Deal, error)
	GetDealByID(id, orgID uint) (*model.Deal, error)
	CreateDeal(deal *model.Deal) error
	UpdateDeal(id, orgID uint, updates map[string]interface{}) (*model.Deal, error)

	// Activities
	ListActivities(orgID uint) ([]model.Activity, error)
	GetActivityByID(id, orgID uint) (*model.Activity, error)
	CreateActivity(activity *model.Activity) error
	UpdateActivity(id, orgID uint, updates map[string]interface{}) (*model.Activity, error)

	// Sales data
	ListSalesData(orgID uint) ([]model.SalesData, error)
	UpsertSalesData(data *model.SalesData) error

	// Aggregates
	CountUsers(orgID uint) (int64, error)
	CountCustomers(orgID uint) (int64, error)
	CountLeads(orgID uint) (int64, error)
	CountDeals(orgID uint) (int64, error)
	SumCustomerValue(orgID uint) (float64, error)
	SumDealValue(orgID uint) (float64, error)
	GetUsageCounts(orgID uint) (*UsageCounts, error)
}
