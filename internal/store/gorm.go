package store

import (
	"errors"
	"time"

	"github.com/tukue/CRM-app-saas/internal/apperr"
	"github.com/tukue/CRM-app-saas/internal/model"
	"github.com/tukue/CRM-app-saas/prometheus"
	"gorm.io/gorm"
)

// GormStore is the PostgreSQL-backed store used by the commercial API.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store on top of an initialized gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Models returns the models the store persists, for migration.
func Models() []interface{} {
	return []interface{}{
		&model.Organization{},
		&model.User{},
		&model.Lead{},
		&model.Customer{},
		&model.Deal{},
		&model.Activity{},
		&model.SalesData{},
	}
}

// Organizations

func (s *GormStore) CreateOrganization(org *model.Organization) error {
	var existing model.Organization
	result := s.db.Where("slug = ?", org.Slug).First(&existing)
	if result.Error == nil {
		return apperr.Conflict("organization slug already in use")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return s.db.Create(org).Error
}

// CreateOrganizationWithAdmin runs the signup write in one transaction so a
// conflict on the admin's email cannot leave an orphaned organization
// holding the slug.
func (s *GormStore) CreateOrganizationWithAdmin(org *model.Organization, admin *model.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existingOrg model.Organization
		result := tx.Where("slug = ?", org.Slug).First(&existingOrg)
		if result.Error == nil {
			return apperr.Conflict("organization slug already in use")
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		var existingUser model.User
		result = tx.Where("email = ?", admin.Email).First(&existingUser)
		if result.Error == nil {
			return apperr.Conflict("email already registered")
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		if result := tx.Create(org); result.Error != nil {
			return result.Error
		}
		admin.OrganizationID = org.ID
		return tx.Create(admin).Error
	})
}

func (s *GormStore) GetOrganizationByID(id uint) (*model.Organization, error) {
	var org model.Organization
	if result := s.db.First(&org, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("organization")
		}
		return nil, result.Error
	}
	return &org, nil
}

func (s *GormStore) GetOrganizationBySlug(slug string) (*model.Organization, error) {
	var org model.Organization
	if result := s.db.Where("slug = ?", slug).First(&org); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("organization")
		}
		return nil, result.Error
	}
	return &org, nil
}

func (s *GormStore) UpdateOrganization(id uint, updates map[string]interface{}) (*model.Organization, error) {
	var org model.Organization
	if result := s.db.First(&org, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	if result := s.db.Model(&org).Updates(updates); result.Error != nil {
		return nil, result.Error
	}
	return &org, nil
}

func (s *GormStore) CountActiveOrganizations() (int64, error) {
	var count int64
	result := s.db.Model(&model.Organization{}).
		Where("subscription_status = ?", model.SubscriptionActive).
		Count(&count)
	return count, result.Error
}

// Users

func (s *GormStore) CreateUser(user *model.User) error {
	var existing model.User
	result := s.db.Where("email = ?", user.Email).First(&existing)
	if result.Error == nil {
		return apperr.Conflict("email already registered")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return s.db.Create(user).Error
}

func (s *GormStore) GetUserByID(id, orgID uint) (*model.User, error) {
	var user model.User
	result := s.db.Where("id = ? AND organization_id = ?", id, orgID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	result := s.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *GormStore) ListUsers(orgID uint) ([]model.User, error) {
	var users []model.User
	result := s.db.Where("organization_id = ?", orgID).Find(&users)
	return users, result.Error
}

func (s *GormStore) UpdateUser(id, orgID uint, updates map[string]interface{}) (*model.User, error) {
	// OrganizationID is immutable once set.
	delete(updates, "organization_id")

	var user model.User
	result := s.db.Where("id = ? AND organization_id = ?", id, orgID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	if result := s.db.Model(&user).Updates(updates); result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// Leads

func (s *GormStore) ListLeads(orgID uint) ([]model.Lead, error) {
	var leads []model.Lead
	result := s.db.Where("organization_id = ?", orgID).Find(&leads)
	return leads, result.Error
}

func (s *GormStore) GetLeadByID(id, orgID uint) (*model.Lead, error) {
	var lead model.Lead
	result := s.db.Where("id = ? AND organization_id = ?", id, orgID).First(&lead)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("lead")
		}
		return nil, result.Error
	}
	return &lead, nil
}

func (s *GormStore) CreateLead(lead *model.Lead) error {
	return s.db.Create(lead).Error
}

func (s *GormStore) UpdateLead(id, orgID uint, updates map[string]interface{}) (*model.Lead, error) {
	var lead model.Lead
	result := s.db.Where("id = ? AND organization_id = ?", id, orgID).First(&lead)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	if status, ok := updates["status"].(string); ok && status != lead.Status {
		if !model.CanTransitionLead(lead.Status, status) {
			return nil, apperr.Validation("invalid lead status transition", map[string]string{
				"from": lead.Status, "to": status,
			})
		}
	}
	if result := s.db.Model(&lead).Updates(updates); result.Error != nil {
		return nil, result.Error
	}
	return &lead, nil
}

func (s *GormStore) CountLeadsByStatus(orgID uint, status string) (int64, error) {
	var count int64
	result := s.db.Model(&model.Lead{}).
		Where("organization_id = ? AND status = ?", orgID, status).
		Count(&count)
	return count, result.Error
}

// ConvertLeadToCustomer runs the two-step conversion inside a transaction so
// a failure after the customer insert cannot leave the lead unconverted.
func (s *GormStore) ConvertLeadToCustomer(leadID, orgID uint) (*model.Customer, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())

	var customer *model.Customer

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lead model.Lead
		result := tx.Where("id = ? AND organization_id = ?", leadID, orgID).First(&lead)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return apperr.NotFound("lead")
			}
			return result.Error
		}

		if model.LeadTerminal(lead.Status) {
			return apperr.Validation("lead is already "+lead.Status, nil)
		}

		leadID := lead.ID
		customer = &model.Customer{
			Name:                lead.Name,
			Email:               lead.Email,
			Phone:               lead.Phone,
			Company:             lead.Company,
			Status:              model.CustomerActive,
			OrganizationID:      lead.OrganizationID,
			AssignedToID:        lead.AssignedToID,
			ConvertedFromLeadID: &leadID,
		}
		if result := tx.Create(customer); result.Error != nil {
			return result.Error
		}

		if result := tx.Model(&lead).Update("status", model.LeadConverted); result.Error != nil {
			return result.Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// Customers

func (s *GormStore) ListCustomers(orgID uint) ([]model.Customer, error) {
	var customers []model.Customer
	result := s.db.Where("organization_id = ?", orgID).Find(&customers)
	return customers, result.Error
}

func (s *GormStore) GetCustomerByID(id, orgID uint) (*model.Customer, error) {
	var customer model.Customer
	result := s.db.Where("id = ? AND organization_id = ?", id, orgID).First(&customer)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("customer")
		}
		return nil, result.Error
	}
	return &customer, nil
}

func (s *GormStore) CreateCustomer(customer *model.Customer) error {
	var existing model.Customer
	result := s.db.Where("organization_id = ? AND email = ?", customer.OrganizationID, customer.Email).First(&existing)
	if result.Error == nil {
		return apperr.Conflict("customer email already exists")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return s.db.Create(customer).Error
}

func (s *GormStore) UpdateCustomer(id, orgID uint, updates map[string]interface{}) (*model.Customer, error) {
	var customer model.Customer
	result := s.db.Where("id = ? AND organization_id = ?", id, orgID).First(&customer)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	if result := s.db.Model(&customer).Updates(updates); result.Error != nil {
		return nil, result.Error
	}
	return &customer, nil
}

// Deals

func (s *GormStore) ListDeals(orgID uint) ([]model.Deal, error) {
	var deals []model.Deal
	result := s.db.Where("organization_id = ?", orgID).Find(&deals)
	return deals, result.Error
}

func (s *GormStore) GetDealByID(id, orgID uint) (*model.Deal, error) {
	var deal model.Deal
	result := s.db.Where("id = ? AND organization_id = ?", id, orgID).First(&deal)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("deal")
		}
		return nil, result.Error
	}
	return &deal, nil
}

func (s *GormStore) CreateDeal(deal *model.Deal) error {
	return s.db.Create(deal).Error
}

func (s *GormStore) UpdateDeal(id, orgID uint, updates map[string]interface{}) (*model.Deal, error) {
	var deal model.Deal
	result := s.db.Where("id = ? AND organization_id = ?", id, orgID).First(&deal)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	if stage, ok := updates["stage"].(string); ok && stage != deal.Stage {
		if !model.CanTransitionDeal(deal.Stage, stage) {
			return nil, apperr.Validation("invalid deal stage transition", map[string]string{
				"from": deal.Stage, "to": stage,
			})
		}
	}
	if result := s.db.Model(&deal).Updates(updates); result.Error != nil {
		return nil, result.Error
	}
	return &deal, nil
}

// Activities

func (s *GormStore) ListActivities(orgID uint) ([]model.Activity, error) {
	var activities []model.Activity
	result := s.db.Where("organization_id = ?", orgID).Find(&activities)
	return activities, result.Error
}

func (s *GormStore) GetActivityByID(id, orgID uint) (*model.Activity, error) {
	var activity model.Activity
	result := s.db.Where("id = ? AND organization_id = ?", id, orgID).First(&activity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("activity")
		}
		return nil, result.Error
	}
	return &activity, nil
}

func (s *GormStore) CreateActivity(activity *model.Activity) error {
	if activity.Related != nil && !activity.Related.Valid() {
		return apperr.Validation("activity must reference exactly one of customer, lead or deal", nil)
	}
	return s.db.Create(activity).Error
}

func (s *GormStore) UpdateActivity(id, orgID uint, updates map[string]interface{}) (*model.Activity, error) {
	var activity model.Activity
	result := s.db.Where("id = ? AND organization_id = ?", id, orgID).First(&activity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	if result := s.db.Model(&activity).Updates(updates); result.Error != nil {
		return nil, result.Error
	}
	return &activity, nil
}

// Sales data

func (s *GormStore) ListSalesData(orgID uint) ([]model.SalesData, error) {
	var data []model.SalesData
	result := s.db.Where("organization_id = ?", orgID).
		Order("year, month").
		Find(&data)
	return data, result.Error
}

func (s *GormStore) UpsertSalesData(data *model.SalesData) error {
	var existing model.SalesData
	result := s.db.Where("organization_id = ? AND year = ? AND month = ?",
		data.OrganizationID, data.Year, data.Month).First(&existing)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return s.db.Create(data).Error
		}
		return result.Error
	}
	data.ID = existing.ID
	return s.db.Model(&existing).Updates(map[string]interface{}{
		"revenue":       data.Revenue,
		"deals_count":   data.DealsCount,
		"new_customers": data.NewCustomers,
	}).Error
}

// Aggregates

func (s *GormStore) CountUsers(orgID uint) (int64, error) {
	var count int64
	result := s.db.Model(&model.User{}).Where("organization_id = ?", orgID).Count(&count)
	return count, result.Error
}

func (s *GormStore) CountCustomers(orgID uint) (int64, error) {
	var count int64
	result := s.db.Model(&model.Customer{}).Where("organization_id = ?", orgID).Count(&count)
	return count, result.Error
}

func (s *GormStore) CountLeads(orgID uint) (int64, error) {
	var count int64
	result := s.db.Model(&model.Lead{}).Where("organization_id = ?", orgID).Count(&count)
	return count, result.Error
}

func (s *GormStore) CountDeals(orgID uint) (int64, error) {
	var count int64
	result := s.db.Model(&model.Deal{}).Where("organization_id = ?", orgID).Count(&count)
	return count, result.Error
}

func (s *GormStore) SumCustomerValue(orgID uint) (float64, error) {
	var total float64
	result := s.db.Model(&model.Customer{}).
		Where("organization_id = ?", orgID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total)
	return total, result.Error
}

func (s *GormStore) SumDealValue(orgID uint) (float64, error) {
	var total float64
	result := s.db.Model(&model.Deal{}).
		Where("organization_id = ?", orgID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total)
	return total, result.Error
}

func (s *GormStore) GetUsageCounts(orgID uint) (*UsageCounts, error) {
	defer prometheus.TrackDBOperation("aggregate")(time.Now())

	usage := &UsageCounts{}
	var err error
	if usage.Users, err = s.CountUsers(orgID); err != nil {
		return nil, err
	}
	if usage.Customers, err = s.CountCustomers(orgID); err != nil {
		return nil, err
	}
	if usage.Leads, err = s.CountLeads(orgID); err != nil {
		return nil, err
	}
	if usage.Deals, err = s.CountDeals(orgID); err != nil {
		return nil, err
	}
	return usage, nil
}
