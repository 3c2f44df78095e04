package store

import (
	"sort"
	"sync"
	"time"

	"github.com/tukue/CRM-app-saas/internal/apperr"
	"github.com/tukue/CRM-app-saas/internal/model"
)

// MemoryStore is the map-backed legacy/demo store. Ids auto-increment and a
// fixture data set is seeded at construction so the demo routes return data
// without a database. All access is serialized by a single mutex, which also
// makes the two-step lead conversion atomic.
type MemoryStore struct {
	mu sync.Mutex

	organizations map[uint]*model.Organization
	users         map[uint]*model.User
	leads         map[uint]*model.Lead
	customers     map[uint]*model.Customer
	deals         map[uint]*model.Deal
	activities    map[uint]*model.Activity
	salesData     map[uint]*model.SalesData

	nextID map[string]uint
}

// DemoOrganizationID is the fixed organization the unauthenticated legacy
// routes resolve to.
const DemoOrganizationID uint = 1

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		organizations: make(map[uint]*model.Organization),
		users:         make(map[uint]*model.User),
		leads:         make(map[uint]*model.Lead),
		customers:     make(map[uint]*model.Customer),
		deals:         make(map[uint]*model.Deal),
		activities:    make(map[uint]*model.Activity),
		salesData:     make(map[uint]*model.SalesData),
		nextID:        make(map[string]uint),
	}
}

// NewSeededMemoryStore creates a memory store preloaded with the demo
// organization and sample CRM rows.
func NewSeededMemoryStore() *MemoryStore {
	s := NewMemoryStore()
	s.seed()
	return s
}

func (s *MemoryStore) allocID(entity string) uint {
	s.nextID[entity]++
	return s.nextID[entity]
}

func (s *MemoryStore) seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	org := &model.Organization{
		ID:                 s.allocID("organization"),
		Name:               "Demo Organization",
		Slug:               "demo",
		SubscriptionPlan:   "starter",
		SubscriptionStatus: model.SubscriptionTrial,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.organizations[org.ID] = org

	admin := &model.User{
		ID:             s.allocID("user"),
		Email:          "admin@demo.example",
		FirstName:      "Demo",
		LastName:       "Admin",
		Role:           model.RoleAdmin,
		OrganizationID: org.ID,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.users[admin.ID] = admin

	rep := &model.User{
		ID:             s.allocID("user"),
		Email:          "rep@demo.example",
		FirstName:      "Sam",
		LastName:       "Reyes",
		Role:           model.RoleSalesRep,
		OrganizationID: org.ID,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.users[rep.ID] = rep

	leads := []*model.Lead{
		{Name: "Acme Corp", Email: "contact@acme.example", Company: "Acme Corp", Source: "website", Status: model.LeadNew, Score: 65},
		{Name: "Globex", Email: "info@globex.example", Company: "Globex", Source: "referral", Status: model.LeadContacted, Score: 80},
		{Name: "Initech", Email: "sales@initech.example", Company: "Initech", Source: "cold_call", Status: model.LeadQualified, Score: 90},
	}
	for _, l := range leads {
		l.ID = s.allocID("lead")
		l.OrganizationID = org.ID
		l.AssignedToID = &rep.ID
		l.CreatedAt = now
		l.UpdatedAt = now
		s.leads[l.ID] = l
	}

	customers := []*model.Customer{
		{Name: "Umbrella Inc", Email: "billing@umbrella.example", Company: "Umbrella Inc", Value: 120000, Status: model.CustomerActive},
		{Name: "Stark Industries", Email: "accounts@stark.example", Company: "Stark Industries", Value: 250000, Status: model.CustomerActive},
	}
	for _, c := range customers {
		c.ID = s.allocID("customer")
		c.OrganizationID = org.ID
		c.AssignedToID = &rep.ID
		c.CreatedAt = now
		c.UpdatedAt = now
		s.customers[c.ID] = c
	}

	deals := []*model.Deal{
		{Title: "Umbrella renewal", Value: 50000, Stage: model.DealNegotiation, Probability: 75, CustomerID: &customers[0].ID},
		{Title: "Stark expansion", Value: 100000, Stage: model.DealProposal, Probability: 60, CustomerID: &customers[1].ID},
	}
	for _, d := range deals {
		d.ID = s.allocID("deal")
		d.OrganizationID = org.ID
		d.AssignedToID = &rep.ID
		d.CreatedAt = now
		d.UpdatedAt = now
		s.deals[d.ID] = d
	}

	activity := &model.Activity{
		ID:             s.allocID("activity"),
		Type:           model.ActivityCall,
		Subject:        "Renewal follow-up",
		Status:         model.ActivityPending,
		Related:        &model.EntityRef{Kind: model.RelatedDeal, ID: deals[0].ID},
		OrganizationID: org.ID,
		CreatedByID:    admin.ID,
		AssignedToID:   rep.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.activities[activity.ID] = activity

	for i, month := range []int{1, 2, 3} {
		sd := &model.SalesData{
			ID:             s.allocID("sales_data"),
			Month:          month,
			Year:           now.Year(),
			Revenue:        float64(40000 + i*15000),
			DealsCount:     3 + i,
			NewCustomers:   1 + i,
			OrganizationID: org.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		s.salesData[sd.ID] = sd
	}
}

// Organizations

func (s *MemoryStore) CreateOrganization(org *model.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.organizations {
		if existing.Slug == org.Slug {
			return apperr.Conflict("organization slug already in use")
		}
	}
	org.ID = s.allocID("organization")
	org.CreatedAt = time.Now()
	org.UpdatedAt = org.CreatedAt
	cp := *org
	s.organizations[org.ID] = &cp
	return nil
}

// CreateOrganizationWithAdmin performs the signup write under one critical
// section; both conflict checks run before either row is inserted.
func (s *MemoryStore) CreateOrganizationWithAdmin(org *model.Organization, admin *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.organizations {
		if existing.Slug == org.Slug {
			return apperr.Conflict("organization slug already in use")
		}
	}
	for _, existing := range s.users {
		if existing.Email == admin.Email {
			return apperr.Conflict("email already registered")
		}
	}

	now := time.Now()
	org.ID = s.allocID("organization")
	org.CreatedAt = now
	org.UpdatedAt = now
	orgCp := *org
	s.organizations[org.ID] = &orgCp

	admin.ID = s.allocID("user")
	admin.OrganizationID = org.ID
	admin.CreatedAt = now
	admin.UpdatedAt = now
	adminCp := *admin
	s.users[admin.ID] = &adminCp
	return nil
}

func (s *MemoryStore) GetOrganizationByID(id uint) (*model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.organizations[id]
	if !ok {
		return nil, apperr.NotFound("organization")
	}
	cp := *org
	return &cp, nil
}

func (s *MemoryStore) GetOrganizationBySlug(slug string) (*model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, org := range s.organizations {
		if org.Slug == slug {
			cp := *org
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("organization")
}

func (s *MemoryStore) UpdateOrganization(id uint, updates map[string]interface{}) (*model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.organizations[id]
	if !ok {
		return nil, nil
	}
	for key, value := range updates {
		switch key {
		case "name":
			org.Name, _ = value.(string)
		case "subscription_plan":
			org.SubscriptionPlan, _ = value.(string)
		case "subscription_status":
			org.SubscriptionStatus, _ = value.(string)
		case "subscription_id":
			org.SubscriptionID, _ = value.(string)
		case "settings":
			org.Settings, _ = value.(string)
		}
	}
	org.UpdatedAt = time.Now()
	cp := *org
	return &cp, nil
}

func (s *MemoryStore) CountActiveOrganizations() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, org := range s.organizations {
		if org.SubscriptionStatus == model.SubscriptionActive {
			count++
		}
	}
	return count, nil
}

// Users

func (s *MemoryStore) CreateUser(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperr.Conflict("email already registered")
		}
	}
	user.ID = s.allocID("user")
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *MemoryStore) GetUserByID(id, orgID uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok || user.OrganizationID != orgID {
		return nil, apperr.NotFound("user")
	}
	cp := *user
	return &cp, nil
}

func (s *MemoryStore) GetUserByEmail(email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (s *MemoryStore) ListUsers(orgID uint) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []model.User
	for _, user := range s.users {
		if user.OrganizationID == orgID {
			users = append(users, *user)
		}
	}
	sortByID(users, func(u model.User) uint { return u.ID })
	return users, nil
}

func (s *MemoryStore) UpdateUser(id, orgID uint, updates map[string]interface{}) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok || user.OrganizationID != orgID {
		return nil, nil
	}
	for key, value := range updates {
		switch key {
		case "first_name":
			user.FirstName, _ = value.(string)
		case "last_name":
			user.LastName, _ = value.(string)
		case "role":
			user.Role, _ = value.(string)
		case "active":
			user.Active, _ = value.(bool)
		}
	}
	user.UpdatedAt = time.Now()
	cp := *user
	return &cp, nil
}

// Leads

func (s *MemoryStore) ListLeads(orgID uint) ([]model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var leads []model.Lead
	for _, lead := range s.leads {
		if lead.OrganizationID == orgID {
			leads = append(leads, *lead)
		}
	}
	sortByID(leads, func(l model.Lead) uint { return l.ID })
	return leads, nil
}

func (s *MemoryStore) GetLeadByID(id, orgID uint) (*model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[id]
	if !ok || lead.OrganizationID != orgID {
		return nil, apperr.NotFound("lead")
	}
	cp := *lead
	return &cp, nil
}

func (s *MemoryStore) CreateLead(lead *model.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead.ID = s.allocID("lead")
	if lead.Status == "" {
		lead.Status = model.LeadNew
	}
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = lead.CreatedAt
	cp := *lead
	s.leads[lead.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateLead(id, orgID uint, updates map[string]interface{}) (*model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[id]
	if !ok || lead.OrganizationID != orgID {
		return nil, nil
	}
	if status, ok := updates["status"].(string); ok && status != lead.Status {
		if !model.CanTransitionLead(lead.Status, status) {
			return nil, apperr.Validation("invalid lead status transition", map[string]string{
				"from": lead.Status, "to": status,
			})
		}
	}
	for key, value := range updates {
		switch key {
		case "name":
			lead.Name, _ = value.(string)
		case "email":
			lead.Email, _ = value.(string)
		case "phone":
			lead.Phone, _ = value.(string)
		case "company":
			lead.Company, _ = value.(string)
		case "source":
			lead.Source, _ = value.(string)
		case "status":
			lead.Status, _ = value.(string)
		case "score":
			if score, ok := value.(int); ok {
				lead.Score = score
			}
		case "assigned_to_id":
			if assignee, ok := value.(*uint); ok {
				lead.AssignedToID = assignee
			}
		}
	}
	lead.UpdatedAt = time.Now()
	cp := *lead
	return &cp, nil
}

func (s *MemoryStore) CountLeadsByStatus(orgID uint, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, lead := range s.leads {
		if lead.OrganizationID == orgID && lead.Status == status {
			count++
		}
	}
	return count, nil
}

// ConvertLeadToCustomer performs both steps of the conversion under the
// store mutex, so no partial state is observable.
func (s *MemoryStore) ConvertLeadToCustomer(leadID, orgID uint) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[leadID]
	if !ok || lead.OrganizationID != orgID {
		return nil, apperr.NotFound("lead")
	}
	if model.LeadTerminal(lead.Status) {
		return nil, apperr.Validation("lead is already "+lead.Status, nil)
	}

	now := time.Now()
	originID := lead.ID
	customer := &model.Customer{
		ID:                  s.allocID("customer"),
		Name:                lead.Name,
		Email:               lead.Email,
		Phone:               lead.Phone,
		Company:             lead.Company,
		Status:              model.CustomerActive,
		OrganizationID:      lead.OrganizationID,
		AssignedToID:        lead.AssignedToID,
		ConvertedFromLeadID: &originID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	s.customers[customer.ID] = customer

	lead.Status = model.LeadConverted
	lead.UpdatedAt = now

	cp := *customer
	return &cp, nil
}

// Customers

func (s *MemoryStore) ListCustomers(orgID uint) ([]model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var customers []model.Customer
	for _, customer := range s.customers {
		if customer.OrganizationID == orgID {
			customers = append(customers, *customer)
		}
	}
	sortByID(customers, func(c model.Customer) uint { return c.ID })
	return customers, nil
}

func (s *MemoryStore) GetCustomerByID(id, orgID uint) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok || customer.OrganizationID != orgID {
		return nil, apperr.NotFound("customer")
	}
	cp := *customer
	return &cp, nil
}

func (s *MemoryStore) CreateCustomer(customer *model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.customers {
		if existing.OrganizationID == customer.OrganizationID && existing.Email == customer.Email {
			return apperr.Conflict("customer email already exists")
		}
	}
	customer.ID = s.allocID("customer")
	if customer.Status == "" {
		customer.Status = model.CustomerActive
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	cp := *customer
	s.customers[customer.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateCustomer(id, orgID uint, updates map[string]interface{}) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok || customer.OrganizationID != orgID {
		return nil, nil
	}
	for key, value := range updates {
		switch key {
		case "name":
			customer.Name, _ = value.(string)
		case "email":
			customer.Email, _ = value.(string)
		case "phone":
			customer.Phone, _ = value.(string)
		case "company":
			customer.Company, _ = value.(string)
		case "status":
			customer.Status, _ = value.(string)
		case "value":
			if v, ok := value.(float64); ok {
				customer.Value = v
			}
		case "assigned_to_id":
			if assignee, ok := value.(*uint); ok {
				customer.AssignedToID = assignee
			}
		}
	}
	customer.UpdatedAt = time.Now()
	cp := *customer
	return &cp, nil
}

// Deals

func (s *MemoryStore) ListDeals(orgID uint) ([]model.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deals []model.Deal
	for _, deal := range s.deals {
		if deal.OrganizationID == orgID {
			deals = append(deals, *deal)
		}
	}
	sortByID(deals, func(d model.Deal) uint { return d.ID })
	return deals, nil
}

func (s *MemoryStore) GetDealByID(id, orgID uint) (*model.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deal, ok := s.deals[id]
	if !ok || deal.OrganizationID != orgID {
		return nil, apperr.NotFound("deal")
	}
	cp := *deal
	return &cp, nil
}

func (s *MemoryStore) CreateDeal(deal *model.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deal.ID = s.allocID("deal")
	if deal.Stage == "" {
		deal.Stage = model.DealProspecting
	}
	deal.CreatedAt = time.Now()
	deal.UpdatedAt = deal.CreatedAt
	cp := *deal
	s.deals[deal.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateDeal(id, orgID uint, updates map[string]interface{}) (*model.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deal, ok := s.deals[id]
	if !ok || deal.OrganizationID != orgID {
		return nil, nil
	}
	if stage, ok := updates["stage"].(string); ok && stage != deal.Stage {
		if !model.CanTransitionDeal(deal.Stage, stage) {
			return nil, apperr.Validation("invalid deal stage transition", map[string]string{
				"from": deal.Stage, "to": stage,
			})
		}
	}
	for key, value := range updates {
		switch key {
		case "title":
			deal.Title, _ = value.(string)
		case "stage":
			deal.Stage, _ = value.(string)
		case "value":
			if v, ok := value.(float64); ok {
				deal.Value = v
			}
		case "probability":
			if p, ok := value.(int); ok {
				deal.Probability = p
			}
		case "customer_id":
			if customerID, ok := value.(*uint); ok {
				deal.CustomerID = customerID
			}
		case "assigned_to_id":
			if assignee, ok := value.(*uint); ok {
				deal.AssignedToID = assignee
			}
		}
	}
	deal.UpdatedAt = time.Now()
	cp := *deal
	return &cp, nil
}

// Activities

func (s *MemoryStore) ListActivities(orgID uint) ([]model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var activities []model.Activity
	for _, activity := range s.activities {
		if activity.OrganizationID == orgID {
			activities = append(activities, *activity)
		}
	}
	sortByID(activities, func(a model.Activity) uint { return a.ID })
	return activities, nil
}

func (s *MemoryStore) GetActivityByID(id, orgID uint) (*model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.activities[id]
	if !ok || activity.OrganizationID != orgID {
		return nil, apperr.NotFound("activity")
	}
	cp := *activity
	return &cp, nil
}

func (s *MemoryStore) CreateActivity(activity *model.Activity) error {
	if activity.Related != nil && !activity.Related.Valid() {
		return apperr.Validation("activity must reference exactly one of customer, lead or deal", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	activity.ID = s.allocID("activity")
	if activity.Status == "" {
		activity.Status = model.ActivityPending
	}
	activity.CreatedAt = time.Now()
	activity.UpdatedAt = activity.CreatedAt
	cp := *activity
	s.activities[activity.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateActivity(id, orgID uint, updates map[string]interface{}) (*model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.activities[id]
	if !ok || activity.OrganizationID != orgID {
		return nil, nil
	}
	for key, value := range updates {
		switch key {
		case "subject":
			activity.Subject, _ = value.(string)
		case "description":
			activity.Description, _ = value.(string)
		case "status":
			activity.Status, _ = value.(string)
		case "assigned_to_id":
			if assignee, ok := value.(uint); ok {
				activity.AssignedToID = assignee
			}
		}
	}
	activity.UpdatedAt = time.Now()
	cp := *activity
	return &cp, nil
}

// Sales data

func (s *MemoryStore) ListSalesData(orgID uint) ([]model.SalesData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data []model.SalesData
	for _, sd := range s.salesData {
		if sd.OrganizationID == orgID {
			data = append(data, *sd)
		}
	}
	sort.Slice(data, func(i, j int) bool {
		if data[i].Year != data[j].Year {
			return data[i].Year < data[j].Year
		}
		return data[i].Month < data[j].Month
	})
	return data, nil
}

func (s *MemoryStore) UpsertSalesData(data *model.SalesData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.salesData {
		if existing.OrganizationID == data.OrganizationID &&
			existing.Year == data.Year && existing.Month == data.Month {
			existing.Revenue = data.Revenue
			existing.DealsCount = data.DealsCount
			existing.NewCustomers = data.NewCustomers
			existing.UpdatedAt = time.Now()
			data.ID = existing.ID
			return nil
		}
	}
	data.ID = s.allocID("sales_data")
	data.CreatedAt = time.Now()
	data.UpdatedAt = data.CreatedAt
	cp := *data
	s.salesData[data.ID] = &cp
	return nil
}

// Aggregates

func (s *MemoryStore) CountUsers(orgID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, user := range s.users {
		if user.OrganizationID == orgID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) CountCustomers(orgID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, customer := range s.customers {
		if customer.OrganizationID == orgID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) CountLeads(orgID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, lead := range s.leads {
		if lead.OrganizationID == orgID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) CountDeals(orgID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, deal := range s.deals {
		if deal.OrganizationID == orgID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) SumCustomerValue(orgID uint) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, customer := range s.customers {
		if customer.OrganizationID == orgID {
			total += customer.Value
		}
	}
	return total, nil
}

func (s *MemoryStore) SumDealValue(orgID uint) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, deal := range s.deals {
		if deal.OrganizationID == orgID {
			total += deal.Value
		}
	}
	return total, nil
}

func (s *MemoryStore) GetUsageCounts(orgID uint) (*UsageCounts, error) {
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

func sortByID[T any](items []T, id func(T) uint) {
	sort.Slice(items, func(i, j int) bool {
		return id(items[i]) < id(items[j])
	})
}
