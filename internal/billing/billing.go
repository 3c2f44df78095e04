// Package billing holds the simulated subscription layer: a static plan
// table, limit checks against usage, and plan/status changes persisted
// through the store. No payment gateway is invoked; subscription ids are
// fabricated locally.
package billing

import (
	"fmt"
	"time"

	"github.com/tukue/CRM-app-saas/internal/model"
	"github.com/tukue/CRM-app-saas/internal/store"
	"github.com/tukue/CRM-app-saas/prometheus"
)

// Plan is a subscription tier. UserLimit of -1 means unlimited.
type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MonthlyPrice float64  `json:"monthly_price"`
	Features     []string `json:"features"`
	UserLimit    int      `json:"user_limit"`
	StorageLimit string   `json:"storage_limit"`
}

// UsageStats are the per-organization usage numbers reported to clients and
// compared against plan limits.
type UsageStats struct {
	Users       int64  `json:"users"`
	Customers   int64  `json:"customers"`
	Leads       int64  `json:"leads"`
	Deals       int64  `json:"deals"`
	StorageUsed string `json:"storage_used"`
}

// LimitCheck is the result of comparing usage against a plan's limits.
type LimitCheck struct {
	WithinLimits bool     `json:"within_limits"`
	Violations   []string `json:"violations"`
}

// SubscriptionResult is the typed outcome of a subscription operation.
// Recoverable failures (unknown plan) are reported here, not as errors.
type SubscriptionResult struct {
	Success        bool   `json:"success"`
	Error          string `json:"error,omitempty"`
	SubscriptionID string `json:"subscription_id,omitempty"`
	Plan           *Plan  `json:"plan,omitempty"`
}

// plans is the fixed plan table. Prices are display values; there is no
// payment integration.
var plans = map[string]Plan{
	"starter": {
		ID:           "starter",
		Name:         "Starter",
		MonthlyPrice: 29,
		Features:     []string{"Up to 5 users", "1,000 contacts", "Email support"},
		UserLimit:    5,
		StorageLimit: "1 GB",
	},
	"professional": {
		ID:           "professional",
		Name:         "Professional",
		MonthlyPrice: 99,
		Features:     []string{"Up to 25 users", "25,000 contacts", "Priority support", "Sales analytics"},
		UserLimit:    25,
		StorageLimit: "25 GB",
	},
	"enterprise": {
		ID:           "enterprise",
		Name:         "Enterprise",
		MonthlyPrice: 299,
		Features:     []string{"Unlimited users", "Unlimited contacts", "Dedicated support", "Custom integrations"},
		UserLimit:    -1,
		StorageLimit: "Unlimited",
	},
}

// Service performs subscription operations against the store.
type Service struct {
	store store.Store
}

// NewService creates a billing service backed by the given store.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// ListPlans returns the plan table in stable order.
func ListPlans() []Plan {
	return []Plan{plans["starter"], plans["professional"], plans["enterprise"]}
}

// GetPlan looks up a plan by id.
func GetPlan(planID string) (Plan, bool) {
	plan, ok := plans[planID]
	return plan, ok
}

// CreateSubscription activates planID for the organization. An unknown plan
// id is a typed failure and performs no storage mutation.
func (s *Service) CreateSubscription(orgID uint, planID string) (*SubscriptionResult, error) {
	plan, ok := plans[planID]
	if !ok {
		return &SubscriptionResult{Success: false, Error: "Invalid plan selected"}, nil
	}

	org, err := s.store.GetOrganizationByID(orgID)
	if err != nil {
		return nil, err
	}
	if !model.CanTransitionSubscription(org.SubscriptionStatus, model.SubscriptionActive) &&
		org.SubscriptionStatus != model.SubscriptionActive {
		return &SubscriptionResult{
			Success: false,
			Error:   fmt.Sprintf("cannot activate a %s subscription", org.SubscriptionStatus),
		}, nil
	}

	subscriptionID := fmt.Sprintf("sub_%d_%d", time.Now().UnixMilli(), orgID)
	_, err = s.store.UpdateOrganization(orgID, map[string]interface{}{
		"subscription_plan":   plan.ID,
		"subscription_status": model.SubscriptionActive,
		"subscription_id":     subscriptionID,
	})
	if err != nil {
		return nil, err
	}

	prometheus.RecordSubscriptionOperation("create", plan.ID)
	s.refreshActiveOrganizations()
	return &SubscriptionResult{
		Success:        true,
		SubscriptionID: subscriptionID,
		Plan:           &plan,
	}, nil
}

// CancelSubscription resets the organization to the starter plan with a
// cancelled status.
func (s *Service) CancelSubscription(orgID uint) (*SubscriptionResult, error) {
	org, err := s.store.GetOrganizationByID(orgID)
	if err != nil {
		return nil, err
	}
	if !model.CanTransitionSubscription(org.SubscriptionStatus, model.SubscriptionCancelled) {
		return &SubscriptionResult{
			Success: false,
			Error:   fmt.Sprintf("cannot cancel a %s subscription", org.SubscriptionStatus),
		}, nil
	}

	_, err = s.store.UpdateOrganization(orgID, map[string]interface{}{
		"subscription_plan":   "starter",
		"subscription_status": model.SubscriptionCancelled,
		"subscription_id":     "",
	})
	if err != nil {
		return nil, err
	}

	prometheus.RecordSubscriptionOperation("cancel", org.SubscriptionPlan)
	s.refreshActiveOrganizations()
	return &SubscriptionResult{Success: true}, nil
}

// refreshActiveOrganizations updates the active-organizations gauge after a
// subscription change. A count failure only leaves the gauge stale.
func (s *Service) refreshActiveOrganizations() {
	if count, err := s.store.CountActiveOrganizations(); err == nil {
		prometheus.UpdateActiveOrganizations(int(count))
	}
}

// GetUsageStats reads aggregate counts for the organization. Storage used is
// a placeholder value; nothing in the system measures real storage.
func (s *Service) GetUsageStats(orgID uint) (*UsageStats, error) {
	counts, err := s.store.GetUsageCounts(orgID)
	if err != nil {
		return nil, err
	}
	return &UsageStats{
		Users:       counts.Users,
		Customers:   counts.Customers,
		Leads:       counts.Leads,
		Deals:       counts.Deals,
		StorageUsed: "0.2 GB",
	}, nil
}

// CheckPlanLimits compares usage against plan limits. A UserLimit of -1
// means unlimited and never violates.
func CheckPlanLimits(plan Plan, usage UsageStats) LimitCheck {
	var violations []string
	if plan.UserLimit > 0 && usage.Users > int64(plan.UserLimit) {
		violations = append(violations, fmt.Sprintf(
			"user count %d exceeds plan limit %d", usage.Users, plan.UserLimit))
	}
	return LimitCheck{
		WithinLimits: len(violations) == 0,
		Violations:   violations,
	}
}
