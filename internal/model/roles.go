package model

// Capability names checked by handlers and middleware.
const (
	CapManageUsers   = "manage_users"
	CapManageBilling = "manage_billing"
	CapManageLeads   = "manage_leads"
	CapManageDeals   = "manage_deals"
	CapViewReports   = "view_reports"
)

// roleCapabilities is the capability set granted to each role. Role-based
// dispatch consults this table once per request instead of comparing role
// strings inline per route.
var roleCapabilities = map[string]map[string]bool{
	RoleAdmin: {
		CapManageUsers:   true,
		CapManageBilling: true,
		CapManageLeads:   true,
		CapManageDeals:   true,
		CapViewReports:   true,
	},
	RoleManager: {
		CapManageLeads: true,
		CapManageDeals: true,
		CapViewReports: true,
	},
	RoleSalesRep: {
		CapManageLeads: true,
		CapManageDeals: true,
	},
	RoleUser: {},
}

// HasCapability reports whether role grants the named capability.
func HasCapability(role, capability string) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	return caps[capability]
}
