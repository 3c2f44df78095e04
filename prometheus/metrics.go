package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Counter metrics
var (
	// Login counter
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Registration counter
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_register_total",
			Help: "Total number of user registrations",
		},
	)

	// Lead conversion counter
	LeadConvertedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_leads_converted_total",
			Help: "Total number of leads converted to customers",
		},
	)

	// Entity operation counter
	EntityOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_entity_operations_total",
			Help: "Total number of CRM entity operations",
		},
		[]string{"entity", "operation"}, // entity = "lead", "customer", ...; operation = "create", "update", ...
	)

	// Subscription operation counter
	SubscriptionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_subscription_operations_total",
			Help: "Total number of subscription operations",
		},
		[]string{"operation", "plan"},
	)

	// Error counter by type
	ErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_errors_total",
			Help: "Total number of request errors",
		},
		[]string{"type"}, // type = "validation", "not_found", "unauthenticated", "unauthorized", "rate_limited", "conflict", "internal"
	)

	// Rate limited request counter
	RateLimitedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"route"},
	)
)

// Histogram metrics
var (
	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation = "query", "insert", "update", "aggregate"
	)

	// Dashboard aggregation duration
	DashboardDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_dashboard_duration_seconds",
			Help:    "Duration of dashboard metric aggregation in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"organization_id"},
	)
)

// Gauge metrics
var (
	// Active organizations
	ActiveOrganizationsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "crm_active_organizations",
			Help: "Number of organizations with an active subscription",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crm_info",
			Help: "Information about the CRM service",
		},
		[]string{"version"},
	)

	// Users per organization
	UsersPerOrganizationGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crm_users_per_organization",
			Help: "Number of users per organization",
		},
		[]string{"organization_id"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(LeadConvertedCounter)
	prometheus.MustRegister(EntityOperationCounter)
	prometheus.MustRegister(SubscriptionCounter)
	prometheus.MustRegister(ErrorCounter)
	prometheus.MustRegister(RateLimitedCounter)

	// Register histograms
	prometheus.MustRegister(DBOperationDuration)
	prometheus.MustRegister(DashboardDuration)

	// Register gauges
	prometheus.MustRegister(ActiveOrganizationsGauge)
	prometheus.MustRegister(InfoGauge)
	prometheus.MustRegister(UsersPerOrganizationGauge)

	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// TrackDashboard measures dashboard aggregation duration for an organization
func TrackDashboard(organizationID uint) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DashboardDuration.With(prometheus.Labels{
			"organization_id": strconv.FormatUint(uint64(organizationID), 10),
		}).Observe(duration)
	}
}

// RecordEntityOperation records a CRM entity operation
func RecordEntityOperation(entity, operation string) {
	EntityOperationCounter.With(prometheus.Labels{"entity": entity, "operation": operation}).Inc()
}

// RecordSubscriptionOperation records a subscription operation by plan
func RecordSubscriptionOperation(operation, plan string) {
	SubscriptionCounter.With(prometheus.Labels{"operation": operation, "plan": plan}).Inc()
}

// RecordError records a request error by type
func RecordError(errorType string) {
	ErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordRateLimited records a rate limited request for a route
func RecordRateLimited(route string) {
	RateLimitedCounter.With(prometheus.Labels{"route": route}).Inc()
}

// UpdateActiveOrganizations updates the active organizations gauge
func UpdateActiveOrganizations(count int) {
	ActiveOrganizationsGauge.Set(float64(count))
}

// UpdateUsersPerOrganization updates the users per organization gauge
func UpdateUsersPerOrganization(organizationID uint, count int) {
	UsersPerOrganizationGauge.With(prometheus.Labels{
		"organization_id": strconv.FormatUint(uint64(organizationID), 10),
	}).Set(float64(count))
}
