package main

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/tukue/CRM-app-saas/internal/billing"
	"github.com/tukue/CRM-app-saas/internal/handler"
	appmiddleware "github.com/tukue/CRM-app-saas/internal/middleware"
	"github.com/tukue/CRM-app-saas/internal/model"
	"github.com/tukue/CRM-app-saas/internal/store"
	"github.com/tukue/CRM-app-saas/pkg/config"
	"github.com/tukue/CRM-app-saas/pkg/database"
	"github.com/tukue/CRM-app-saas/pkg/jwtutil"
	"github.com/tukue/CRM-app-saas/pkg/logger"
	"github.com/tukue/CRM-app-saas/pkg/metrics"
)

func main() {
	// Load configuration
	conf, err := config.Load("crm")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	})
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.Info("Starting CRM service", conf.LogConfig()...)

	// Initialize database connection
	db, err := database.InitDB(&conf.DB)
	if err != nil {
		log.Fatal("Failed to initialize database")
	}

	// Run migrations for CRM models
	if err := database.MigrateModels(store.Models()...); err != nil {
		log.Fatal("Failed to migrate database models")
	}

	// Initialize JWT utility
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      conf.JWT.SigningKey,
		ExpirationHours: conf.JWT.ExpirationHours,
	})

	// Storage variants: PostgreSQL for the commercial API, seeded memory
	// store for the legacy demo routes.
	commercialStore := store.NewGormStore(db)
	demoStore := store.NewSeededMemoryStore()

	commercial := handler.New(commercialStore, billing.NewService(commercialStore), jwt)
	demo := handler.New(demoStore, billing.NewService(demoStore), jwt)

	// Rate limiter with background sweep
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter := appmiddleware.NewRateLimiter(&appmiddleware.RateLimitConfig{
		MaxRequests: conf.RateLimit.MaxRequests,
		Window:      conf.RateLimit.Window,
	})
	limiter.StartSweeper(ctx)

	// Initialize HTTP metrics
	httpMetrics := metrics.NewHTTPMetrics(conf.ServiceName)

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true
	e.Validator = appmiddleware.NewRequestValidator()
	e.HTTPErrorHandler = appmiddleware.ErrorHandler(conf.IsDevelopment())

	// Apply middleware
	e.Use(appmiddleware.RequestID())
	e.Use(logger.Middleware())
	e.Use(httpMetrics.Middleware())
	e.Use(limiter.Middleware(false))

	// Health and metrics endpoints
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))

	// Public auth routes
	e.POST("/api/commercial/register", commercial.Register)
	e.POST("/api/commercial/login", commercial.Login)
	e.GET("/api/commercial/plans", commercial.ListPlans)

	// Legacy demo routes: unauthenticated, pinned to the demo organization
	registerCRMRoutes(e.Group("/api", appmiddleware.DemoOrg()), demo, false)

	// Commercial routes: JWT auth with organization scoping
	registerCRMRoutes(
		e.Group("/api/commercial", appmiddleware.JWTAuth(jwt, commercialStore)),
		commercial, true)

	// Start server
	log.Info("Starting crm-api on port " + conf.Server.Port)
	e.Logger.Fatal(e.Start(":" + conf.Server.Port))
}

// registerCRMRoutes wires the resource endpoints onto a group. Authenticated
// groups additionally expose user management and the capability-guarded
// role-change and billing routes.
func registerCRMRoutes(g *echo.Group, h *handler.Handler, authenticated bool) {
	g.GET("/leads", h.ListLeads)
	g.POST("/leads", h.CreateLead)
	g.GET("/leads/:id", h.GetLead)
	g.PATCH("/leads/:id", h.UpdateLead)
	g.POST("/leads/:id/convert", h.ConvertLead)

	g.GET("/customers", h.ListCustomers)
	g.POST("/customers", h.CreateCustomer)
	g.GET("/customers/:id", h.GetCustomer)
	g.PATCH("/customers/:id", h.UpdateCustomer)

	g.GET("/deals", h.ListDeals)
	g.POST("/deals", h.CreateDeal)
	g.GET("/deals/:id", h.GetDeal)
	g.PATCH("/deals/:id", h.UpdateDeal)

	g.GET("/activities", h.ListActivities)
	g.POST("/activities", h.CreateActivity)
	g.GET("/activities/:id", h.GetActivity)
	g.PATCH("/activities/:id", h.UpdateActivity)

	g.GET("/sales-data", h.ListSalesData)
	g.PUT("/sales-data", h.UpsertSalesData)

	g.GET("/dashboard/metrics", h.GetDashboardMetrics)

	if !authenticated {
		return
	}

	g.GET("/me", h.Me)
	g.GET("/organization", h.GetOrganization)
	g.PATCH("/organization", h.UpdateOrganization)

	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUser)
	g.POST("/users", h.CreateUser,
		appmiddleware.RequireCapability(model.CapManageUsers))
	g.PUT("/users/:id/role", h.UpdateUserRole,
		appmiddleware.RequireCapability(model.CapManageUsers))

	g.POST("/billing/subscribe", h.CreateSubscription,
		appmiddleware.RequireCapability(model.CapManageBilling))
	g.POST("/billing/cancel", h.CancelSubscription,
		appmiddleware.RequireCapability(model.CapManageBilling))
	g.GET("/billing/usage", h.GetUsage)
}
