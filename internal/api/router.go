package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/onevoker/TimeTracker/docs"
	"github.com/onevoker/TimeTracker/internal/api/handler"
	"github.com/onevoker/TimeTracker/internal/api/middleware"
	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
)

// Deps carries everything the router needs. It is assembled in main.
type Deps struct {
	Log zerolog.Logger

	Tokens middleware.TokenVerifier
	Claims middleware.ClaimsMapper

	Auth     ports.AuthService
	Users    ports.UserService
	Projects ports.ProjectService
	Records  ports.RecordService
	Roles    ports.RoleService
	Verifier ports.Verifier
	Activity ports.ActivityRepository

	// Health lists the dependencies checked by GET /health/ready.
	Health map[string]handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.Metrics())
	e.Use(middleware.Authenticate(d.Tokens, d.Claims))

	asUser := middleware.RequireRole(domain.RoleUser)
	asAdmin := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Users ---
	userHandler := handler.NewUserHandler(d.Users, d.Verifier)
	e.GET("/users", userHandler.List, asUser)
	e.GET("/users/:id", userHandler.Get, asUser)
	e.GET("/users/:id/records", userHandler.Records, asUser)
	e.GET("/users/:id/projects", userHandler.Projects, asUser)
	e.PUT("/users/:id", userHandler.Update, asUser)
	e.DELETE("/users/:id", userHandler.Delete, asUser)

	// --- Projects ---
	projectHandler := handler.NewProjectHandler(d.Projects)
	e.POST("/projects", projectHandler.Create, asAdmin)
	e.GET("/projects", projectHandler.List, asUser)
	e.GET("/projects/:id", projectHandler.Get, asUser)
	e.GET("/projects/:id/users", projectHandler.Members, asUser)
	e.PUT("/projects/:id", projectHandler.Update, asAdmin)
	e.DELETE("/projects/:id", projectHandler.Delete, asAdmin)
	e.POST("/projects/:projectId/users/:userId", projectHandler.AddUser, asAdmin)
	e.DELETE("/projects/:projectId/users/:userId", projectHandler.RemoveUser, asAdmin)

	// --- Records ---
	recordHandler := handler.NewRecordHandler(d.Records, d.Verifier)
	e.POST("/records/projects/:projectId/users/:userId", recordHandler.Create, asUser)
	e.GET("/records", recordHandler.List, asAdmin)
	e.GET("/records/between-dates", recordHandler.Between, asAdmin)
	e.GET("/records/projects/:projectId/between-dates", recordHandler.BetweenForProject, asUser)
	e.GET("/records/projects/:projectId/users/:userId/between-dates", recordHandler.BetweenForProjectUser, asUser)
	e.GET("/records/users/:userId/between-dates", recordHandler.BetweenForUser, asUser)
	e.GET("/records/:id", recordHandler.Get, asUser)
	e.PUT("/records/:id", recordHandler.Update, asUser)
	e.DELETE("/records/:id", recordHandler.Delete, asUser)

	// --- Admin ---
	adminHandler := handler.NewAdminHandler(d.Roles, d.Activity)
	e.POST("/admin/add-role", adminHandler.AddRole, asAdmin)
	e.POST("/admin/create-user-with-role", adminHandler.CreateUserWithRole, asAdmin)
	e.POST("/admin/roles", adminHandler.CreateRole, asAdmin)
	e.GET("/admin/roles", adminHandler.ListRoles, asAdmin)
	e.GET("/admin/activity", adminHandler.Activity, asAdmin)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Health)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
