package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/api/http/handlers"
	"github.com/spec-kit/auth-gateway/internal/auth"
	"github.com/spec-kit/auth-gateway/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Admin          *handlers.AdminHandler
	Data           *handlers.DataHandler
	AuthMiddleware *auth.Middleware
	Limiter        fiber.Handler
}

// RegisterRoutes wires HTTP routes. Admission runs before authentication on
// every limited group, so invalid-token floods are throttled too; health
// probes bypass both.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth", cfg.Limiter)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	users := app.Group("/users", cfg.Limiter, cfg.AuthMiddleware.Handle)
	users.Get("/me", cfg.Users.Me)

	admin := app.Group("/admin", cfg.Limiter, cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/dashboard", cfg.Admin.Dashboard)

	app.Get("/secure-data", cfg.Limiter, cfg.AuthMiddleware.Handle, cfg.Data.SecureData)

	reports := app.Group("/reports", cfg.Limiter, cfg.AuthMiddleware.Handle)
	reports.Get("/summary", cfg.Data.ReportSummary)
}
