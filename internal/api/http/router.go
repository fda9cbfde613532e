package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/http/handlers"
	"github.com/spec-kit/shift-scheduler/internal/auth"
	"github.com/spec-kit/shift-scheduler/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Schedules      *handlers.SchedulesHandler
	Staff          *handlers.StaffHandler
	Events         *handlers.EventsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/external/callback", cfg.Auth.ExternalCallback)

	schedules := api.Group("/schedules", cfg.AuthMiddleware.Handle)
	schedules.Get("/mine", auth.RequireAuthenticated(), cfg.Schedules.Mine)
	schedules.Get("/all", auth.RequireRole(domain.RoleAdmin), cfg.Schedules.All)
	schedules.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Schedules.Create)
	schedules.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Schedules.Update)
	schedules.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Schedules.Delete)

	staff := api.Group("/staff", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	staff.Get("/", cfg.Staff.List)
	staff.Post("/", cfg.Staff.Create)
	staff.Delete("/:id", cfg.Staff.Delete)

	api.Get("/events", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Events.Stream)
}
