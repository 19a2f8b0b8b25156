package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parcel-delivery-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Parcels  *handlers.ParcelsHandler
	Couriers *handlers.CouriersHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	parcels := api.Group("/parcels")
	parcels.Post("/", cfg.Parcels.Create)
	parcels.Get("/track/:tracking_number", cfg.Parcels.Track)
	parcels.Post("/:tracking_number/assign-courier", cfg.Parcels.AssignCourier)
	parcels.Post("/:tracking_number/update", cfg.Parcels.AddUpdate)

	couriers := api.Group("/couriers")
	couriers.Get("/", cfg.Couriers.ListAvailable)
	couriers.Post("/", cfg.Couriers.Create)
}
