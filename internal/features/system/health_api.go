package system

import (
	"go-fraud-console/internal/common/api"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthApi struct {
	controller *HealthController
	registry   *prometheus.Registry
}

func NewHealthApi(controller *HealthController, registry *prometheus.Registry) api.Route {
	return &HealthApi{
		controller: controller,
		registry:   registry,
	}
}

// Setup registers the operational routes. None of them need a session.
func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/health", h.controller.Health)
	app.Get("/ready", h.controller.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})))
}
