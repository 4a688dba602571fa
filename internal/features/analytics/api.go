package analytics

import (
	"go-fraud-console/internal/common/api"
	"go-fraud-console/internal/middleware"
	"go-fraud-console/internal/session"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsApi struct {
	Controller *AnalyticsController
	Sessions   session.Reader
}

func NewAnalyticsApi(controller *AnalyticsController, sessions session.Reader) api.Route {
	return &AnalyticsApi{Controller: controller, Sessions: sessions}
}

func (a *AnalyticsApi) Setup(app *fiber.App) {
	app.Get("/analytics", middleware.RequireSession(a.Sessions), a.Controller.Show)
}
