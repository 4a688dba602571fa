package dashboard

import (
	"go-fraud-console/internal/common/api"
	"go-fraud-console/internal/middleware"
	"go-fraud-console/internal/session"

	"github.com/gofiber/fiber/v2"
)

type DashboardApi struct {
	DashboardController *DashboardController
	Sessions            session.Reader
}

func NewDashboardApi(dashboardController *DashboardController, sessions session.Reader) api.Route {
	return &DashboardApi{
		DashboardController: dashboardController,
		Sessions:            sessions,
	}
}

func (api *DashboardApi) Setup(app *fiber.App) {
	app.Get("/", middleware.RequireSession(api.Sessions), api.DashboardController.Show)
}
