package dashboard

import (
	"go-fraud-console/internal/shell"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	DashboardService DashboardService
	Failures         *shell.Failures
}

func NewDashboardController(dashboardService DashboardService, failures *shell.Failures) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
		Failures:         failures,
	}
}

// Show renders the dashboard from one fresh fetch. Failures are not retried.
func (ctrl *DashboardController) Show(ctx *fiber.Ctx) error {
	dashboard, err := ctrl.DashboardService.Load(ctx.UserContext())
	if err != nil {
		return ctrl.Failures.Render(ctx, "dashboard", err)
	}

	return shell.Render(ctx, fiber.StatusOK, "dashboard", "Dashboard", fiber.Map{
		"Dashboard": dashboard,
	})
}
