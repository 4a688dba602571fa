package analytics

import (
	"go-fraud-console/internal/shell"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsController struct {
	AnalyticsService AnalyticsService
	Failures         *shell.Failures
}

func NewAnalyticsController(analyticsService AnalyticsService, failures *shell.Failures) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService, Failures: failures}
}

func (ctrl *AnalyticsController) Show(ctx *fiber.Ctx) error {
	analytics, err := ctrl.AnalyticsService.Load(ctx.UserContext())
	if err != nil {
		return ctrl.Failures.Render(ctx, "analytics", err)
	}

	return shell.Render(ctx, fiber.StatusOK, "analytics", "Analytics", fiber.Map{
		"Analytics": analytics,
	})
}
