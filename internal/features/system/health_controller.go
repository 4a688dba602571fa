package system

import (
	"go-fraud-console/internal/config"
	"go-fraud-console/internal/session"

	"github.com/gofiber/fiber/v2"
)

type HealthController struct {
	sessions session.Reader
	baseURL  string
}

func NewHealthController(sessions session.Reader, cfg *config.Config) *HealthController {
	return &HealthController{sessions: sessions, baseURL: cfg.APIBaseURL}
}

func (c *HealthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

// Ready is 503 until the session snapshot has been restored.
func (c *HealthController) Ready(ctx *fiber.Ctx) error {
	state := c.sessions.State()
	if state.Loading {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "loading"})
	}
	return ctx.JSON(fiber.Map{
		"status":        "ready",
		"authenticated": state.Authenticated,
		"api_base_url":  c.baseURL,
	})
}
