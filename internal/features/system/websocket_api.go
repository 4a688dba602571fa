package system

import (
	"go-fraud-console/internal/common/api"
	"go-fraud-console/internal/middleware"
	"go-fraud-console/internal/session"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type WebSocketApi struct {
	Controller *WebSocketController
	Sessions   session.Reader
}

func NewWebSocketApi(controller *WebSocketController, sessions session.Reader) api.Route {
	return &WebSocketApi{
		Controller: controller,
		Sessions:   sessions,
	}
}

func (h *WebSocketApi) Setup(app *fiber.App) {
	app.Get("/ws/live", middleware.RequireSession(h.Sessions), upgradeOnly, websocket.New(h.Controller.HandleWebSocket))
}

func upgradeOnly(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
