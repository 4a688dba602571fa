package system

import (
	"encoding/json"

	"go-fraud-console/internal/features/analytics"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

type WebSocketController struct {
	hub       *LiveHub
	analytics analytics.AnalyticsService
	logger    *zap.Logger
}

func NewWebSocketController(hub *LiveHub, analyticsService analytics.AnalyticsService, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{hub: hub, analytics: analyticsService, logger: logger.Named("live")}
}

// HandleWebSocket sends the latest snapshot, then every broadcast, until the
// page goes away. Incoming messages are ignored.
func (h *WebSocketController) HandleWebSocket(c *websocket.Conn) {
	client := h.hub.register()
	defer h.hub.unregister(client)

	if snap, ok := h.analytics.Live(); ok {
		if msg, err := json.Marshal(snap); err == nil {
			client.send <- msg
		}
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-client.send:
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Debug("Live client write failed", zap.Error(err))
				return
			}
		case <-closed:
			return
		}
	}
}
