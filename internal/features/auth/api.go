package auth

import (
	"go-fraud-console/internal/common/api"
	"go-fraud-console/internal/middleware"
	"go-fraud-console/internal/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthApi struct {
	controller *AuthController
	sessions   session.Reader
	logger     *zap.Logger
}

func NewAuthApi(controller *AuthController, sessions session.Reader, logger *zap.Logger) api.Route {
	return &AuthApi{
		controller: controller,
		sessions:   sessions,
		logger:     logger,
	}
}

// Setup registers the login and logout routes. Login carries a form token;
// logout does not, so a stale page can always end the session.
func (h *AuthApi) Setup(app *fiber.App) {
	verify := middleware.VerifyFormToken(h.sessions, h.logger)

	app.Get(middleware.LoginPath, h.controller.ShowLogin)
	app.Post(middleware.LoginPath, verify, h.controller.Login)
	app.Post("/logout", h.controller.Logout)
}
