package auth

import (
	"strings"

	"go-fraud-console/internal/middleware"
	"go-fraud-console/internal/shell"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	AuthService AuthService
}

func NewAuthController(authService AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// ShowLogin renders the login form, or sends an authenticated operator home.
func (ctrl *AuthController) ShowLogin(ctx *fiber.Ctx) error {
	state := ctrl.AuthService.State()
	if state.Loading {
		ctx.Set(fiber.HeaderRetryAfter, "1")
		return ctx.Status(fiber.StatusServiceUnavailable).Render("waiting", fiber.Map{"AppTitle": shell.AppTitle})
	}
	if state.Authenticated {
		return ctx.Redirect("/", fiber.StatusFound)
	}
	return renderLogin(ctx, fiber.StatusOK, "", "")
}

// Login posts the credentials through the session. A failure re-renders the
// form with the server's message; nothing about the session changes.
func (ctrl *AuthController) Login(ctx *fiber.Ctx) error {
	var req LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return renderLogin(ctx, fiber.StatusBadRequest, "", "Invalid request body")
	}

	result := ctrl.AuthService.Login(ctx.UserContext(), strings.TrimSpace(req.Username), req.Password)
	if !result.Success {
		return renderLogin(ctx, fiber.StatusUnauthorized, req.Username, result.Error)
	}
	return ctx.Redirect("/", fiber.StatusSeeOther)
}

// Logout always ends up on the login page, whatever the API said.
func (ctrl *AuthController) Logout(ctx *fiber.Ctx) error {
	ctrl.AuthService.Logout(ctx.UserContext())
	return ctx.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
}

func renderLogin(ctx *fiber.Ctx, status int, username, message string) error {
	return ctx.Status(status).Render("login", fiber.Map{
		"AppTitle":  shell.AppTitle,
		"FormToken": shell.FormToken(""),
		"Username":  username,
		"Error":     message,
	})
}
