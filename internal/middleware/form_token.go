package middleware

import (
	"go-fraud-console/internal/session"
	"go-fraud-console/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	FormTokenField  = "_token"
	FormTokenHeader = "X-Form-Token"
)

// VerifyFormToken rejects state-changing requests whose form token is missing,
// expired, or issued to a different session than the current one.
func VerifyFormToken(reader session.Reader, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet || c.Method() == fiber.MethodHead {
			return c.Next()
		}

		token := c.FormValue(FormTokenField)
		if token == "" {
			token = c.Get(FormTokenHeader)
		}

		subject := ""
		if state := reader.State(); state.Authenticated && state.User != nil {
			subject = state.User.Username
		}

		if _, err := utils.ValidateFormToken(token, subject); err != nil {
			logger.Warn("Rejected form submission",
				zap.String("path", c.Path()),
				zap.Error(err))
			return fiber.NewError(fiber.StatusForbidden, "This form has expired. Reload the page and try again.")
		}
		return c.Next()
	}
}
