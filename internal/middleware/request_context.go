package middleware

import (
	"go-fraud-console/internal/apiclient"

	"github.com/gofiber/fiber/v2"
)

// RequestContext carries the request id assigned by fiber's requestid
// middleware into the user context, so outbound API calls reuse it as their
// X-Request-ID.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals("requestid").(string); ok && id != "" {
			c.SetUserContext(apiclient.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}
