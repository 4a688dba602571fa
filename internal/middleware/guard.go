package middleware

import (
	"go-fraud-console/internal/models"
	"go-fraud-console/internal/session"

	"github.com/gofiber/fiber/v2"
)

// AdminKey is the fiber.Ctx local holding the *models.Admin of the session.
const AdminKey = "admin"

const LoginPath = "/login"

// RequireSession admits a request only once the session has finished loading
// and is authenticated. While loading it answers 503 with a waiting page that
// retries; unauthenticated requests are redirected to the login page.
func RequireSession(reader session.Reader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := reader.State()

		if state.Loading {
			c.Set(fiber.HeaderRetryAfter, "1")
			c.Set(fiber.HeaderCacheControl, "no-store")
			return c.Status(fiber.StatusServiceUnavailable).Render("waiting", fiber.Map{
				"AppTitle": "I4C Admin Portal",
			})
		}

		if !state.Authenticated || state.User == nil {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}

		c.Locals(AdminKey, state.User)
		return c.Next()
	}
}

// CurrentAdmin returns the admin stored by RequireSession, or nil.
func CurrentAdmin(c *fiber.Ctx) *models.Admin {
	admin, _ := c.Locals(AdminKey).(*models.Admin)
	return admin
}
