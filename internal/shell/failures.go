package shell

import (
	"context"
	"errors"

	"go-fraud-console/internal/apiclient"
	"go-fraud-console/internal/middleware"
	"go-fraud-console/internal/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionEnder ends the local session.
type SessionEnder interface {
	Logout(ctx context.Context)
}

// Failures turns report API errors into pages. Nothing here retries.
type Failures struct {
	sessions SessionEnder
	logger   *zap.Logger
}

func NewFailures(store *session.Store, logger *zap.Logger) *Failures {
	return newFailures(store, logger)
}

func newFailures(sessions SessionEnder, logger *zap.Logger) *Failures {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Failures{sessions: sessions, logger: logger.Named("views")}
}

// Expired handles a 401 from the API: the remote credential is gone, so the
// local session ends too and the operator is sent to the login page. It
// reports false for any other error.
func (f *Failures) Expired(c *fiber.Ctx, err error) (bool, error) {
	if !errors.Is(err, apiclient.ErrUnauthorized) {
		return false, nil
	}
	f.logger.Warn("Report API session expired, logging out", zap.Error(err))
	f.sessions.Logout(c.UserContext())
	return true, c.Redirect(middleware.LoginPath, fiber.StatusFound)
}

// Render logs a failed load of what and renders the inert error view.
func (f *Failures) Render(c *fiber.Ctx, what string, err error) error {
	if handled, redirectErr := f.Expired(c, err); handled {
		return redirectErr
	}

	f.logger.Error("Failed to load "+what,
		zap.String("path", c.Path()),
		zap.Error(err))

	message := apiclient.Message(err)
	if message == "" {
		message = "The report service could not be reached."
	}
	return Render(c, fiber.StatusBadGateway, "error", "Error", fiber.Map{
		"Heading": "Failed to load " + what,
		"Message": message,
	})
}

// Log records a failed action that is reported through a flash message.
func (f *Failures) Log(c *fiber.Ctx, action string, err error) {
	f.logger.Error("Failed to "+action,
		zap.String("path", c.Path()),
		zap.Error(err))
}
