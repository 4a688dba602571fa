package shell

import (
	"go-fraud-console/internal/middleware"
	"go-fraud-console/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

const layout = "layouts/main"

// Page adds the layout's data to a view's own data.
func Page(c *fiber.Ctx, title string, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	admin := middleware.CurrentAdmin(c)

	data["AppTitle"] = AppTitle
	data["Title"] = title
	data["Nav"] = Navigation(c.Path())
	data["Admin"] = admin
	data["DisplayName"] = admin.DisplayName()
	data["FormToken"] = FormToken(admin.GetUsername())
	if flash := TakeFlash(c); flash != nil {
		data["Flash"] = flash
	}
	return data
}

// Render writes view inside the main layout with status.
func Render(c *fiber.Ctx, status int, view, title string, data fiber.Map) error {
	return c.Status(status).Render(view, Page(c, title, data), layout)
}

// FormToken signs a form token for subject; an empty string means the token
// could not be generated and the form will be rejected on submit.
func FormToken(subject string) string {
	token, err := utils.GenerateFormToken(subject)
	if err != nil {
		return ""
	}
	return token
}
