package shell_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-fraud-console/internal/apiclient"
	"go-fraud-console/internal/models"
	"go-fraud-console/internal/shell"
	"go-fraud-console/internal/views"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIsActive(t *testing.T) {
	tests := []struct {
		path, href string
		want       bool
	}{
		{"/", "/", true},
		{"/reports", "/", false},
		{"/reports", "/reports", true},
		{"/reports/42", "/reports", true},
		{"/analytics", "/reports", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shell.IsActive(tt.path, tt.href), "%s vs %s", tt.path, tt.href)
	}
}

func TestNavigation_MarksOneItem(t *testing.T) {
	items := shell.Navigation("/reports/7")
	require.Len(t, items, 3)

	var active []string
	for _, item := range items {
		if item.Active {
			active = append(active, item.Name)
		}
	}
	assert.Equal(t, []string{"Reports"}, active)
}

func TestFlash_RoundTrip(t *testing.T) {
	app := fiber.New()
	app.Post("/set", func(c *fiber.Ctx) error {
		shell.SetFlash(c, shell.FlashSuccess, "Status updated successfully")
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/take", func(c *fiber.Ctx) error {
		flash := shell.TakeFlash(c)
		if flash == nil {
			return c.SendString("none")
		}
		return c.SendString(string(flash.Kind) + ":" + flash.Message)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/set", nil))
	require.NoError(t, err)
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/take", nil)
	req.AddCookie(cookies[0])
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "success:Status updated successfully", string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/take", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "none", string(body))
}

func TestTakeFlash_RejectsUnknownKind(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Nil(t, shell.TakeFlash(c))
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "console_flash", Value: "warning%7Chello"})
	_, err := app.Test(req)
	require.NoError(t, err)
}

func TestRenderNote(t *testing.T) {
	html := string(shell.RenderNote("**Called** the victim\nsecond line"))
	assert.Contains(t, html, "<strong>Called</strong>")
	assert.Contains(t, html, "<br")

	unsafe := string(shell.RenderNote(`<script>alert("x")</script>`))
	assert.NotContains(t, unsafe, "<script>")
}

func TestBadgeClasses(t *testing.T) {
	assert.Equal(t, "badge-green", shell.StatusClass(models.StatusResolved))
	assert.Equal(t, "badge-red", shell.PriorityClass(models.PriorityCritical))
	assert.Equal(t, "badge-gray", shell.StatusClass(models.ReportStatus("ARCHIVED")))
}

type recordingEnder struct {
	calls int
}

func (r *recordingEnder) Logout(context.Context) { r.calls++ }

func TestFailures_ExpiredLogsOut(t *testing.T) {
	ender := &recordingEnder{}
	failures := shell.NewFailuresWith(ender, zap.NewNop())

	app := fiber.New(fiber.Config{Views: views.NewEngine()})
	app.Get("/", func(c *fiber.Ctx) error {
		return failures.Render(c, "dashboard", &apiclient.APIError{StatusCode: http.StatusUnauthorized})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, 1, ender.calls)
}

func TestFailures_RenderShowsServerMessage(t *testing.T) {
	ender := &recordingEnder{}
	failures := shell.NewFailuresWith(ender, zap.NewNop())

	app := fiber.New(fiber.Config{Views: views.NewEngine()})
	app.Get("/", func(c *fiber.Ctx) error {
		return failures.Render(c, "dashboard", &apiclient.APIError{StatusCode: http.StatusInternalServerError, Message: "database offline"})
	})
	app.Get("/transport", func(c *fiber.Ctx) error {
		return failures.Render(c, "analytics", errors.New("dial tcp: connection refused"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Failed to load dashboard")
	assert.Contains(t, string(body), "database offline")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/transport", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "could not be reached")
	assert.Zero(t, ender.calls)
}
