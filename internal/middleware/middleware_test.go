package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go-fraud-console/internal/apiclient"
	"go-fraud-console/internal/middleware"
	"go-fraud-console/internal/models"
	"go-fraud-console/internal/views"
	"go-fraud-console/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedSession struct {
	state models.SessionState
}

func (f fixedSession) State() models.SessionState { return f.state }

func signedIn(username string) fixedSession {
	return fixedSession{state: models.SessionState{
		User:          &models.Admin{Username: username, FullName: "Asha Rao"},
		Authenticated: true,
	}}
}

func newApp() *fiber.App {
	return fiber.New(fiber.Config{Views: views.NewEngine()})
}

func TestRequireSession_WhileLoading(t *testing.T) {
	app := newApp()
	called := false
	app.Get("/", middleware.RequireSession(fixedSession{state: models.SessionState{Loading: true}}), func(c *fiber.Ctx) error {
		called = true
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get(fiber.HeaderRetryAfter))
	assert.False(t, called)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http-equiv="refresh"`)
}

func TestRequireSession_RedirectsWhenSignedOut(t *testing.T) {
	app := newApp()
	app.Get("/reports", middleware.RequireSession(fixedSession{}), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/reports", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, middleware.LoginPath, resp.Header.Get(fiber.HeaderLocation))
}

func TestRequireSession_AuthenticatedWithoutUserRedirects(t *testing.T) {
	app := newApp()
	app.Get("/", middleware.RequireSession(fixedSession{state: models.SessionState{Authenticated: true}}), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestRequireSession_StoresAdmin(t *testing.T) {
	app := newApp()
	app.Get("/", middleware.RequireSession(signedIn("asha")), func(c *fiber.Ctx) error {
		return c.SendString(middleware.CurrentAdmin(c).Username)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "asha", string(body))
}

func TestCurrentAdmin_Missing(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Nil(t, middleware.CurrentAdmin(c))
		return c.SendStatus(fiber.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
}

func postForm(app *fiber.App, path string, form url.Values) (*http.Response, error) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return app.Test(req)
}

func TestVerifyFormToken(t *testing.T) {
	utils.SetSecret("middleware-test-secret")

	valid, err := utils.GenerateFormToken("asha")
	require.NoError(t, err)
	otherUser, err := utils.GenerateFormToken("ravi")
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "valid", token: valid, status: fiber.StatusNoContent},
		{name: "missing", token: "", status: fiber.StatusForbidden},
		{name: "garbage", token: "not-a-token", status: fiber.StatusForbidden},
		{name: "other session", token: otherUser, status: fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			called := false
			app.Post("/act", middleware.VerifyFormToken(signedIn("asha"), zap.NewNop()), func(c *fiber.Ctx) error {
				called = true
				return c.SendStatus(fiber.StatusNoContent)
			})

			resp, err := postForm(app, "/act", url.Values{middleware.FormTokenField: {tt.token}})
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.status == fiber.StatusNoContent, called)
		})
	}
}

func TestVerifyFormToken_HeaderAndLoginPage(t *testing.T) {
	utils.SetSecret("middleware-test-secret")
	token, err := utils.GenerateFormToken("")
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/login", middleware.VerifyFormToken(fixedSession{}, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set(middleware.FormTokenHeader, token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestVerifyFormToken_IgnoresGet(t *testing.T) {
	app := fiber.New()
	app.Get("/", middleware.VerifyFormToken(fixedSession{}, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestRequestContext_PropagatesRequestID(t *testing.T) {
	var upstream string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstream = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_reports":0}`))
	}))
	defer api.Close()

	client, err := apiclient.New(api.URL, 0, zap.NewNop(), nil)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	app.Use(middleware.RequestLogger(zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error {
		if _, err := client.AnalyticsOverview(c.UserContext()); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-42")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "req-42", upstream)
}

func TestRequestLogger_PassesErrorsThrough(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RequestLogger(zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
}
