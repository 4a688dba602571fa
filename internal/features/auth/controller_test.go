package auth_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"go-fraud-console/internal/apiclient"
	"go-fraud-console/internal/config"
	"go-fraud-console/internal/features/auth"
	"go-fraud-console/internal/models"
	"go-fraud-console/internal/session"
	"go-fraud-console/internal/storage"
	"go-fraud-console/internal/testserver"
	"go-fraud-console/internal/views"
	"go-fraud-console/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var tokenPattern = regexp.MustCompile(`name="_token" value="([^"]+)"`)

func setup(t *testing.T) (*fiber.App, *session.Store, *testserver.FakeAPI) {
	t.Helper()
	utils.SetSecret("auth-controller-test")

	api := testserver.New(t)
	api.AddAdmin("secret", models.Admin{Username: "admin", FullName: "Admin User"})

	client, err := apiclient.New(api.BaseURL(), 2*time.Second, nil, nil)
	require.NoError(t, err)
	cfg := &config.Config{SessionKey: "admin_user", LogoutTimeout: time.Second}
	store := session.NewStore(client, storage.NewMemory(), cfg, nil)

	app := fiber.New(fiber.Config{Views: views.NewEngine()})
	auth.NewAuthApi(auth.NewAuthController(auth.NewAuthService(store)), store, zap.NewNop()).Setup(app)
	return app, store, api
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func loginPage(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	m := tokenPattern.FindStringSubmatch(body)
	require.Len(t, m, 2)
	return m[1]
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func TestShowLogin_WaitsForRestore(t *testing.T) {
	app, _, _ := setup(t)

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	app, store, _ := setup(t)
	store.Restore(context.Background())
	token := loginPage(t, app)

	resp, body := do(t, app, postForm("/login", url.Values{
		"_token":   {token},
		"username": {"admin"},
		"password": {"wrong"},
	}))

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid credentials")
	assert.Contains(t, body, `value="admin"`)
	assert.False(t, store.State().Authenticated)
}

func TestLogin_RequiresFormToken(t *testing.T) {
	app, store, api := setup(t)
	store.Restore(context.Background())

	resp, _ := do(t, app, postForm("/login", url.Values{"username": {"admin"}, "password": {"secret"}}))

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Zero(t, api.Calls(http.MethodPost, "/login"))
}

func TestLoginThenLogout(t *testing.T) {
	app, store, api := setup(t)
	store.Restore(context.Background())
	token := loginPage(t, app)

	resp, _ := do(t, app, postForm("/login", url.Values{
		"_token":   {token},
		"username": {" admin "},
		"password": {"secret"},
	}))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	state := store.State()
	require.True(t, state.Authenticated)
	assert.Equal(t, "Admin User", state.User.DisplayName())

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	sessionToken, err := utils.GenerateFormToken("admin")
	require.NoError(t, err)
	resp, _ = do(t, app, postForm("/logout", url.Values{"_token": {sessionToken}}))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
	assert.False(t, store.State().Authenticated)
	assert.Equal(t, 1, api.Calls(http.MethodPost, "/logout"))
}

func TestLogout_EndsSessionWhenAPIFails(t *testing.T) {
	app, store, api := setup(t)
	ctx := context.Background()
	store.Restore(ctx)
	require.True(t, store.Login(ctx, "admin", "secret").Success)
	api.SetLogoutBehavior(http.StatusInternalServerError, 0)

	token, err := utils.GenerateFormToken("admin")
	require.NoError(t, err)
	resp, _ := do(t, app, postForm("/logout", url.Values{"_token": {token}}))

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.False(t, store.State().Authenticated)
}

func TestLogout_IgnoresStaleFormToken(t *testing.T) {
	for name, form := range map[string]url.Values{
		"stale":   {"_token": {"stale-or-expired"}},
		"missing": {},
	} {
		t.Run(name, func(t *testing.T) {
			app, store, api := setup(t)
			ctx := context.Background()
			store.Restore(ctx)
			require.True(t, store.Login(ctx, "admin", "secret").Success)

			resp, _ := do(t, app, postForm("/logout", form))

			assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
			assert.False(t, store.State().Authenticated)
			assert.Equal(t, 1, api.Calls(http.MethodPost, "/logout"))
		})
	}
}
