package dashboard_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-fraud-console/internal/apiclient"
	"go-fraud-console/internal/config"
	"go-fraud-console/internal/features/dashboard"
	"go-fraud-console/internal/models"
	"go-fraud-console/internal/session"
	"go-fraud-console/internal/shell"
	"go-fraud-console/internal/storage"
	"go-fraud-console/internal/testserver"
	"go-fraud-console/internal/views"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow(t *testing.T) {
	ctx := context.Background()
	api := testserver.New(t)
	api.AddAdmin("secret", models.Admin{Username: "admin", FullName: "Admin User"})
	api.AddReport(models.Report{
		ID: "1", ReferenceID: "I4C-2024-0001", FraudMedium: "UPI", LocationState: "Kerala",
		Status: models.StatusNew, Priority: models.PriorityHigh, AmountInvolved: 12345678,
	})
	api.SetOverview(api.OverviewFromReports())

	client, err := apiclient.New(api.BaseURL(), 2*time.Second, nil, nil)
	require.NoError(t, err)
	cfg := &config.Config{SessionKey: "admin_user", LogoutTimeout: time.Second}
	store := session.NewStore(client, storage.NewMemory(), cfg, nil)
	store.Restore(ctx)
	require.True(t, store.Login(ctx, "admin", "secret").Success)

	controller := dashboard.NewDashboardController(
		dashboard.NewDashboardService(dashboard.NewDashboardRepository(client)),
		shell.NewFailures(store, nil),
	)
	app := fiber.New(fiber.Config{Views: views.NewEngine()})
	dashboard.NewDashboardApi(controller, store).Setup(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "I4C-2024-0001")
	assert.Contains(t, string(body), "₹1,23,45,678")
	assert.Contains(t, string(body), "Admin User")
	assert.Equal(t, 1, api.Calls(http.MethodGet, "/analytics/overview"))
	assert.Equal(t, 1, api.Calls(http.MethodGet, "/reports"))

	api.FailWith(http.StatusInternalServerError)
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}
