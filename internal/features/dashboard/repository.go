package dashboard

import (
	"context"

	"go-fraud-console/internal/apiclient"
	"go-fraud-console/internal/models"
)

// DashboardRepository is the slice of the report API the dashboard reads.
type DashboardRepository interface {
	AnalyticsOverview(ctx context.Context) (*models.AnalyticsOverview, error)
	ListReports(ctx context.Context, q apiclient.ReportQuery) (*models.ReportPage, error)
}

func NewDashboardRepository(client *apiclient.Client) DashboardRepository {
	return client
}
