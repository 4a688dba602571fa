package dashboard

import (
	"context"
	"fmt"
	"time"

	"go-fraud-console/internal/apiclient"
	"go-fraud-console/internal/models"

	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	Load(ctx context.Context) (*Dashboard, error)
}

type DashboardServiceImpl struct {
	DashboardRepo DashboardRepository
}

func NewDashboardService(dashboardRepo DashboardRepository) DashboardService {
	return &DashboardServiceImpl{DashboardRepo: dashboardRepo}
}

// Load fetches the analytics overview and the newest reports concurrently.
// Either failure fails the whole load.
func (s *DashboardServiceImpl) Load(ctx context.Context) (*Dashboard, error) {
	var (
		overview *models.AnalyticsOverview
		page     *models.ReportPage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		overview, err = s.DashboardRepo.AnalyticsOverview(gctx)
		if err != nil {
			return fmt.Errorf("analytics overview: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		page, err = s.DashboardRepo.ListReports(gctx, apiclient.ReportQuery{Page: 1, PerPage: recentReports})
		if err != nil {
			return fmt.Errorf("recent reports: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildDashboard(overview, page.Reports, time.Now()), nil
}
