package analytics

import (
	"context"
	"time"

	"go-fraud-console/internal/apiclient"
	"go-fraud-console/internal/models"
	"go-fraud-console/internal/viewstate"
)

// AnalyticsRepository is the slice of the report API analytics reads.
type AnalyticsRepository interface {
	AnalyticsOverview(ctx context.Context) (*models.AnalyticsOverview, error)
}

func NewAnalyticsRepository(client *apiclient.Client) AnalyticsRepository {
	return client
}

type AnalyticsService interface {
	Load(ctx context.Context) (*Analytics, error)
	// Refresh fetches a new overview for the live feed. It reports false when
	// a newer fetch started before this one finished.
	Refresh(ctx context.Context) (LiveSnapshot, bool, error)
	// Live is the last published snapshot.
	Live() (LiveSnapshot, bool)
}

type AnalyticsServiceImpl struct {
	repo AnalyticsRepository
	view viewstate.Tracker[*models.AnalyticsOverview]
}

func NewAnalyticsService(repo AnalyticsRepository) AnalyticsService {
	return &AnalyticsServiceImpl{repo: repo}
}

func (s *AnalyticsServiceImpl) fetch(ctx context.Context) (*models.AnalyticsOverview, bool, error) {
	seq := s.view.Begin()
	overview, err := s.repo.AnalyticsOverview(ctx)
	if err != nil {
		return nil, false, err
	}
	return overview, s.view.Publish(seq, overview), nil
}

// Load always renders its own result; only the shared live view drops
// superseded fetches.
func (s *AnalyticsServiceImpl) Load(ctx context.Context) (*Analytics, error) {
	overview, _, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return buildAnalytics(overview, time.Now()), nil
}

func (s *AnalyticsServiceImpl) Refresh(ctx context.Context) (LiveSnapshot, bool, error) {
	overview, published, err := s.fetch(ctx)
	if err != nil || !published {
		return LiveSnapshot{}, false, err
	}
	return liveSnapshot(overview, time.Now()), true, nil
}

func (s *AnalyticsServiceImpl) Live() (LiveSnapshot, bool) {
	overview, at, ok := s.view.Current()
	if !ok {
		return LiveSnapshot{}, false
	}
	return liveSnapshot(overview, at), true
}
