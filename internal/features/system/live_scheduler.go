package system

import (
	"context"
	"fmt"
	"time"

	"go-fraud-console/internal/config"
	"go-fraud-console/internal/features/analytics"
	"go-fraud-console/internal/session"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// LiveScheduler periodically refreshes the analytics snapshot and pushes it
// to connected pages.
type LiveScheduler struct {
	spec      string
	timeout   time.Duration
	analytics analytics.AnalyticsService
	hub       *LiveHub
	sessions  session.Reader
	logger    *zap.Logger

	scheduler *cron.Cron
}

func NewLiveScheduler(cfg *config.Config, analyticsService analytics.AnalyticsService, hub *LiveHub, sessions session.Reader, logger *zap.Logger) *LiveScheduler {
	return &LiveScheduler{
		spec:      cfg.LiveRefresh,
		timeout:   cfg.APITimeout,
		analytics: analyticsService,
		hub:       hub,
		sessions:  sessions,
		logger:    logger.Named("live"),
	}
}

// Start schedules the refresh job. An empty spec leaves the feed idle.
func (s *LiveScheduler) Start() error {
	if s.spec == "" {
		s.logger.Info("Live refresh disabled")
		return nil
	}

	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc(s.spec, s.Tick); err != nil {
		return fmt.Errorf("invalid LIVE_REFRESH schedule %q: %w", s.spec, err)
	}
	s.scheduler.Start()
	s.logger.Info("Live refresh scheduled", zap.String("spec", s.spec))
	return nil
}

func (s *LiveScheduler) Stop() {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
}

// Tick fetches one snapshot when someone is signed in and watching.
func (s *LiveScheduler) Tick() {
	if !s.sessions.State().Authenticated || s.hub.Clients() == 0 {
		return
	}

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	snap, published, err := s.analytics.Refresh(ctx)
	if err != nil {
		s.logger.Warn("Live refresh failed", zap.Error(err))
		return
	}
	if published {
		s.hub.Broadcast(snap)
	}
}
