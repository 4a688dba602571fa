package main

import (
	"context"
	"errors"
	"fmt"

	"go-fraud-console/internal/apiclient"
	common_api "go-fraud-console/internal/common/api"
	"go-fraud-console/internal/config"
	"go-fraud-console/internal/database"
	"go-fraud-console/internal/features/analytics"
	"go-fraud-console/internal/features/auth"
	"go-fraud-console/internal/features/dashboard"
	"go-fraud-console/internal/features/report"
	"go-fraud-console/internal/features/system"
	"go-fraud-console/internal/logger"
	"go-fraud-console/internal/middleware"
	"go-fraud-console/internal/session"
	"go-fraud-console/internal/shell"
	"go-fraud-console/internal/views"
	"go-fraud-console/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates the Fiber app with the HTML view engine and the
// request middleware shared by every route.
func NewFiberServer(logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Views:                 views.NewEngine(),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Something went wrong."
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			}
			heading := "Error"
			if code == fiber.StatusNotFound {
				heading = "Page not found"
			}

			if renderErr := shell.Render(c, code, "error", heading, fiber.Map{
				"Heading": heading,
				"Message": message,
			}); renderErr != nil {
				logger.Error("Failed to render error page", zap.Error(renderErr))
				return c.Status(code).SendString(message)
			}
			return nil
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	app.Use(middleware.RequestLogger(logger))

	return app
}

// NewMetricsRegistry is the registry served on /metrics.
func NewMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, logger *zap.Logger) {
	logger.Info("Registering routes", zap.Int("count", len(routes)))
	for _, route := range routes {
		logger.Debug("Setting up route", zap.String("type", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, logger *zap.Logger, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("Console listening", zap.String("address", cfg.Address()))
				if err := app.Listen(cfg.Address()); err != nil {
					logger.Error("Server failed to start", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

// InitializeSession seeds the form token secret and restores the persisted
// session in the background. Pages answer with the waiting view until the
// restore finishes.
func InitializeSession(lc fx.Lifecycle, cfg *config.Config, store *session.Store) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.FormSecret)
			go store.Restore(context.Background())
			return nil
		},
	})
}

func InitializeLiveFeed(lc fx.Lifecycle, scheduler *system.LiveScheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start()
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Local storage for the session snapshot
			database.NewLocalStorage,

			// Metrics
			NewMetricsRegistry,
			func(reg *prometheus.Registry) prometheus.Registerer { return reg },

			// Report API transport
			apiclient.NewMetrics,
			apiclient.NewClient,
			func(c *apiclient.Client) session.Authenticator { return c },

			// Session
			session.NewStore,
			session.NewReader,
			shell.NewFailures,

			// Initialize Repository
			dashboard.NewDashboardRepository,
			report.NewReportRepository,
			analytics.NewAnalyticsRepository,

			// Initialize Service
			auth.NewAuthService,
			dashboard.NewDashboardService,
			report.NewReportService,
			analytics.NewAnalyticsService,

			// Live feed
			system.NewLiveHub,
			system.NewLiveScheduler,

			// Initialize Controller
			auth.NewAuthController,
			dashboard.NewDashboardController,
			report.NewReportController,
			analytics.NewAnalyticsController,
			system.NewHealthController,
			system.NewWebSocketController,

			// Initialize API Routes
			AsRoute(system.NewHealthApi),
			AsRoute(auth.NewAuthApi),
			AsRoute(dashboard.NewDashboardApi),
			AsRoute(report.NewReportApi),
			AsRoute(analytics.NewAnalyticsApi),
			AsRoute(system.NewWebSocketApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			InitializeSession,
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			InitializeLiveFeed,
		),
	)

	app.Run()
}
