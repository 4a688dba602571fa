package report

import (
	"go-fraud-console/internal/common/api"
	"go-fraud-console/internal/middleware"
	"go-fraud-console/internal/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReportApi struct {
	ReportController *ReportController
	Sessions         session.Reader
	Logger           *zap.Logger
}

func NewReportApi(reportController *ReportController, sessions session.Reader, logger *zap.Logger) api.Route {
	return &ReportApi{
		ReportController: reportController,
		Sessions:         sessions,
		Logger:           logger,
	}
}

func (api *ReportApi) Setup(app *fiber.App) {
	group := app.Group("/reports", middleware.RequireSession(api.Sessions))

	group.Get("/", api.ReportController.List)
	group.Get("/export", api.ReportController.Export)
	group.Get("/export.xlsx", api.ReportController.ExportExcel)
	group.Get("/:id", api.ReportController.Get)

	verify := middleware.VerifyFormToken(api.Sessions, api.Logger)
	group.Post("/:id/status", verify, api.ReportController.UpdateStatus)
	group.Post("/:id/notes", verify, api.ReportController.AddNote)
}
