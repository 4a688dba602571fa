package report

import (
	"errors"
	"fmt"
	"net/url"

	"go-fraud-console/internal/apiclient"
	"go-fraud-console/internal/models"
	"go-fraud-console/internal/shell"

	"github.com/gofiber/fiber/v2"
)

const (
	msgStatusUpdated = "Status updated successfully"
	msgStatusFailed  = "Failed to update status"
	msgNoteFailed    = "Failed to add note"
)

type ReportController struct {
	ReportService ReportService
	Failures      *shell.Failures
}

func NewReportController(reportService ReportService, failures *shell.Failures) *ReportController {
	return &ReportController{ReportService: reportService, Failures: failures}
}

// List renders one page of reports.
func (c *ReportController) List(ctx *fiber.Ctx) error {
	var filters Filters
	if err := ctx.QueryParser(&filters); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid list parameters")
	}

	view, err := c.ReportService.ListReports(ctx.UserContext(), filters)
	if err != nil {
		return c.Failures.Render(ctx, "reports", err)
	}

	return shell.Render(ctx, fiber.StatusOK, "reports", "Reports", fiber.Map{
		"View":       view,
		"Statuses":   models.ReportStatuses,
		"Priorities": models.ReportPriorities,
	})
}

// Export streams the API's own export file through unchanged.
func (c *ReportController) Export(ctx *fiber.Ctx) error {
	export, err := c.ReportService.ExportReports(ctx.UserContext())
	if err != nil {
		return c.Failures.Render(ctx, "export", err)
	}

	ctx.Set(fiber.HeaderContentType, export.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
	return ctx.Send(export.Data)
}

// ExportExcel writes the list page selected by the query as an .xlsx file.
func (c *ReportController) ExportExcel(ctx *fiber.Ctx) error {
	var filters Filters
	if err := ctx.QueryParser(&filters); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid list parameters")
	}

	data, filename, err := c.ReportService.ExportToExcel(ctx.UserContext(), filters)
	if err != nil {
		return c.Failures.Render(ctx, "export", err)
	}

	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Send(data)
}

// Get renders a report with its notes. A missing report renders the
// not-found view and nothing else is fetched.
func (c *ReportController) Get(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	detail, err := c.ReportService.GetReport(ctx.UserContext(), id)
	if errors.Is(err, apiclient.ErrNotFound) {
		return shell.Render(ctx, fiber.StatusNotFound, "not_found", "Report not found", nil)
	}
	if err != nil {
		return c.Failures.Render(ctx, "report", err)
	}

	return shell.Render(ctx, fiber.StatusOK, "report_detail", detail.Report.ReferenceID, fiber.Map{
		"Report":     detail.Report,
		"Notes":      detail.Notes,
		"Statuses":   models.ReportStatuses,
		"Priorities": models.ReportPriorities,
	})
}

// UpdateStatus submits the status form and redirects back to the report, so
// the detail view is fetched again rather than patched.
func (c *ReportController) UpdateStatus(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	err := c.ReportService.UpdateStatus(ctx.UserContext(), id, ctx.FormValue("status"), ctx.FormValue("priority"))
	switch {
	case errors.Is(err, ErrInvalidUpdate):
		return fiber.NewError(fiber.StatusBadRequest, "Invalid status or priority")
	case err != nil:
		if handled, redirectErr := c.Failures.Expired(ctx, err); handled {
			return redirectErr
		}
		c.Failures.Log(ctx, "update status", err)
		shell.SetFlash(ctx, shell.FlashError, msgStatusFailed)
	default:
		shell.SetFlash(ctx, shell.FlashSuccess, msgStatusUpdated)
	}
	return ctx.Redirect(detailPath(id), fiber.StatusSeeOther)
}

// AddNote submits a comment and redirects back to the report.
func (c *ReportController) AddNote(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	err := c.ReportService.AddNote(ctx.UserContext(), id, ctx.FormValue("note"))
	if err != nil && !errors.Is(err, ErrEmptyNote) {
		if handled, redirectErr := c.Failures.Expired(ctx, err); handled {
			return redirectErr
		}
		c.Failures.Log(ctx, "add note", err)
		shell.SetFlash(ctx, shell.FlashError, msgNoteFailed)
	}
	return ctx.Redirect(detailPath(id), fiber.StatusSeeOther)
}

func detailPath(id string) string {
	return "/reports/" + url.PathEscape(id)
}
