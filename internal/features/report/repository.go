package report

import (
	"context"

	"go-fraud-console/internal/apiclient"
	"go-fraud-console/internal/models"
)

// ReportRepository is the slice of the report API the report views use.
type ReportRepository interface {
	ListReports(ctx context.Context, q apiclient.ReportQuery) (*models.ReportPage, error)
	GetReport(ctx context.Context, id string) (*models.ReportDetail, error)
	UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus, priority models.ReportPriority) error
	AddNote(ctx context.Context, id, note, noteType string) error
	ExportReports(ctx context.Context) (*apiclient.Export, error)
}

func NewReportRepository(client *apiclient.Client) ReportRepository {
	return client
}
