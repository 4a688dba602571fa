package report

import (
	"context"
	"fmt"
	"strings"

	"go-fraud-console/internal/apiclient"
	"go-fraud-console/internal/config"
	"go-fraud-console/internal/models"
)

type ReportService interface {
	ListReports(ctx context.Context, filters Filters) (*ListView, error)
	GetReport(ctx context.Context, id string) (*models.ReportDetail, error)
	UpdateStatus(ctx context.Context, id, status, priority string) error
	AddNote(ctx context.Context, id, note string) error
	ExportReports(ctx context.Context) (*apiclient.Export, error)
	ExportToExcel(ctx context.Context, filters Filters) ([]byte, string, error)
}

type ReportServiceImpl struct {
	ReportRepo ReportRepository
	perPage    int
}

func NewReportService(reportRepo ReportRepository, cfg *config.Config) ReportService {
	perPage := cfg.ReportsPerPage
	if perPage <= 0 {
		perPage = 20
	}
	return &ReportServiceImpl{ReportRepo: reportRepo, perPage: perPage}
}

func (s *ReportServiceImpl) ListReports(ctx context.Context, filters Filters) (*ListView, error) {
	filters = filters.normalize(s.perPage)
	page, err := s.ReportRepo.ListReports(ctx, filters.query())
	if err != nil {
		return nil, err
	}
	return &ListView{
		Reports:    page.Reports,
		Filters:    filters,
		Pagination: paginate(page, filters),
	}, nil
}

func (s *ReportServiceImpl) GetReport(ctx context.Context, id string) (*models.ReportDetail, error) {
	return s.ReportRepo.GetReport(ctx, id)
}

// UpdateStatus validates both enums before anything is sent. The caller
// re-fetches the report to see the result.
func (s *ReportServiceImpl) UpdateStatus(ctx context.Context, id, status, priority string) error {
	st, err := models.ParseReportStatus(status)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
	}
	pr, err := models.ParseReportPriority(priority)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
	}
	return s.ReportRepo.UpdateReportStatus(ctx, id, st, pr)
}

// AddNote sends a COMMENT note. Blank notes are dropped without a call.
func (s *ReportServiceImpl) AddNote(ctx context.Context, id, note string) error {
	if strings.TrimSpace(note) == "" {
		return ErrEmptyNote
	}
	return s.ReportRepo.AddNote(ctx, id, note, models.NoteTypeComment)
}

func (s *ReportServiceImpl) ExportReports(ctx context.Context) (*apiclient.Export, error) {
	return s.ReportRepo.ExportReports(ctx)
}
