package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-fraud-console/internal/models"
	"go-fraud-console/pkg/utils"

	"github.com/xuri/excelize/v2"
)

var excelColumns = []string{
	"Reference ID", "Fraud Medium", "Incident Type", "City", "State", "Status",
	"Priority", "Amount Involved", "Suspect Phone", "Suspect UPI ID", "Created At",
}

// ExportToExcel writes the current list page, with its filters, as a spreadsheet.
func (s *ReportServiceImpl) ExportToExcel(ctx context.Context, filters Filters) ([]byte, string, error) {
	view, err := s.ListReports(ctx, filters)
	if err != nil {
		return nil, "", err
	}

	data, err := writeWorkbook(view.Reports)
	if err != nil {
		return nil, "", err
	}
	return data, excelFilename(view.Filters, time.Now()), nil
}

func writeWorkbook(reports []models.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Reports"
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range excelColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, r := range reports {
		row := []any{
			r.ReferenceID, r.FraudMedium, r.IncidentType, r.LocationCity, r.LocationState,
			string(r.Status), string(r.Priority), r.AmountInvolved, r.SuspectPhone, r.SuspectUPIID,
			utils.FormatTime(r.CreatedAt.Time, "2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	for i := range excelColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func excelFilename(filters Filters, now time.Time) string {
	name := "reports"
	if filters.Status != "" {
		name += "_" + statusSlug(filters.Status)
	}
	return fmt.Sprintf("%s_page%d_%s.xlsx", name, filters.Page, now.Format("20060102"))
}

// statusSlug turns a normalized status such as IN_PROGRESS into in-progress.
func statusSlug(status string) string {
	return strings.ToLower(strings.ReplaceAll(status, "_", "-"))
}
