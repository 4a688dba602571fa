package apiclient

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-fraud-console/internal/models"
)

// ReportQuery selects a page of reports. Zero-valued filters are not sent.
type ReportQuery struct {
	Page        int
	PerPage     int
	Status      string
	Priority    string
	FraudMedium string
	State       string
	Search      string
}

func (q ReportQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	for key, value := range map[string]string{
		"status":       q.Status,
		"priority":     q.Priority,
		"fraud_medium": q.FraudMedium,
		"state":        q.State,
		"search":       q.Search,
	} {
		if value = strings.TrimSpace(value); value != "" {
			v.Set(key, value)
		}
	}
	return v
}

func (c *Client) ListReports(ctx context.Context, q ReportQuery) (*models.ReportPage, error) {
	var page models.ReportPage
	err := c.do(ctx, call{
		endpoint: "reports.list",
		method:   http.MethodGet,
		path:     "/reports",
		query:    q.values(),
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetReport returns the report and its notes. A 2xx answer without a report
// body is reported as ErrNotFound.
func (c *Client) GetReport(ctx context.Context, id string) (*models.ReportDetail, error) {
	var detail models.ReportDetail
	path := "/reports/" + url.PathEscape(id)
	err := c.do(ctx, call{
		endpoint: "reports.get",
		method:   http.MethodGet,
		path:     path,
	}, &detail)
	if err != nil {
		return nil, err
	}
	if detail.Report == nil {
		return nil, &APIError{Method: http.MethodGet, Path: path, StatusCode: http.StatusNotFound, Message: "Report not found"}
	}
	return &detail, nil
}

// UpdateReportStatus requests a status/priority change. Nothing is patched
// locally; callers re-fetch to observe it.
func (c *Client) UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus, priority models.ReportPriority) error {
	return c.do(ctx, call{
		endpoint: "reports.status",
		method:   http.MethodPut,
		path:     "/reports/" + url.PathEscape(id) + "/status",
		body:     models.StatusUpdate{Status: status, Priority: priority},
	}, nil)
}

// AddNote attaches a note. An empty noteType means COMMENT.
func (c *Client) AddNote(ctx context.Context, id, note, noteType string) error {
	if noteType == "" {
		noteType = models.NoteTypeComment
	}
	return c.do(ctx, call{
		endpoint: "reports.notes",
		method:   http.MethodPost,
		path:     "/reports/" + url.PathEscape(id) + "/notes",
		body:     models.NoteRequest{Note: note, Type: noteType},
	}, nil)
}

// Export is an opaque file produced by the API.
type Export struct {
	Data        []byte
	ContentType string
	Filename    string
}

func (c *Client) ExportReports(ctx context.Context) (*Export, error) {
	req := call{endpoint: "export", method: http.MethodGet, path: "/export"}
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", req.method, req.path, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Export{
		Data:        data,
		ContentType: contentType,
		Filename:    exportFilename(resp.Header.Get("Content-Disposition"), time.Now()),
	}, nil
}

func exportFilename(disposition string, now time.Time) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
			return params["filename"]
		}
	}
	return fmt.Sprintf("reports_export_%s.csv", now.Format("20060102"))
}
