package report

import (
	"errors"
	"net/url"
	"strconv"

	"go-fraud-console/internal/apiclient"
	"go-fraud-console/internal/models"
)

var (
	// ErrInvalidUpdate is returned for a status or priority outside the enums.
	ErrInvalidUpdate = errors.New("invalid status or priority")
	// ErrEmptyNote is returned for a blank note; nothing is sent.
	ErrEmptyNote = errors.New("note is empty")
)

// Filters are the list query parameters the console understands.
type Filters struct {
	Page        int    `query:"page"`
	PerPage     int    `query:"per_page"`
	Status      string `query:"status"`
	Priority    string `query:"priority"`
	FraudMedium string `query:"fraud_medium"`
	State       string `query:"state"`
	Search      string `query:"search"`
}

func (f Filters) normalize(defaultPerPage int) Filters {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 100 {
		f.PerPage = defaultPerPage
	}
	if status, err := models.ParseReportStatus(f.Status); err == nil {
		f.Status = string(status)
	} else {
		f.Status = ""
	}
	if priority, err := models.ParseReportPriority(f.Priority); err == nil {
		f.Priority = string(priority)
	} else {
		f.Priority = ""
	}
	return f
}

func (f Filters) query() apiclient.ReportQuery {
	return apiclient.ReportQuery{
		Page:        f.Page,
		PerPage:     f.PerPage,
		Status:      f.Status,
		Priority:    f.Priority,
		FraudMedium: f.FraudMedium,
		State:       f.State,
		Search:      f.Search,
	}
}

// URL links to the list with these filters on page.
func (f Filters) URL(page int) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("per_page", strconv.Itoa(f.PerPage))
	for key, value := range map[string]string{
		"status":       f.Status,
		"priority":     f.Priority,
		"fraud_medium": f.FraudMedium,
		"state":        f.State,
		"search":       f.Search,
	} {
		if value != "" {
			v.Set(key, value)
		}
	}
	return "/reports?" + v.Encode()
}

type PageLink struct {
	Number  int
	URL     string
	Current bool
	Gap     bool
}

type Pagination struct {
	Page       int
	TotalPages int
	Total      int
	From       int
	To         int
	PrevURL    string
	NextURL    string
	Links      []PageLink
}

const pageWindow = 2

func paginate(page *models.ReportPage, f Filters) Pagination {
	totalPages := page.TotalPages()
	current := f.Page
	if current > totalPages {
		current = totalPages
	}

	p := Pagination{Page: current, TotalPages: totalPages, Total: page.Total}
	if len(page.Reports) > 0 {
		p.From = (f.Page-1)*f.PerPage + 1
		p.To = p.From + len(page.Reports) - 1
	}
	if current > 1 {
		p.PrevURL = f.URL(current - 1)
	}
	if current < totalPages {
		p.NextURL = f.URL(current + 1)
	}

	lastAdded := 0
	for n := 1; n <= totalPages; n++ {
		if n != 1 && n != totalPages && (n < current-pageWindow || n > current+pageWindow) {
			continue
		}
		if lastAdded != 0 && n > lastAdded+1 {
			p.Links = append(p.Links, PageLink{Gap: true})
		}
		p.Links = append(p.Links, PageLink{Number: n, URL: f.URL(n), Current: n == current})
		lastAdded = n
	}
	return p
}

type ListView struct {
	Reports    []models.Report
	Filters    Filters
	Pagination Pagination
}
