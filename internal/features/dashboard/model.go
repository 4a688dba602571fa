package dashboard

import (
	"math"
	"time"

	"go-fraud-console/internal/models"
)

const (
	recentReports = 5
	topBreakdowns = 5
)

type StatCard struct {
	Name     string
	Value    int
	Subtitle string
	Color    string
	LiveKey  string
}

// ShareBar is one breakdown row; Width is the share of all reports in percent.
type ShareBar struct {
	Label string
	Count int
	Width float64
}

type Dashboard struct {
	Stats       []StatCard
	TotalAmount float64
	TopMediums  []ShareBar
	TopStates   []ShareBar
	Recent      []models.Report
	GeneratedAt time.Time
}

func buildDashboard(overview *models.AnalyticsOverview, recent []models.Report, now time.Time) *Dashboard {
	d := &Dashboard{
		Stats: []StatCard{
			{Name: "Total Reports", Value: overview.TotalReports, Subtitle: "All reported cases", Color: "bg-blue", LiveKey: "total_reports"},
			{Name: "New Cases", Value: overview.StatusCount(models.StatusNew), Subtitle: "Requires attention", Color: "bg-yellow", LiveKey: "new_cases"},
			{Name: "In Progress", Value: overview.StatusCount(models.StatusInProgress), Subtitle: "Under investigation", Color: "bg-orange", LiveKey: "in_progress"},
			{Name: "Resolved", Value: overview.StatusCount(models.StatusResolved), Subtitle: "Successfully closed", Color: "bg-green", LiveKey: "resolved"},
		},
		TotalAmount: overview.TotalAmountInvolved,
		Recent:      recent,
		GeneratedAt: now,
	}

	for i, m := range overview.FraudMediumBreakdown {
		if i == topBreakdowns {
			break
		}
		d.TopMediums = append(d.TopMediums, shareBar(overview, m.FraudMedium, m.Count))
	}
	for i, s := range overview.StateBreakdown {
		if i == topBreakdowns {
			break
		}
		d.TopStates = append(d.TopStates, shareBar(overview, s.LocationState, s.Count))
	}
	if len(d.Recent) > recentReports {
		d.Recent = d.Recent[:recentReports]
	}
	return d
}

func shareBar(overview *models.AnalyticsOverview, label string, count int) ShareBar {
	width := math.Min(overview.Share(count), 100)
	return ShareBar{Label: label, Count: count, Width: math.Round(width*10) / 10}
}
