package analytics

import (
	"time"

	"go-fraud-console/internal/models"
	"go-fraud-console/pkg/utils"
)

const topStates = 10

type Metric struct {
	Name     string
	Value    string
	Subtitle string
	Color    string
	LiveKey  string
}

type StatRow struct {
	Metric     string
	Value      string
	Percentage string
}

type Analytics struct {
	Metrics     []Metric
	Trend       LineChart
	Status      PieChart
	Mediums     BarChart
	States      BarChart
	Rows        []StatRow
	GeneratedAt time.Time
}

// LiveSnapshot is the payload of the live feed. Keys match the data-live
// attributes on the dashboard and analytics pages.
type LiveSnapshot struct {
	TotalReports string `json:"total_reports"`
	NewCases     string `json:"new_cases"`
	InProgress   string `json:"in_progress"`
	Resolved     string `json:"resolved"`
	Amount       string `json:"amount"`
	UpdatedAt    string `json:"updated_at"`
}

func buildAnalytics(o *models.AnalyticsOverview, now time.Time) *Analytics {
	a := &Analytics{
		Metrics: []Metric{
			{Name: "Total Reports", Value: utils.FormatCount(o.TotalReports), Subtitle: "All time", Color: "bg-blue", LiveKey: "total_reports"},
			{Name: "New Cases", Value: utils.FormatCount(o.StatusCount(models.StatusNew)), Subtitle: "Requires attention", Color: "bg-yellow", LiveKey: "new_cases"},
			{Name: "Resolved", Value: utils.FormatCount(o.StatusCount(models.StatusResolved)), Subtitle: "Successfully closed", Color: "bg-green", LiveKey: "resolved"},
			{Name: "Amount Involved", Value: utils.FormatINR(o.TotalAmountInvolved), Subtitle: "Total financial impact", Color: "bg-red", LiveKey: "amount"},
		},
		GeneratedAt: now,
	}

	trend := make([]Series, 0, len(o.DailyTrend))
	for _, d := range o.DailyTrend {
		trend = append(trend, Series{Label: d.Date, Count: d.Count})
	}
	a.Trend = NewLineChart(trend, 560, 300)

	statuses := make([]Series, 0, len(o.StatusBreakdown))
	for _, s := range o.StatusBreakdown {
		statuses = append(statuses, Series{Label: string(s.Status), Count: s.Count})
		a.Rows = append(a.Rows, StatRow{
			Metric:     string(s.Status) + " Status",
			Value:      utils.FormatCount(s.Count) + " reports",
			Percentage: utils.Percent(s.Count, o.TotalReports),
		})
	}
	a.Status = NewPieChart(statuses, 300)

	mediums := make([]Series, 0, len(o.FraudMediumBreakdown))
	for _, m := range o.FraudMediumBreakdown {
		mediums = append(mediums, Series{Label: m.FraudMedium, Count: m.Count})
	}
	a.Mediums = NewHorizontalBarChart(mediums, 560, Palette[0])

	var states []Series
	for i, s := range o.StateBreakdown {
		if i == topStates {
			break
		}
		states = append(states, Series{Label: s.LocationState, Count: s.Count})
	}
	a.States = NewColumnChart(states, 560, 350, Palette[1])

	return a
}

func liveSnapshot(o *models.AnalyticsOverview, at time.Time) LiveSnapshot {
	return LiveSnapshot{
		TotalReports: utils.FormatCount(o.TotalReports),
		NewCases:     utils.FormatCount(o.StatusCount(models.StatusNew)),
		InProgress:   utils.FormatCount(o.StatusCount(models.StatusInProgress)),
		Resolved:     utils.FormatCount(o.StatusCount(models.StatusResolved)),
		Amount:       utils.FormatINR(o.TotalAmountInvolved),
		UpdatedAt:    at.Format("15:04:05"),
	}
}
