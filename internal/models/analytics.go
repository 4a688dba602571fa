package models

// AnalyticsOverview is the server-computed aggregate returned by /analytics/overview.
type AnalyticsOverview struct {
	TotalReports         int                `json:"total_reports"`
	TotalAmountInvolved  float64            `json:"total_amount_involved"`
	StatusBreakdown      []StatusCount      `json:"status_breakdown"`
	FraudMediumBreakdown []FraudMediumCount `json:"fraud_medium_breakdown"`
	StateBreakdown       []StateCount       `json:"state_breakdown"`
	DailyTrend           []DailyCount       `json:"daily_trend"`
}

type StatusCount struct {
	Status ReportStatus `json:"status"`
	Count  int          `json:"count"`
}

type FraudMediumCount struct {
	FraudMedium string `json:"fraud_medium"`
	Count       int    `json:"count"`
}

type StateCount struct {
	LocationState string `json:"location_state"`
	Count         int    `json:"count"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StatusCount returns the count for status, 0 when the breakdown omits it.
func (a *AnalyticsOverview) StatusCount(status ReportStatus) int {
	if a == nil {
		return 0
	}
	for _, s := range a.StatusBreakdown {
		if s.Status == status {
			return s.Count
		}
	}
	return 0
}

// Share is count as a percentage of TotalReports, 0 when there are no reports.
func (a *AnalyticsOverview) Share(count int) float64 {
	if a == nil || a.TotalReports <= 0 {
		return 0
	}
	return float64(count) / float64(a.TotalReports) * 100
}
