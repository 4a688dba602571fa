package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalNumberOrString(t *testing.T) {
	var payload struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":42,"b":"r-9","c":null}`), &payload))
	require.Equal(t, ID("42"), payload.A)
	require.Equal(t, ID("r-9"), payload.B)
	require.Equal(t, ID(""), payload.C)
}

func TestTimestamp_Layouts(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-03-05T10:20:30Z"`:          time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC),
		`"2024-03-05T10:20:30"`:           time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC),
		`"2024-03-05T10:20:30.123456"`:    time.Date(2024, 3, 5, 10, 20, 30, 123456000, time.UTC),
		`"2024-03-05 10:20:30"`:           time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC),
		`"Tue, 05 Mar 2024 10:20:30 GMT"`: time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC),
	}
	for raw, want := range cases {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)
		require.True(t, want.Equal(ts.Time), "%s: got %s", raw, ts.Time)
	}

	var ts Timestamp
	require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	require.True(t, ts.IsZero())
}

func TestReportEnums(t *testing.T) {
	status, err := ParseReportStatus("in_progress")
	require.NoError(t, err)
	require.Equal(t, StatusInProgress, status)
	require.Equal(t, "In Progress", status.Label())

	_, err = ParseReportStatus("DONE")
	require.Error(t, err)

	priority, err := ParseReportPriority(" critical ")
	require.NoError(t, err)
	require.Equal(t, PriorityCritical, priority)

	_, err = ParseReportPriority("")
	require.Error(t, err)
}

func TestReport_Helpers(t *testing.T) {
	r := &Report{LocationCity: "Pune", LocationState: "Maharashtra", Phone: AnonymousPhone}
	require.Equal(t, "Pune, Maharashtra", r.Location())
	require.False(t, r.HasReporterContact())
	require.False(t, r.HasSuspectInfo())

	r.SuspectUPIID = "scam@upi"
	require.True(t, r.HasSuspectInfo())
}

func TestReportPage_TotalPages(t *testing.T) {
	require.Equal(t, 1, (&ReportPage{Total: 0, PerPage: 20}).TotalPages())
	require.Equal(t, 1, (&ReportPage{Total: 20, PerPage: 20}).TotalPages())
	require.Equal(t, 2, (&ReportPage{Total: 21, PerPage: 20}).TotalPages())
}

func TestAnalyticsOverview_StatusCountAndShare(t *testing.T) {
	a := &AnalyticsOverview{
		TotalReports:    8,
		StatusBreakdown: []StatusCount{{Status: StatusNew, Count: 2}, {Status: StatusResolved, Count: 6}},
	}
	require.Equal(t, 2, a.StatusCount(StatusNew))
	require.Equal(t, 0, a.StatusCount(StatusClosed))
	require.InDelta(t, 25.0, a.Share(2), 0.0001)
	require.Zero(t, (&AnalyticsOverview{}).Share(3))
}

func TestAdmin_DisplayName(t *testing.T) {
	require.Equal(t, "Admin User", (&Admin{Username: "admin", FullName: "Admin User"}).DisplayName())
	require.Equal(t, "admin", (&Admin{Username: "admin"}).DisplayName())
}
