package apiclient

import (
	"context"
	"net/http"

	"go-fraud-console/internal/models"
)

func (c *Client) AnalyticsOverview(ctx context.Context) (*models.AnalyticsOverview, error) {
	var overview models.AnalyticsOverview
	err := c.do(ctx, call{
		endpoint: "analytics.overview",
		method:   http.MethodGet,
		path:     "/analytics/overview",
	}, &overview)
	if err != nil {
		return nil, err
	}
	return &overview, nil
}
