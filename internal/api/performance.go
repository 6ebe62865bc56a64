package api

import (
	"context"
	"net/http"
	"net/url"

	"smartpath/internal/models"
)

// PerformanceClient talks to the performance analytics endpoints
type PerformanceClient struct {
	*Client
}

// NewPerformanceClient creates a performance client sharing the base transport
func NewPerformanceClient(client *Client) *PerformanceClient {
	return &PerformanceClient{Client: client}
}

// Trends fetches the per-subject grade trend series. A non-empty subject
// narrows the result to that subject.
func (c *PerformanceClient) Trends(ctx context.Context, subject string) ([]models.GradeTrend, error) {
	path := "/performance/trends"
	if subject != "" {
		path += "?subject=" + url.QueryEscape(subject)
	}
	var trends []models.GradeTrend
	if err := c.do(ctx, http.MethodGet, path, nil, &trends); err != nil {
		return nil, err
	}
	return trends, nil
}

// Predictions fetches the forward-looking grade estimates
func (c *PerformanceClient) Predictions(ctx context.Context) ([]models.PerformancePrediction, error) {
	var predictions []models.PerformancePrediction
	if err := c.do(ctx, http.MethodGet, "/performance/predictions", nil, &predictions); err != nil {
		return nil, err
	}
	return predictions, nil
}
