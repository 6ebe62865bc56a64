package api

import (
	"context"
	"fmt"
	"net/http"

	"smartpath/internal/models"
)

// ReportClient talks to the academic report endpoints
type ReportClient struct {
	*Client
}

// NewReportClient creates a report client sharing the base transport
func NewReportClient(client *Client) *ReportClient {
	return &ReportClient{Client: client}
}

// ReportHistory lists the caller's uploaded reports, newest first. A limit of
// zero leaves the page size to the backend.
func (c *ReportClient) ReportHistory(ctx context.Context, limit int) ([]models.Report, error) {
	path := "/reports/history"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var reports []models.Report
	if err := c.do(ctx, http.MethodGet, path, nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// AnalyzeReport generates the breakdown for one uploaded report
func (c *ReportClient) AnalyzeReport(ctx context.Context, reportID int64) (*models.ReportAnalysis, error) {
	var analysis models.ReportAnalysis
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/reports/analyze?report_id=%d", reportID), nil, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// DeleteReport removes one uploaded report
func (c *ReportClient) DeleteReport(ctx context.Context, reportID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/reports/%d", reportID), nil, nil)
}
