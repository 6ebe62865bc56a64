// Package performance fronts the analytics views: grade trends, grade
// predictions, and the report history they are computed from.
package performance

import (
	"context"

	"go.uber.org/zap"

	"smartpath/internal/cache"
	"smartpath/internal/models"
)

const defaultHistoryLimit = 10

// AnalyticsService is the slice of the performance client the service needs
type AnalyticsService interface {
	Trends(ctx context.Context, subject string) ([]models.GradeTrend, error)
	Predictions(ctx context.Context) ([]models.PerformancePrediction, error)
}

// ReportService is the slice of the report client the service needs
type ReportService interface {
	ReportHistory(ctx context.Context, limit int) ([]models.Report, error)
	AnalyzeReport(ctx context.Context, reportID int64) (*models.ReportAnalysis, error)
	DeleteReport(ctx context.Context, reportID int64) error
}

// Service orchestrates cached analytics reads and the report mutations that
// make them stale
type Service struct {
	analytics AnalyticsService
	reports   ReportService
	cache     *cache.Store
	logger    *zap.Logger
}

// NewService creates a performance service
func NewService(analytics AnalyticsService, reports ReportService, queries *cache.Store, logger *zap.Logger) *Service {
	return &Service{analytics: analytics, reports: reports, cache: queries, logger: logger}
}

// Trends returns the cached grade trends for a subject, or for all subjects
// when subject is empty
func (s *Service) Trends(ctx context.Context, subject string) ([]models.GradeTrend, error) {
	return cache.Lookup(ctx, s.cache, cache.GradeTrends(subject), func(ctx context.Context) ([]models.GradeTrend, error) {
		return s.analytics.Trends(ctx, subject)
	})
}

// Predictions returns the cached grade predictions
func (s *Service) Predictions(ctx context.Context) ([]models.PerformancePrediction, error) {
	return cache.Lookup(ctx, s.cache, cache.Predictions(), s.analytics.Predictions)
}

// ReportHistory returns the cached uploaded-report list
func (s *Service) ReportHistory(ctx context.Context) ([]models.Report, error) {
	return cache.Lookup(ctx, s.cache, cache.ReportHistory(), func(ctx context.Context) ([]models.Report, error) {
		return s.reports.ReportHistory(ctx, defaultHistoryLimit)
	})
}

// Analyze generates the breakdown for one report. Analyses are computed on
// demand and never cached.
func (s *Service) Analyze(ctx context.Context, reportID int64) (*models.ReportAnalysis, error) {
	return s.reports.AnalyzeReport(ctx, reportID)
}

// DeleteReport removes a report and refreshes every view derived from it.
// Trends are invalidated by kind: any subject's series may have included the
// deleted report's grades.
func (s *Service) DeleteReport(ctx context.Context, reportID int64) error {
	if err := s.reports.DeleteReport(ctx, reportID); err != nil {
		return err
	}
	s.cache.Invalidate(cache.ReportHistory())
	s.cache.Invalidate(cache.Predictions())
	s.cache.InvalidateKind(cache.GradeTrends("").Kind)
	s.logger.Info("report deleted", zap.Int64("reportID", reportID))
	return nil
}
