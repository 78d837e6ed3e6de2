package analytics

import (
	"context"
	"fmt"

	"github.com/medtrack/medtrack/internal/platform/charts"
)

// MetricTrendFigure builds the dated value line (with trend overlay) for one
// patient's metric type. Metrics arrive newest first; the figure wants them
// oldest first.
func (s *Service) MetricTrendFigure(ctx context.Context, patientID, metricType string) (charts.Figure, error) {
	metrics, err := s.metrics.ForPatient(ctx, patientID, metricType)
	if err != nil {
		return charts.Figure{}, err
	}

	title := fmt.Sprintf("%s Trend", metricType)
	points := make([]charts.Point, len(metrics))
	for i, m := range metrics {
		points[len(metrics)-1-i] = charts.Point{Date: m.Date, Value: m.Value}
	}
	return charts.MetricTrend(title, metricType, points), nil
}

func (s *Service) GenderFigure(ctx context.Context) (charts.Figure, error) {
	counts, err := s.patients.GenderCounts(ctx)
	if err != nil {
		return charts.Figure{}, err
	}
	return charts.Pie("Gender Distribution", counts), nil
}

func (s *Service) AgeFigure(ctx context.Context) (charts.Figure, error) {
	buckets, err := s.AgeDistribution(ctx)
	if err != nil {
		return charts.Figure{}, err
	}
	total := 0
	labels := make([]string, len(buckets))
	counts := make([]int, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
		counts[i] = b.Count
		total += b.Count
	}
	if total == 0 {
		return charts.Empty("Age Distribution"), nil
	}
	return charts.Histogram("Age Distribution", labels, counts), nil
}

func (s *Service) MetricTypesFigure(ctx context.Context, limit int) (charts.Figure, error) {
	types, err := s.CommonMetricTypes(ctx, limit)
	if err != nil {
		return charts.Figure{}, err
	}
	labels := make([]string, len(types))
	values := make([]float64, len(types))
	for i, tc := range types {
		labels[i] = tc.MetricType
		values[i] = float64(tc.Count)
	}
	return charts.Bars("Most Common Metric Types", labels, values), nil
}

// ActivityTimelineFigure charts per-day activity volume over the trailing
// window.
func (s *Service) ActivityTimelineFigure(ctx context.Context, days int) (charts.Figure, error) {
	if days <= 0 {
		days = DefaultActiveWindowDays
	}
	timeline, err := s.repo.ActivityTimeline(ctx, days)
	if err != nil {
		return charts.Figure{}, err
	}
	labels := make([]string, len(timeline))
	values := make([]float64, len(timeline))
	for i, dc := range timeline {
		labels[i] = dc.Day.Format("2006-01-02")
		values[i] = float64(dc.Count)
	}
	return charts.Bars("Activity Timeline", labels, values), nil
}

func (s *Service) RecordTypesFigure(ctx context.Context, limit int) (charts.Figure, error) {
	types, err := s.CommonRecordTypes(ctx, limit)
	if err != nil {
		return charts.Figure{}, err
	}
	labels := make([]string, len(types))
	values := make([]float64, len(types))
	for i, tc := range types {
		labels[i] = tc.RecordType
		values[i] = float64(tc.Count)
	}
	return charts.Bars("Most Common Record Types", labels, values), nil
}
