package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medtrack/medtrack/internal/domain/activity"
	"github.com/medtrack/medtrack/internal/domain/metric"
	"github.com/medtrack/medtrack/internal/domain/patient"
	"github.com/medtrack/medtrack/internal/domain/record"
)

// DefaultActiveWindowDays is the trailing window for the active-patients
// figure.
const DefaultActiveWindowDays = 30

type Service struct {
	patients   patient.Repository
	metrics    metric.Repository
	records    record.Repository
	activities activity.Repository
	repo       Repository
	log        zerolog.Logger
}

func NewService(patients patient.Repository, metrics metric.Repository, records record.Repository, activities activity.Repository, repo Repository, log zerolog.Logger) *Service {
	return &Service{patients: patients, metrics: metrics, records: records, activities: activities, repo: repo, log: log}
}

// PatientStatistics computes population totals and the average age from the
// full patient list.
func (s *Service) PatientStatistics(ctx context.Context) (*PatientStatistics, error) {
	all, err := s.patients.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &PatientStatistics{Total: len(all)}
	now := time.Now()
	ageSum := 0
	for _, p := range all {
		switch p.Gender {
		case "Male":
			stats.Male++
		case "Female":
			stats.Female++
		default:
			stats.Other++
		}
		ageSum += p.AgeAt(now)
	}
	if len(all) > 0 {
		stats.AverageAge = float64(ageSum) / float64(len(all))
	}
	return stats, nil
}

func (s *Service) GenderDistribution(ctx context.Context) (map[string]int, error) {
	return s.patients.GenderCounts(ctx)
}

// AgeDistribution buckets every patient's current age into fixed ranges.
func (s *Service) AgeDistribution(ctx context.Context) ([]AgeBucket, error) {
	all, err := s.patients.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	buckets := []AgeBucket{
		{Label: "0-18"}, {Label: "19-35"}, {Label: "36-50"}, {Label: "51-65"}, {Label: "65+"},
	}
	now := time.Now()
	for _, p := range all {
		age := p.AgeAt(now)
		switch {
		case age <= 18:
			buckets[0].Count++
		case age <= 35:
			buckets[1].Count++
		case age <= 50:
			buckets[2].Count++
		case age <= 65:
			buckets[3].Count++
		default:
			buckets[4].Count++
		}
	}
	return buckets, nil
}

func (s *Service) ActivePatientsCount(ctx context.Context, days int) (int, error) {
	if days <= 0 {
		days = DefaultActiveWindowDays
	}
	return s.repo.ActivePatientsCount(ctx, days)
}

// DatabaseSize reports the total row count across the clinical tables as a
// human-readable string, e.g. "1240 records".
func (s *Service) DatabaseSize(ctx context.Context) (string, error) {
	patients, err := s.patients.Count(ctx)
	if err != nil {
		return "", err
	}
	metrics, err := s.metrics.Count(ctx)
	if err != nil {
		return "", err
	}
	records, err := s.records.Count(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d records", patients+metrics+records), nil
}

// TotalFileSize reports the summed attachment size as "X.XX MB".
func (s *Service) TotalFileSize(ctx context.Context) (string, error) {
	bytes, err := s.records.TotalFileSize(ctx)
	if err != nil {
		return "", err
	}
	return FormatMB(bytes), nil
}

// FormatMB renders a byte count as megabytes with two decimals.
func FormatMB(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}

// Overview assembles the dashboard payload.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	o := &Overview{}
	var err error

	if o.TotalPatients, err = s.patients.Count(ctx); err != nil {
		return nil, err
	}
	if o.TotalMetrics, err = s.metrics.Count(ctx); err != nil {
		return nil, err
	}
	if o.TotalRecords, err = s.records.Count(ctx); err != nil {
		return nil, err
	}
	if o.ActivePatients, err = s.repo.ActivePatientsCount(ctx, DefaultActiveWindowDays); err != nil {
		return nil, err
	}
	if o.CompleteProfiles, err = s.patients.CompleteProfilesCount(ctx); err != nil {
		return nil, err
	}
	if o.RecentRecords, err = s.records.RecentCount(ctx, DefaultActiveWindowDays); err != nil {
		return nil, err
	}
	o.DatabaseSize = fmt.Sprintf("%d records", o.TotalPatients+o.TotalMetrics+o.TotalRecords)

	fileBytes, err := s.records.TotalFileSize(ctx)
	if err != nil {
		return nil, err
	}
	o.TotalFileSize = FormatMB(fileBytes)

	if o.RecentActivity, err = s.activities.Recent(ctx, 10); err != nil {
		return nil, err
	}
	if o.MostActive, err = s.activities.MostActivePatients(ctx, 5); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) RecentActivity(ctx context.Context, limit int) ([]*activity.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.activities.Recent(ctx, limit)
}

func (s *Service) MostActivePatients(ctx context.Context, limit int) ([]activity.PatientCount, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.activities.MostActivePatients(ctx, limit)
}

func (s *Service) CommonMetricTypes(ctx context.Context, limit int) ([]metric.TypeCount, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.metrics.CommonTypes(ctx, limit)
}

func (s *Service) CommonRecordTypes(ctx context.Context, limit int) ([]record.TypeCount, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.records.CommonTypes(ctx, limit)
}
