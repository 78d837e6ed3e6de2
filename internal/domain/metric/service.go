package metric

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medtrack/medtrack/internal/domain/activity"
	"github.com/medtrack/medtrack/internal/domain/patient"
	"github.com/medtrack/medtrack/internal/platform/db"
)

// Service records health metrics. Each add writes the metric and its audit
// activity in one transaction; the activity carries a snapshot of the
// patient's name at logging time.
type Service struct {
	repo       Repository
	patients   patient.Repository
	activities activity.Repository
	tx         db.TxRunner
	log        zerolog.Logger
}

func NewService(repo Repository, patients patient.Repository, activities activity.Repository, tx db.TxRunner, log zerolog.Logger) *Service {
	return &Service{repo: repo, patients: patients, activities: activities, tx: tx, log: log}
}

func (s *Service) Add(ctx context.Context, m *Metric) error {
	if strings.TrimSpace(m.PatientID) == "" {
		return fmt.Errorf("patient_id is required")
	}
	if strings.TrimSpace(m.MetricType) == "" {
		return fmt.Errorf("metric_type is required")
	}
	if m.Date.IsZero() {
		m.Date = time.Now()
	}

	name := "Unknown"
	p, err := s.patients.GetByPatientID(ctx, m.PatientID)
	switch {
	case err == nil:
		name = p.DisplayName()
	case errors.Is(err, patient.ErrNotFound):
		// keep "Unknown"; the insert itself fails on the foreign key
	default:
		return err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, m); err != nil {
			return err
		}
		pid := m.PatientID
		return s.activities.Log(ctx, &activity.Activity{
			PatientID:    &pid,
			PatientName:  &name,
			ActivityType: activity.TypeMetricAdded,
			Description:  fmt.Sprintf("%s recorded for %s", m.MetricType, name),
		})
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("patient_id", m.PatientID).
		Str("metric_type", m.MetricType).
		Msg("health metric added")
	return nil
}

func (s *Service) ForPatient(ctx context.Context, patientID, metricType string) ([]*Metric, error) {
	return s.repo.ForPatient(ctx, patientID, metricType)
}

func (s *Service) Recent(ctx context.Context, limit int) ([]*Metric, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.Recent(ctx, limit)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) CommonTypes(ctx context.Context, limit int) ([]TypeCount, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.CommonTypes(ctx, limit)
}

func (s *Service) AllTypes(ctx context.Context) ([]string, error) {
	return s.repo.AllTypes(ctx)
}
