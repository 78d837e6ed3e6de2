package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/medtrack/medtrack/internal/domain/activity"
	"github.com/medtrack/medtrack/internal/domain/patient"
)

// activityExportLimit caps how much of the audit trail rides along in a
// complete-dataset export.
const activityExportLimit = 1000

// Service flattens the clinical tables into CSV and JSON exports.
type Service struct {
	patients   patient.Repository
	repo       Repository
	activities activity.Repository
	log        zerolog.Logger
}

func NewService(patients patient.Repository, repo Repository, activities activity.Repository, log zerolog.Logger) *Service {
	return &Service{patients: patients, repo: repo, activities: activities, log: log}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// DemographicsCSV writes one row per patient with the full demographic and
// contact field set.
func (s *Service) DemographicsCSV(ctx context.Context, w io.Writer) error {
	all, err := s.patients.GetAll(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"patient_id", "first_name", "last_name", "date_of_birth", "gender",
		"phone", "email", "address", "blood_type", "allergies",
		"emergency_contact_name", "emergency_contact_phone",
		"medical_history", "current_medications", "created_date"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range all {
		row := []string{p.PatientID, p.FirstName, p.LastName,
			p.DateOfBirth.Format("2006-01-02"), p.Gender,
			str(p.Phone), str(p.Email), str(p.Address), str(p.BloodType), str(p.Allergies),
			str(p.EmergencyContactName), str(p.EmergencyContactPhone),
			str(p.MedicalHistory), str(p.CurrentMedications),
			p.CreatedDate.Format(time.RFC3339)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *Service) MetricsCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.repo.Metrics(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"patient_id", "patient_name", "metric_type", "value", "unit",
		"date", "notes", "category"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, m := range rows {
		row := []string{m.PatientID, m.PatientName, m.MetricType,
			strconv.FormatFloat(m.Value, 'f', -1, 64), str(m.Unit),
			m.Date.Format(time.RFC3339), str(m.Notes), str(m.Category)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *Service) RecordsCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.repo.Records(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"patient_id", "patient_name", "record_type", "description",
		"doctor_name", "facility_name", "record_date", "file_name", "file_size", "upload_date"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		size := ""
		if r.FileSize != nil {
			size = strconv.FormatInt(*r.FileSize, 10)
		}
		row := []string{r.PatientID, r.PatientName, r.RecordType, str(r.Description),
			str(r.DoctorName), str(r.FacilityName), r.RecordDate.Format("2006-01-02"),
			str(r.FileName), size, r.UploadDate.Format(time.RFC3339)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Dataset is the complete-export payload: every table plus the most recent
// slice of the audit trail and the moment the export was taken.
type Dataset struct {
	ExportedAt time.Time            `json:"exported_at"`
	Patients   []*patient.Patient   `json:"patients"`
	Metrics    []MetricRow          `json:"health_metrics"`
	Records    []RecordRow          `json:"medical_records"`
	Activities []*activity.Activity `json:"activities"`
}

func (s *Service) CompleteDataset(ctx context.Context) (*Dataset, error) {
	ds := &Dataset{ExportedAt: time.Now()}
	var err error

	if ds.Patients, err = s.patients.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("export patients: %w", err)
	}
	if ds.Metrics, err = s.repo.Metrics(ctx); err != nil {
		return nil, fmt.Errorf("export metrics: %w", err)
	}
	if ds.Records, err = s.repo.Records(ctx); err != nil {
		return nil, fmt.Errorf("export records: %w", err)
	}
	if ds.Activities, err = s.activities.Recent(ctx, activityExportLimit); err != nil {
		return nil, fmt.Errorf("export activities: %w", err)
	}

	s.log.Info().
		Int("patients", len(ds.Patients)).
		Int("metrics", len(ds.Metrics)).
		Int("records", len(ds.Records)).
		Msg("complete dataset exported")
	return ds, nil
}
