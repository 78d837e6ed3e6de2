// Package seed fills an empty database with synthetic patients, metrics,
// and record entries for demos and local development.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/medtrack/medtrack/internal/domain/metric"
	"github.com/medtrack/medtrack/internal/domain/patient"
	"github.com/medtrack/medtrack/internal/domain/record"
)

type Seeder struct {
	patients *patient.Service
	metrics  *metric.Service
	records  *record.Service
	rng      *rand.Rand
	log      zerolog.Logger
}

// New builds a seeder. The fixed source keeps runs reproducible.
func New(patients *patient.Service, metrics *metric.Service, records *record.Service, log zerolog.Logger) *Seeder {
	return &Seeder{
		patients: patients,
		metrics:  metrics,
		records:  records,
		rng:      rand.New(rand.NewSource(42)),
		log:      log,
	}
}

var (
	firstNames = []string{"James", "Mary", "Robert", "Patricia", "John", "Jennifer",
		"Michael", "Linda", "David", "Elizabeth", "William", "Susan"}
	lastNames = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia",
		"Miller", "Davis", "Rodriguez", "Martinez"}
	genders    = []string{"Male", "Female"}
	bloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

	metricKinds = []struct {
		name string
		unit string
		min  float64
		max  float64
	}{
		{"Blood Pressure Systolic", "mmHg", 100, 160},
		{"Blood Pressure Diastolic", "mmHg", 60, 100},
		{"Heart Rate", "bpm", 55, 100},
		{"Weight", "kg", 50, 110},
		{"Blood Glucose", "mg/dL", 70, 180},
		{"Temperature", "°C", 36.0, 38.5},
	}

	recordTypes = []string{"Lab Report", "Prescription", "Imaging", "Consultation Note", "Vaccination"}
	facilities  = []string{"City General Hospital", "Westside Clinic", "Northpoint Medical Center"}
)

// Run creates count patients, each with a spread of metrics and record
// entries. Values are random but the sequence is fixed per seeder.
func (s *Seeder) Run(ctx context.Context, count int) error {
	if count <= 0 {
		count = 20
	}
	for i := 0; i < count; i++ {
		p, err := s.seedPatient(ctx, i)
		if err != nil {
			return fmt.Errorf("seed patient %d: %w", i, err)
		}
		if err := s.seedMetrics(ctx, p); err != nil {
			return fmt.Errorf("seed metrics for %s: %w", p.PatientID, err)
		}
		if err := s.seedRecords(ctx, p); err != nil {
			return fmt.Errorf("seed records for %s: %w", p.PatientID, err)
		}
	}
	s.log.Info().Int("patients", count).Msg("seed complete")
	return nil
}

func (s *Seeder) seedPatient(ctx context.Context, i int) (*patient.Patient, error) {
	first := firstNames[s.rng.Intn(len(firstNames))]
	last := lastNames[s.rng.Intn(len(lastNames))]
	phone := fmt.Sprintf("555-%04d", s.rng.Intn(10000))
	email := fmt.Sprintf("%s.%s%d@example.com", first, last, i)
	blood := bloodTypes[s.rng.Intn(len(bloodTypes))]

	p := &patient.Patient{
		PatientID:   fmt.Sprintf("P%04d", i+1),
		FirstName:   first,
		LastName:    last,
		DateOfBirth: time.Now().AddDate(-20-s.rng.Intn(60), -s.rng.Intn(12), -s.rng.Intn(28)),
		Gender:      genders[s.rng.Intn(len(genders))],
		Phone:       &phone,
		Email:       &email,
		BloodType:   &blood,
	}
	if err := s.patients.Register(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Seeder) seedMetrics(ctx context.Context, p *patient.Patient) error {
	n := 3 + s.rng.Intn(8)
	for j := 0; j < n; j++ {
		kind := metricKinds[s.rng.Intn(len(metricKinds))]
		unit := kind.unit
		m := &metric.Metric{
			PatientID:  p.PatientID,
			MetricType: kind.name,
			Value:      kind.min + s.rng.Float64()*(kind.max-kind.min),
			Unit:       &unit,
			Date:       time.Now().AddDate(0, 0, -s.rng.Intn(90)),
		}
		if err := s.metrics.Add(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedRecords(ctx context.Context, p *patient.Patient) error {
	n := 1 + s.rng.Intn(4)
	for j := 0; j < n; j++ {
		doctor := "Dr. " + lastNames[s.rng.Intn(len(lastNames))]
		facility := facilities[s.rng.Intn(len(facilities))]
		rec := &record.Record{
			PatientID:    p.PatientID,
			RecordType:   recordTypes[s.rng.Intn(len(recordTypes))],
			DoctorName:   &doctor,
			FacilityName: &facility,
			RecordDate:   time.Now().AddDate(0, 0, -s.rng.Intn(365)),
		}
		if err := s.records.Add(ctx, rec, nil); err != nil {
			return err
		}
	}
	return nil
}
