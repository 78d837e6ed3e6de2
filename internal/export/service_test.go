package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/medtrack/medtrack/internal/domain/activity"
	"github.com/medtrack/medtrack/internal/domain/patient"
)

type fakePatients struct {
	patient.Repository
	all []*patient.Patient
}

func (f *fakePatients) GetAll(_ context.Context) ([]*patient.Patient, error) { return f.all, nil }

type fakeRepo struct {
	metrics []MetricRow
	records []RecordRow
}

func (f *fakeRepo) Metrics(_ context.Context) ([]MetricRow, error) { return f.metrics, nil }

func (f *fakeRepo) Records(_ context.Context) ([]RecordRow, error) { return f.records, nil }

type fakeActivities struct {
	feed  []*activity.Activity
	limit int
}

func (f *fakeActivities) Log(_ context.Context, _ *activity.Activity) error { return nil }

func (f *fakeActivities) Recent(_ context.Context, limit int) ([]*activity.Activity, error) {
	f.limit = limit
	return f.feed, nil
}

func (f *fakeActivities) MostActivePatients(_ context.Context, _ int) ([]activity.PatientCount, error) {
	return nil, nil
}

func newTestService(patients *fakePatients, repo *fakeRepo, acts *fakeActivities) *Service {
	return NewService(patients, repo, acts, zerolog.Nop())
}

func TestDemographicsCSV(t *testing.T) {
	phone := "555-0100"
	patients := &fakePatients{all: []*patient.Patient{{
		PatientID:   "P001",
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:      "Female",
		Phone:       &phone,
		CreatedDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}}}
	svc := newTestService(patients, &fakeRepo{}, &fakeActivities{})

	var buf bytes.Buffer
	if err := svc.DemographicsCSV(context.Background(), &buf); err != nil {
		t.Fatalf("DemographicsCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	if rows[0][0] != "patient_id" || len(rows[0]) != 15 {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "P001" || rows[1][3] != "1990-06-15" || rows[1][5] != "555-0100" {
		t.Errorf("row = %v", rows[1])
	}
	// nil optional fields export as empty cells
	if rows[1][6] != "" {
		t.Errorf("email cell = %q, want empty", rows[1][6])
	}
}

func TestMetricsCSV(t *testing.T) {
	unit := "kg"
	repo := &fakeRepo{metrics: []MetricRow{
		{
			PatientID:   "P001",
			PatientName: "Jane Doe",
			MetricType:  "Weight",
			Value:       72.5,
			Unit:        &unit,
			Date:        time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			PatientID:   "P001",
			PatientName: "Jane Doe",
			MetricType:  "Pain Level",
			Value:       3,
			Date:        time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC),
		},
	}}
	svc := newTestService(&fakePatients{}, repo, &fakeActivities{})

	var buf bytes.Buffer
	if err := svc.MetricsCSV(context.Background(), &buf); err != nil {
		t.Fatalf("MetricsCSV: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if rows[1][1] != "Jane Doe" {
		t.Errorf("patient_name cell = %q", rows[1][1])
	}
	if rows[1][3] != "72.5" {
		t.Errorf("value cell = %q", rows[1][3])
	}
	if rows[1][4] != "kg" {
		t.Errorf("unit cell = %q", rows[1][4])
	}
	if rows[2][4] != "" {
		t.Errorf("unit cell for unitless metric = %q, want empty", rows[2][4])
	}
}

func TestRecordsCSV_EmptyTable(t *testing.T) {
	svc := newTestService(&fakePatients{}, &fakeRepo{}, &fakeActivities{})
	var buf bytes.Buffer
	if err := svc.RecordsCSV(context.Background(), &buf); err != nil {
		t.Fatalf("RecordsCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("empty export should be header only, got %d lines", len(lines))
	}
}

func TestCompleteDataset(t *testing.T) {
	acts := &fakeActivities{feed: []*activity.Activity{{Description: "x"}}}
	patients := &fakePatients{all: []*patient.Patient{{PatientID: "P001"}}}
	repo := &fakeRepo{
		metrics: []MetricRow{{PatientID: "P001"}},
		records: []RecordRow{{PatientID: "P001"}},
	}
	svc := newTestService(patients, repo, acts)

	before := time.Now()
	ds, err := svc.CompleteDataset(context.Background())
	if err != nil {
		t.Fatalf("CompleteDataset: %v", err)
	}
	if ds.ExportedAt.Before(before) {
		t.Error("ExportedAt not stamped")
	}
	if len(ds.Patients) != 1 || len(ds.Metrics) != 1 || len(ds.Records) != 1 || len(ds.Activities) != 1 {
		t.Errorf("dataset = %+v", ds)
	}
	if acts.limit != activityExportLimit {
		t.Errorf("activity limit = %d, want %d", acts.limit, activityExportLimit)
	}
}
