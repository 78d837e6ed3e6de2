package metric

import (
	"context"
	"errors"
)

// ErrPatientNotFound is returned when a metric references a patient_id with
// no matching patient row.
var ErrPatientNotFound = errors.New("patient not found")

type Repository interface {
	Create(ctx context.Context, m *Metric) error
	// ForPatient returns the patient's metrics newest first. An empty
	// metricType returns every type.
	ForPatient(ctx context.Context, patientID, metricType string) ([]*Metric, error)
	Recent(ctx context.Context, limit int) ([]*Metric, error)
	Count(ctx context.Context) (int, error)
	// CommonTypes returns metric types by descending usage.
	CommonTypes(ctx context.Context, limit int) ([]TypeCount, error)
	// AllTypes returns the distinct metric types in alphabetical order.
	AllTypes(ctx context.Context) ([]string, error)
}
