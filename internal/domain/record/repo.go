package record

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no record matches the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrPatientNotFound is returned when a record references a patient_id
	// with no matching patient row.
	ErrPatientNotFound = errors.New("patient not found")
)

type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id int64) (*Record, error)
	// ForPatient returns the patient's records ordered by record_date, newest
	// first.
	ForPatient(ctx context.Context, patientID string) ([]*Record, error)
	// Recent returns the latest uploads across all patients.
	Recent(ctx context.Context, limit int) ([]*Record, error)
	Count(ctx context.Context) (int, error)
	// RecentCount counts records uploaded within the trailing window.
	RecentCount(ctx context.Context, days int) (int, error)
	CommonTypes(ctx context.Context, limit int) ([]TypeCount, error)
	// TotalFileSize sums file_size over all records, in bytes.
	TotalFileSize(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}
