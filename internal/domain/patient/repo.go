package patient

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by reads when no patient matches.
	ErrNotFound = errors.New("patient not found")
	// ErrDuplicateID is returned when a registration reuses an existing
	// patient_id.
	ErrDuplicateID = errors.New("patient_id already registered")
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByPatientID(ctx context.Context, patientID string) (*Patient, error)
	GetAll(ctx context.Context) ([]*Patient, error)
	// List returns one page of patients plus the total count.
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	Exists(ctx context.Context, patientID string) (bool, error)
	// Search matches query case-insensitively as a substring of first name,
	// last name, or patient_id, intersected with an exact gender match unless
	// gender is "All". An empty query matches everything.
	Search(ctx context.Context, query, gender string) ([]*Patient, error)
	Count(ctx context.Context) (int, error)
	GenderCounts(ctx context.Context) (map[string]int, error)
	CompleteProfilesCount(ctx context.Context) (int, error)
	Delete(ctx context.Context, patientID string) error
}
