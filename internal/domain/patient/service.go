package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medtrack/medtrack/internal/domain/activity"
	"github.com/medtrack/medtrack/internal/platform/db"
)

// Service implements patient registration and lookup. Registration writes
// the patient row and its audit activity in a single transaction.
type Service struct {
	repo       Repository
	activities activity.Repository
	tx         db.TxRunner
	log        zerolog.Logger
}

func NewService(repo Repository, activities activity.Repository, tx db.TxRunner, log zerolog.Logger) *Service {
	return &Service{repo: repo, activities: activities, tx: tx, log: log}
}

// Register validates and stores a new patient. The patient_id must be unique;
// a reused id surfaces as ErrDuplicateID.
func (s *Service) Register(ctx context.Context, p *Patient) error {
	if strings.TrimSpace(p.PatientID) == "" {
		return fmt.Errorf("patient_id is required")
	}
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("first_name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("last_name is required")
	}
	if p.DateOfBirth.IsZero() {
		return fmt.Errorf("date_of_birth is required")
	}
	if strings.TrimSpace(p.Gender) == "" {
		return fmt.Errorf("gender is required")
	}
	if p.CreatedDate.IsZero() {
		p.CreatedDate = time.Now()
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return err
		}
		pid := p.PatientID
		return s.activities.Log(ctx, &activity.Activity{
			PatientID:    &pid,
			ActivityType: activity.TypePatientAdded,
			Description:  fmt.Sprintf("New patient %s %s added", p.FirstName, p.LastName),
		})
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("patient_id", p.PatientID).Msg("patient registered")
	return nil
}

func (s *Service) Get(ctx context.Context, patientID string) (*Patient, error) {
	return s.repo.GetByPatientID(ctx, patientID)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Search filters patients by a case-insensitive name or id substring and an
// exact gender, where "All" (or empty) skips the gender filter.
func (s *Service) Search(ctx context.Context, query, gender string) ([]*Patient, error) {
	return s.repo.Search(ctx, strings.TrimSpace(query), gender)
}

func (s *Service) Exists(ctx context.Context, patientID string) (bool, error) {
	return s.repo.Exists(ctx, patientID)
}

// Delete removes the patient. Dependent metric, record, and activity rows go
// with it through the schema's cascade rules; files on disk are the caller's
// responsibility.
func (s *Service) Delete(ctx context.Context, patientID string) error {
	if err := s.repo.Delete(ctx, patientID); err != nil {
		return err
	}
	s.log.Info().Str("patient_id", patientID).Msg("patient deleted")
	return nil
}
