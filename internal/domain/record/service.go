package record

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medtrack/medtrack/internal/domain/activity"
	"github.com/medtrack/medtrack/internal/domain/patient"
	"github.com/medtrack/medtrack/internal/platform/db"
)

// FileStore is the slice of the disk store the record service needs.
type FileStore interface {
	Save(patientID, recordType, originalName string, content io.Reader) (path, name string, size int64, err error)
	Open(path string) (*os.File, error)
	Delete(path string) error
}

// Service manages medical record entries and their attached documents. The
// attachment is written to disk before the database transaction opens, so a
// failed insert can leave a file behind without a row pointing at it.
type Service struct {
	repo       Repository
	patients   patient.Repository
	activities activity.Repository
	files      FileStore
	tx         db.TxRunner
	log        zerolog.Logger
}

func NewService(repo Repository, patients patient.Repository, activities activity.Repository, files FileStore, tx db.TxRunner, log zerolog.Logger) *Service {
	return &Service{repo: repo, patients: patients, activities: activities, files: files, tx: tx, log: log}
}

// Upload is an optional attachment accompanying a record entry.
type Upload struct {
	Name    string
	Content io.Reader
}

func (s *Service) Add(ctx context.Context, rec *Record, upload *Upload) error {
	if strings.TrimSpace(rec.PatientID) == "" {
		return fmt.Errorf("patient_id is required")
	}
	if strings.TrimSpace(rec.RecordType) == "" {
		return fmt.Errorf("record_type is required")
	}
	if rec.RecordDate.IsZero() {
		return fmt.Errorf("record_date is required")
	}
	if rec.UploadDate.IsZero() {
		rec.UploadDate = time.Now()
	}

	name := "Unknown"
	p, err := s.patients.GetByPatientID(ctx, rec.PatientID)
	switch {
	case err == nil:
		name = p.DisplayName()
	case errors.Is(err, patient.ErrNotFound):
	default:
		return err
	}

	if upload != nil {
		path, stored, size, err := s.files.Save(rec.PatientID, rec.RecordType, upload.Name, upload.Content)
		if err != nil {
			return fmt.Errorf("store attachment: %w", err)
		}
		ext := strings.TrimPrefix(filepath.Ext(upload.Name), ".")
		rec.FilePath = &path
		rec.FileName = &stored
		rec.FileType = &ext
		rec.FileSize = &size
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, rec); err != nil {
			return err
		}
		pid := rec.PatientID
		return s.activities.Log(ctx, &activity.Activity{
			PatientID:    &pid,
			PatientName:  &name,
			ActivityType: activity.TypeRecordAdded,
			Description:  fmt.Sprintf("%s record added for %s", rec.RecordType, name),
		})
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("patient_id", rec.PatientID).
		Str("record_type", rec.RecordType).
		Bool("has_file", rec.FilePath != nil).
		Msg("medical record added")
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ForPatient(ctx context.Context, patientID string) ([]*Record, error) {
	return s.repo.ForPatient(ctx, patientID)
}

func (s *Service) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.Recent(ctx, limit)
}

// OpenFile returns the record's attachment stream along with the record.
func (s *Service) OpenFile(ctx context.Context, id int64) (*Record, *os.File, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if rec.FilePath == nil {
		return nil, nil, fmt.Errorf("record %d has no attachment", id)
	}
	f, err := s.files.Open(*rec.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return rec, f, nil
}

// Delete removes the record row and, when present, its file on disk. A
// missing file is not an error; the row is already gone.
func (s *Service) Delete(ctx context.Context, id int64) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if rec.FilePath != nil {
		if err := s.files.Delete(*rec.FilePath); err != nil {
			s.log.Warn().Str("path", *rec.FilePath).Err(err).Msg("attachment removal failed")
		}
	}
	return nil
}
