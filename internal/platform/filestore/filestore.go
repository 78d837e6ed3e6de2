package filestore

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrFileNotFound is returned when a stored file path does not resolve to a
// file on disk.
var ErrFileNotFound = errors.New("file not found")

// Store keeps uploaded medical documents on local disk, one directory per
// patient under the configured root.
type Store struct {
	root string
	log  zerolog.Logger
}

func New(root string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Store{root: root, log: log}, nil
}

func (s *Store) patientDir(patientID string) string {
	return filepath.Join(s.root, "patient_"+patientID)
}

// Save writes the uploaded content to the patient's directory under a
// generated collision-free name and returns the stored path, the generated
// file name, and the byte count.
func (s *Store) Save(patientID, recordType, originalName string, content io.Reader) (path, name string, size int64, err error) {
	dir := s.patientDir(patientID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", 0, fmt.Errorf("create patient directory: %w", err)
	}

	name = storedName(recordType, originalName, time.Now())
	path = filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", "", 0, fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	size, err = io.Copy(f, content)
	if err != nil {
		os.Remove(path)
		return "", "", 0, fmt.Errorf("write file: %w", err)
	}

	s.log.Debug().Str("patient_id", patientID).Str("file", name).Int64("bytes", size).Msg("file stored")
	return path, name, size, nil
}

// storedName builds "{record_type}_{timestamp}_{rand}{ext}" with spaces in
// the record type folded to underscores, e.g.
// "Lab_Report_20240301_153000_a1b2c3d4.pdf".
func storedName(recordType, originalName string, now time.Time) string {
	typ := strings.ReplaceAll(recordType, " ", "_")
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%s_%s_%s%s", typ, now.Format("20060102_150405"), uuid.NewString()[:8], ext)
}

// Open returns the stored file for reading.
func (s *Store) Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound
		}
		return err
	}
	return nil
}

// Move relocates a stored file to another patient's directory, keeping the
// stored name, and returns the new path.
func (s *Store) Move(path, toPatientID string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", ErrFileNotFound
		}
		return "", err
	}
	dir := s.patientDir(toPatientID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create patient directory: %w", err)
	}
	dst := filepath.Join(dir, filepath.Base(path))
	if err := os.Rename(path, dst); err != nil {
		return "", fmt.Errorf("move file: %w", err)
	}
	return dst, nil
}

// Copy duplicates a stored file into another patient's directory and returns
// the new path.
func (s *Store) Copy(path, toPatientID string) (string, error) {
	src, err := s.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := s.patientDir(toPatientID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create patient directory: %w", err)
	}
	dst := filepath.Join(dir, filepath.Base(path))
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create copy: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("copy file: %w", err)
	}
	return dst, nil
}

// ListPatientFiles returns the stored file names for one patient. A patient
// with no directory has no files.
func (s *Store) ListPatientFiles(patientID string) ([]string, error) {
	entries, err := os.ReadDir(s.patientDir(patientID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// CleanupPatient removes the patient's directory and everything in it.
func (s *Store) CleanupPatient(patientID string) error {
	return os.RemoveAll(s.patientDir(patientID))
}

// StatsHandler serves the store's disk usage summary.
func StatsHandler(s *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		st, err := s.Stats()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, st)
	}
}

// Stats reports disk usage under the storage root, with file counts broken
// out per patient directory.
type Stats struct {
	TotalBytes int64          `json:"total_bytes"`
	FileCount  int            `json:"file_count"`
	PerPatient map[string]int `json:"per_patient"`
}

func (s *Store) Stats() (Stats, error) {
	st := Stats{PerPatient: make(map[string]int)}
	err := filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		st.TotalBytes += info.Size()
		st.FileCount++
		if dir := filepath.Base(filepath.Dir(path)); strings.HasPrefix(dir, "patient_") {
			st.PerPatient[strings.TrimPrefix(dir, "patient_")]++
		}
		return nil
	})
	return st, err
}
